package maple

import (
	"testing"
	"unicode/utf8"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short", "Splatoon", 40, "Splatoon"},
		{"exact", "Splatoon", 8, "Splatoon"},
		{"ascii", "The Legend of Zelda: Breath of the Wild", 12, "The Legen..."},
		{"multibyte", "ゼルダの伝説 ブレス オブ ザ ワイルド", 8, "ゼルダの伝..."},
		{"tiny", "Splatoon", 2, "Sp"},
		{"three", "ゼルダの伝説", 3, "ゼルダ"},
		{"zero", "Splatoon", 0, ""},
		{"negative", "Splatoon", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateString(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncateString(%q, %d) returned invalid UTF-8 %q", tt.in, tt.max, got)
			}
			if tt.max >= 0 && utf8.RuneCountInString(got) > tt.max {
				t.Errorf("truncateString(%q, %d) = %q is longer than %d runes", tt.in, tt.max, got, tt.max)
			}
		})
	}
}
