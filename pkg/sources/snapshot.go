package sources

import (
	_ "embed"
	"encoding/json"

	"github.com/jmgilman/go/errors"
	"github.com/kerbaras/mapleseed/pkg/data"
)

// SnapshotVersion identifies the bundled key list. Stamped at build time:
//
//	go build -ldflags "-X github.com/kerbaras/mapleseed/pkg/sources.SnapshotVersion=2017.10"
var SnapshotVersion = "dev"

//go:embed snapshot/titlekeys.json
var bundledTitleKeys []byte

// OfflineSnapshot serves the title keys bundled with the binary.
type OfflineSnapshot struct {
	raw []byte
}

func NewOfflineSnapshot() *OfflineSnapshot {
	return &OfflineSnapshot{raw: bundledTitleKeys}
}

// NewOfflineSnapshotFromBytes is used to serve a snapshot other than the
// bundled one.
func NewOfflineSnapshotFromBytes(raw []byte) *OfflineSnapshot {
	return &OfflineSnapshot{raw: raw}
}

func (s *OfflineSnapshot) Version() string {
	return SnapshotVersion
}

// Decode parses the snapshot. A failure means the build artifact is corrupt.
func (s *OfflineSnapshot) Decode() ([]data.TitleKey, error) {
	var keys []data.TitleKey
	if err := json.Unmarshal(s.raw, &keys); err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "offline title key snapshot %s is corrupt", SnapshotVersion)
	}
	return keys, nil
}
