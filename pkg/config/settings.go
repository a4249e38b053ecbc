package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings are the runtime knobs read from the environment. User preferences
// live in the persisted data.Config record instead.
type Settings struct {
	DataDir           string        `env:"MAPLE_DATA_DIR"`
	StoreDriver       string        `env:"MAPLE_STORE_DRIVER" envDefault:"duckdb"`
	TitleKeysURL      string        `env:"MAPLE_TITLEKEYS_URL" envDefault:"http://wiiu.titlekeys.gq/json"`
	APIBaseURL        string        `env:"MAPLE_API_URL" envDefault:"http://api.pixxy.in/"`
	ContentURL        string        `env:"MAPLE_CONTENT_URL" envDefault:"http://ccs.cdn.wup.shop.nintendo.net/ccs/download"`
	HTTPTimeout       time.Duration `env:"MAPLE_HTTP_TIMEOUT" envDefault:"15s"`
	ReadyPollInterval time.Duration `env:"MAPLE_READY_POLL_INTERVAL" envDefault:"250ms"`
	ReadyTimeout      time.Duration `env:"MAPLE_READY_TIMEOUT" envDefault:"30s"`
	DownloadWorkers   int           `env:"MAPLE_DOWNLOAD_WORKERS" envDefault:"3"`
	DownloadTimeout   time.Duration `env:"MAPLE_DOWNLOAD_TIMEOUT" envDefault:"30m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Settings from the environment and fills in the data directory.
func Load() (Settings, error) {
	var s Settings
	if err := ParseEnv(&s); err != nil {
		return Settings{}, err
	}
	if s.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, fmt.Errorf("resolve home directory: %w", err)
		}
		s.DataDir = filepath.Join(homeDir, ".mapleseed")
	}
	if s.DownloadWorkers < 1 {
		s.DownloadWorkers = 1
	}
	return s, nil
}

// StorePath is the database file inside the data directory.
func (s Settings) StorePath() string {
	return filepath.Join(s.DataDir, "mapleseed.db")
}
