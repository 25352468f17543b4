package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds runtime settings read from the environment.
type Config struct {
	DBPath    string
	ProjectID string
	LogOps    bool
	SearchCap int
}

// DefaultConfig returns a Config with sensible defaults. The database
// path is resolved lazily in Load because it depends on the home
// directory.
func DefaultConfig() Config {
	return Config{
		ProjectID: "default",
		LogOps:    false,
		SearchCap: 500,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("CANTIERE_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, err
		}
		cfg.DBPath = filepath.Join(home, ".cantiere", "cantiere.db")
	}
	if v := os.Getenv("CANTIERE_PROJECT"); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv("CANTIERE_LOG_OPS"); v != "" {
		cfg.LogOps, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CANTIERE_SEARCH_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SearchCap = n
		}
	}
	return cfg, nil
}
