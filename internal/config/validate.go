package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drdhaval2785/prakriya/pkg/translit"
)

// DefaultDirName is the per-user data directory under the home dir.
const DefaultDirName = ".prakriya"

// Validate checks the loaded configuration and fills derived defaults.
// Load calls it automatically; Read does not.
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("data.dir not set and no home dir: %w", err)
		}
		c.Data.Dir = filepath.Join(home, DefaultDirName)
	}
	if c.Data.PreloadWorkers <= 0 {
		return fmt.Errorf("data.preload_workers must be > 0 (got %d)", c.Data.PreloadWorkers)
	}
	if c.Data.HTTPTimeout < 0 {
		return fmt.Errorf("data.http_timeout must be >= 0 (got %v)", c.Data.HTTPTimeout)
	}

	if _, err := translit.ParseScheme(c.Translit.Input); err != nil {
		return fmt.Errorf("translit.input: %w", err)
	}
	if _, err := translit.ParseScheme(c.Translit.Output); err != nil {
		return fmt.Errorf("translit.output: %w", err)
	}

	switch c.Forms.Backend {
	case BackendJSON:
	case BackendSQLite:
		if c.Forms.SQLitePath == "" {
			c.Forms.SQLitePath = filepath.Join(c.Data.Dir, "forms.db")
		}
	default:
		return fmt.Errorf("forms.backend must be %q or %q (got %q)", BackendJSON, BackendSQLite, c.Forms.Backend)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
