package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ning0612/aerofs-go/internal/domain"
	"github.com/Ning0612/aerofs-go/internal/logger"
)

const (
	DefaultAPIVersion = "1.3"
	DefaultTimeout    = 60 * time.Second
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config is the client configuration
type Config struct {
	// Hostname of the appliance, without scheme
	Hostname   string `mapstructure:"hostname"`
	APIVersion string `mapstructure:"api_version"`
	// Scheme is https except for test appliances
	Scheme      string        `mapstructure:"scheme"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`

	App AppConfig `mapstructure:"app"`

	// TokenPath holds the token saved by "auth exchange"
	TokenPath string `mapstructure:"token_path"`
	// StateDir holds the transfer journal
	StateDir string `mapstructure:"state_dir"`

	Log LogConfig `mapstructure:"log"`
}

// AppConfig holds the OAuth application credentials
type AppConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	RedirectURI  string   `mapstructure:"redirect_uri"`
	Scopes       []string `mapstructure:"scopes"`
}

type LogConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Hostname == "" {
		return fmt.Errorf("%w: hostname cannot be empty", domain.ErrConfigInvalid)
	}
	if strings.Contains(c.Hostname, "://") || strings.ContainsAny(c.Hostname, "/?#") {
		return fmt.Errorf("%w: hostname must not contain a scheme or path: %s", domain.ErrConfigInvalid, c.Hostname)
	}
	if c.APIVersion == "" {
		return fmt.Errorf("%w: api_version cannot be empty", domain.ErrConfigInvalid)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", domain.ErrConfigInvalid, c.Scheme)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", domain.ErrConfigInvalid)
	}

	if c.App.RedirectURI != "" {
		if u, err := url.Parse(c.App.RedirectURI); err != nil || u.Scheme == "" {
			return fmt.Errorf("%w: invalid redirect_uri: %s", domain.ErrConfigInvalid, c.App.RedirectURI)
		}
	}
	for _, s := range c.App.Scopes {
		if s == "" || strings.ContainsAny(s, ", ") {
			return fmt.Errorf("%w: invalid scope: %q", domain.ErrConfigInvalid, s)
		}
	}

	if _, err := c.ToLoggerConfig(); err != nil {
		return err
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path is required when file logging is enabled", domain.ErrConfigInvalid)
	}
	return nil
}

// HasApp reports whether enough OAuth settings are present to run the auth flow
func (c *Config) HasApp() bool {
	return c.App.ClientID != "" && c.App.ClientSecret != "" && c.App.RedirectURI != ""
}

// ToLoggerConfig converts the log section. Console logging keeps the
// logger's stderr default since command output goes to stdout.
func (c *Config) ToLoggerConfig() (logger.Config, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.Config{}, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	format, err := logger.ParseFormat(c.Log.Format)
	if err != nil {
		return logger.Config{}, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	cfg := logger.Config{Level: level, Format: format}
	if c.Log.File.Enabled {
		cfg.File = logger.FileConfig{
			Path:       ExpandPath(c.Log.File.Path),
			MaxSizeMB:  c.Log.File.MaxSizeMB,
			MaxAgeDays: c.Log.File.MaxAgeDays,
			MaxBackups: c.Log.File.MaxBackups,
			Compress:   c.Log.File.Compress,
		}
	}
	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			if len(path) == 1 {
				path = home
			} else if path[1] == '/' || path[1] == filepath.Separator {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	return filepath.Clean(os.ExpandEnv(path))
}
