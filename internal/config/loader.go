package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/Ning0612/aerofs-go/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. AEROFS_ACCESS_TOKEN
const EnvPrefix = "AEROFS"

// DefaultConfigPaths returns the directories searched for config.yaml
func DefaultConfigPaths() []string {
	paths := []string{".", "./configs"}

	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "aerofs"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".aerofs"))
	}
	return paths
}

// DefaultDataDir is where the token file and the journal live unless configured
func DefaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "aerofs")
	}
	return ".aerofs"
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	dataDir := DefaultDataDir()
	defaults := map[string]any{
		"hostname":              "",
		"api_version":           DefaultAPIVersion,
		"scheme":                "https",
		"access_token":          "",
		"timeout":               DefaultTimeout,
		"app.client_id":         "",
		"app.client_secret":     "",
		"app.redirect_uri":      "",
		"app.scopes":            []string{"files.read"},
		"token_path":            filepath.Join(dataDir, "token.json"),
		"state_dir":             dataDir,
		"log.level":             DefaultLogLevel,
		"log.format":            DefaultLogFormat,
		"log.file.enabled":      false,
		"log.file.path":         filepath.Join(dataDir, "logs", "aerofs.log"),
		"log.file.max_size_mb":  10,
		"log.file.max_age_days": 30,
		"log.file.max_backups":  5,
		"log.file.compress":     true,
	}
	// AutomaticEnv only resolves keys viper already knows about, so every
	// key is bound explicitly for Unmarshal to see env overrides.
	for key, val := range defaults {
		_ = v.BindEnv(key)
		v.SetDefault(key, val)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	hooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hooks)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}

	cfg.TokenPath = ExpandPath(cfg.TokenPath)
	cfg.StateDir = ExpandPath(cfg.StateDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads config.yaml from path, or from the default locations when path
// is empty. A missing file in the default locations is not an error as long
// as the environment supplies the required settings.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range DefaultConfigPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
		}
	}

	return decode(v)
}

// LoadFromString parses configuration from a YAML string
func LoadFromString(yamlContent string) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(yamlContent)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigInvalid, err)
	}
	return decode(v)
}
