package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/viper"
)

// DefaultAPIKey is set at build time via
// -ldflags "-X github.com/mmcdole/marquee/internal/adapter.DefaultAPIKey=..."
var DefaultAPIKey = ""

const (
	DefaultBaseURL         = "https://www.omdbapi.com/"
	DefaultRecentsCapacity = 5
	DefaultTimeout         = 30 * time.Second
	DefaultCacheMaxBytes   = 64 << 20
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Recents RecentsConfig `mapstructure:"recents"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the upstream endpoint. Read once at startup.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RecentsConfig holds recent-searches behaviour
type RecentsConfig struct {
	Capacity       int  `mapstructure:"capacity"`
	RecordRawQuery bool `mapstructure:"record_raw_query"` // store the untrimmed input instead of the trimmed query
	Disabled       bool `mapstructure:"disabled"`         // keep recents in memory only
}

// CacheConfig holds poster cache limits
type CacheConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"` // 0 = unbounded
}

// StorageConfig holds the on-disk database location
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Key:     DefaultAPIKey,
			Timeout: DefaultTimeout,
		},
		Recents: RecentsConfig{
			Capacity: DefaultRecentsCapacity,
		},
		Cache: CacheConfig{
			MaxBytes: DefaultCacheMaxBytes,
		},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "marquee.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "marquee.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// LoadConfig loads configuration from file and environment.
// An explicit configFile must exist; otherwise the default locations are
// searched and a missing file is not an error.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (MARQUEE_API_KEY, MARQUEE_RECENTS_CAPACITY, ...)
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// never appear in a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("recents.capacity", cfg.Recents.Capacity)
	v.SetDefault("recents.record_raw_query", cfg.Recents.RecordRawQuery)
	v.SetDefault("recents.disabled", cfg.Recents.Disabled)
	v.SetDefault("cache.max_bytes", cfg.Cache.MaxBytes)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

func (c *Config) normalize() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.Recents.Capacity <= 0 {
		c.Recents.Capacity = DefaultRecentsCapacity
	}
	if c.Cache.MaxBytes < 0 {
		c.Cache.MaxBytes = 0
	}
	c.Storage.Path = expandHome(c.Storage.Path)
	c.Logging.File = expandHome(c.Logging.File)
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.API.Key) != ""
}

// Validate returns domain.ErrNotConfigured when no API key is available
func (c *Config) Validate() error {
	if !c.IsConfigured() {
		return fmt.Errorf("%w: set api.key in %s or MARQUEE_API_KEY",
			domain.ErrNotConfigured, filepath.Join(defaultConfigPath(), "config.yaml"))
	}
	return nil
}

// expandHome expands a leading ~ in path
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
