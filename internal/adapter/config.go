package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Credential modes for the HTTP client
const (
	CredentialsInclude = "include"
	CredentialsOmit    = "omit"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// ServerConfig holds the bookstore server connection
type ServerConfig struct {
	URL               string        `mapstructure:"url"`
	Credentials       string        `mapstructure:"credentials"` // "include" or "omit"
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ItemsPerPage   int    `mapstructure:"items_per_page"`
	ReviewsPerPage int    `mapstructure:"reviews_per_page"`
	Theme          string `mapstructure:"theme"`
}

// BrowserConfig selects how download links are opened
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // empty for the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig holds the session store location
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:               "http://localhost:8080",
			Credentials:       CredentialsInclude,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 10,
		},
		UI: UIConfig{
			ItemsPerPage:   6,
			ReviewsPerPage: 2,
			Theme:          "default",
		},
		Browser: BrowserConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "folio", "folio.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "folio", "folio.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "folio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "folio")
	}
}

// defaultCachePath returns the default session store directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "folio", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "folio", "cache")
	}
}

// ConfigDir returns the directory SaveConfig writes to
func ConfigDir() string {
	return defaultConfigPath()
}

func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Environment variable overrides: FOLIO_SERVER_URL, FOLIO_UI_ITEMS_PER_PAGE, ...
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setAll(v, cfg)
	return v
}

// setAll registers every key, so AutomaticEnv can see it during Unmarshal
func setAll(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.credentials", cfg.Server.Credentials)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.requests_per_second", cfg.Server.RequestsPerSecond)

	v.SetDefault("ui.items_per_page", cfg.UI.ItemsPerPage)
	v.SetDefault("ui.reviews_per_page", cfg.UI.ReviewsPerPage)
	v.SetDefault("ui.theme", cfg.UI.Theme)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
}

// LoadConfig loads configuration from .env, the config file and the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration, searching dirs for config.yaml in order
func LoadConfigFrom(dirs ...string) (*Config, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	cfg := DefaultConfig()
	v := newViper(cfg)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values the client cannot start without
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url %q is not an absolute URL", c.Server.URL)
	}
	switch c.Server.Credentials {
	case CredentialsInclude, CredentialsOmit:
	default:
		return fmt.Errorf("server.credentials must be %q or %q, got %q",
			CredentialsInclude, CredentialsOmit, c.Server.Credentials)
	}
	if c.UI.ItemsPerPage <= 0 {
		return fmt.Errorf("ui.items_per_page must be positive")
	}
	if c.UI.ReviewsPerPage <= 0 {
		return fmt.Errorf("ui.reviews_per_page must be positive")
	}
	return nil
}

// SaveConfig saves the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, defaultConfigPath())
}

// SaveConfigTo writes cfg as config.yaml inside dir
func SaveConfigTo(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.credentials", cfg.Server.Credentials)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("server.requests_per_second", cfg.Server.RequestsPerSecond)

	v.Set("ui.items_per_page", cfg.UI.ItemsPerPage)
	v.Set("ui.reviews_per_page", cfg.UI.ReviewsPerPage)
	v.Set("ui.theme", cfg.UI.Theme)

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	v.Set("cache.dir", cfg.Cache.Dir)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ClearCache removes the stored sessions of every server
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
