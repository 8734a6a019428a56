package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library LibraryConfig `toml:"library"`
	Lookup  LookupConfig  `toml:"lookup"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// LibraryConfig locates the catalog file.
type LibraryConfig struct {
	Path string `toml:"path" env:"LIBRARY_FILE"`
}

// LookupConfig contains Open Library client settings.
type LookupConfig struct {
	BaseURL              string  `toml:"base_url" env:"OPEN_LIBRARY_BASE_URL"`
	TimeoutSeconds       float64 `toml:"timeout_seconds" env:"API_TIMEOUT"`
	AuthorTimeoutSeconds float64 `toml:"author_timeout_seconds" env:"API_AUTHOR_TIMEOUT"`
	RequestsPerSecond    float64 `toml:"requests_per_second" env:"API_RATE_LIMIT"`
	UserAgent            string  `toml:"user_agent" env:"API_USER_AGENT"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host" env:"SHELF_HOST"`
	Port int    `toml:"port" env:"SHELF_PORT"`
}

// LogConfig controls logger verbosity and the TUI log file.
type LogConfig struct {
	Level string `toml:"level" env:"SHELF_LOG_LEVEL"`
	Debug bool   `toml:"debug" env:"DEBUG"`
	File  string `toml:"file" env:"SHELF_LOG_FILE"`
}

// Timeout returns the book lookup timeout.
func (c LookupConfig) Timeout() time.Duration {
	return secondsToDuration(c.TimeoutSeconds)
}

// AuthorTimeout returns the per-author lookup timeout.
func (c LookupConfig) AuthorTimeout() time.Duration {
	return secondsToDuration(c.AuthorTimeoutSeconds)
}

// Addr joins host and port for [net/http.Server].
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to [DefaultConfig] otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	config, err := LoadConfig(path)
	if errors.Is(err, ErrMissingConfig) {
		return DefaultConfig(), nil
	}
	return config, err
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides fields whose environment variables are set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks the values the catalog and its adapters depend on.
func (c *Config) Validate() error {
	if c.Library.Path == "" {
		return fmt.Errorf("%w: library.path is required", ErrInvalidConfig)
	}

	u, err := url.Parse(c.Lookup.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: lookup.base_url must be an http(s) URL, got %q", ErrInvalidConfig, c.Lookup.BaseURL)
	}
	if c.Lookup.TimeoutSeconds <= 0 || c.Lookup.AuthorTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: lookup timeouts must be positive", ErrInvalidConfig)
	}
	if c.Lookup.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: lookup.requests_per_second must be positive", ErrInvalidConfig)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
