package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file and the environment.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Filter   FilterConfig   `toml:"filter"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig contains HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Host         string `toml:"host" env:"TUNELYF_HOST"`
	Port         int    `toml:"port" env:"PORT"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

// Addr returns the listen address for the server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UpstreamConfig contains settings for the Audius discovery provider.
type UpstreamConfig struct {
	BaseURL        string `toml:"base_url" env:"AUDIUS_BASE_URL"`
	AppName        string `toml:"app_name" env:"AUDIUS_APP_NAME"`
	UserAgent      string `toml:"user_agent"`
	Timeout        int    `toml:"timeout"`
	TrendingWindow string `toml:"trending_window"`
}

// FilterConfig contains the result filtering settings shared by all endpoints.
type FilterConfig struct {
	Missing         string   `toml:"missing"`
	MinDuration     int      `toml:"min_duration"`
	MaxDuration     int      `toml:"max_duration"`
	FetchMultiplier int      `toml:"fetch_multiplier"`
	MaxFetch        int      `toml:"max_fetch"`
	Transliterate   bool     `toml:"transliterate"`
	Vocabulary      []string `toml:"vocabulary"`
}

// LogConfig contains logger settings. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `toml:"level" env:"LOG_LEVEL"`
	File       string `toml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides config values with any environment variables that are set.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 0 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	case c.Upstream.BaseURL == "":
		return fmt.Errorf("%w: upstream base_url is empty", ErrInvalidConfig)
	case c.Filter.MinDuration < 0 || c.Filter.MaxDuration < c.Filter.MinDuration:
		return fmt.Errorf("%w: duration bounds [%d, %d]", ErrInvalidConfig, c.Filter.MinDuration, c.Filter.MaxDuration)
	case c.Filter.Missing != "exclude" && c.Filter.Missing != "default":
		return fmt.Errorf("%w: filter.missing must be \"exclude\" or \"default\", got %q", ErrInvalidConfig, c.Filter.Missing)
	case c.Filter.FetchMultiplier < 1:
		return fmt.Errorf("%w: fetch_multiplier must be at least 1", ErrInvalidConfig)
	case c.Filter.MaxFetch < 1:
		return fmt.Errorf("%w: max_fetch must be at least 1", ErrInvalidConfig)
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
