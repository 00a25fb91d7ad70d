package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/tagpicker/internal/api"
)

// EnvPrefix prefixes environment overrides, e.g. TAGPICKER_API_KEY.
const EnvPrefix = "TAGPICKER"

// Config holds CLI configuration stored at ~/.tagpicker/config.
type Config struct {
	ProjectID       string `yaml:"project_id" mapstructure:"project_id"`
	APIKey          string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	Language        string `yaml:"language" mapstructure:"language"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	LogLevel        string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat       string `yaml:"log_format" mapstructure:"log_format"`
	RedisAddr       string `yaml:"redis_addr,omitempty" mapstructure:"redis_addr"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds,omitempty" mapstructure:"cache_ttl_seconds"`
}

// Default returns a config with every optional field filled in.
func Default() Config {
	return Config{
		BaseURL:         api.DefaultBaseURL,
		Language:        "default",
		TimeoutSeconds:  30,
		LogLevel:        "warn",
		LogFormat:       "console",
		CacheTTLSeconds: 300,
	}
}

// Timeout returns the HTTP timeout for the delivery API.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long shared tag sets stay cached.
func (c *Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tagpicker", "config")
}

// Load reads the config file and applies TAGPICKER_* environment overrides.
// Returns an error wrapping fs.ErrNotExist when the file is missing.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config missing project_id")
	}
	return cfg, nil
}

// LoadOrEnv behaves like Load but falls back to defaults plus environment
// overrides when no config file exists.
func LoadOrEnv() (*Config, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("project_id", d.ProjectID)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("language", d.Language)
	v.SetDefault("timeout_seconds", d.TimeoutSeconds)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("redis_addr", d.RedisAddr)
	v.SetDefault("cache_ttl_seconds", d.CacheTTLSeconds)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}
