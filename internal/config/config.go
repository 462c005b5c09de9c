// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for the client and the development backend.
// The mapstructure tags are used by Viper to unmarshal the data.
type Config struct {
	APIBaseURL    string        `mapstructure:"api_base_url"`
	HttpTimeout   time.Duration `mapstructure:"http_timeout"`
	ListenAddr    string        `mapstructure:"listen_addr"`
	DBPath        string        `mapstructure:"db_path"`
	LogLevel      string        `mapstructure:"log_level"`
	TraceStdout   bool          `mapstructure:"trace_stdout"`
	WatchSchedule string        `mapstructure:"watch_schedule"`
}

// Load loads configuration from an optional config file and JOBBOARD_*
// environment variables. paths overrides the config search path.
func Load(paths ...string) (*Config, error) {
	v := viper.New()

	v.SetDefault("api_base_url", "http://localhost:8000")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("db_path", "jobs.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("trace_stdout", false)
	v.SetDefault("watch_schedule", "@every 30s")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("jobboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file; defaults and env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the binaries cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_base_url %q is not an absolute URL", c.APIBaseURL)
	}
	if c.HttpTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HttpTimeout)
	}
	if _, err := cron.ParseStandard(c.WatchSchedule); err != nil {
		return fmt.Errorf("watch_schedule %q: %w", c.WatchSchedule, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps log_level onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
