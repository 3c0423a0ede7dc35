// Package config loads the server's tunables from the environment and
// an optional YAML file through viper. There are no command line
// flags: the only positional argument the command line accepts is the
// database file path.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	ListenAddr  string        `mapstructure:"listen_addr"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
	LogFormat   string        `mapstructure:"log_format"`
	MonitorAddr string        `mapstructure:"monitor_addr"`
}

// DefaultConfig returns the values the server runs with when nothing
// overrides them. MonitorAddr is empty by default: the monitoring
// page does not run unless explicitly configured.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  "127.0.0.1:11211",
		IdleTimeout: 60 * time.Second,
		LogFormat:   "text",
		MonitorAddr: "",
	}
}

// Load reads configuration from environment variables prefixed
// MEMCACHED_ and, if present, a memcached.yaml in the working
// directory, /etc/memcached/ or $HOME/.memcached. No command line flag ever
// contributes to this config: the CLI's only argument is the
// database file, handled separately by the caller.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("memcached")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/memcached/")
	viper.AddConfigPath("$HOME/.memcached")

	viper.SetEnvPrefix("MEMCACHED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("listen_addr", cfg.ListenAddr)
	viper.SetDefault("idle_timeout", cfg.IdleTimeout)
	viper.SetDefault("log_format", cfg.LogFormat)
	viper.SetDefault("monitor_addr", cfg.MonitorAddr)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle_timeout must be positive, got %v", c.IdleTimeout)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", c.LogFormat)
	}
	return nil
}
