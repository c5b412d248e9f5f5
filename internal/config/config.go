// Package config loads Waypoint settings from defaults, an optional YAML
// file and WAYPOINT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting of the waypoint binary.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Readiness ReadinessConfig `mapstructure:"readiness"`
	Tours     ToursConfig     `mapstructure:"tours"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Lease     LeaseConfig     `mapstructure:"lease"`
	Cancel    CancelConfig    `mapstructure:"cancel"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables rotated file logging instead of stderr.
	File string `mapstructure:"file"`
}

// ReadinessConfig bounds the wait for a target after navigation.
type ReadinessConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Interval time.Duration `mapstructure:"interval"`
}

// ToursConfig points at extra tour definitions.
type ToursConfig struct {
	// Dir is a YAML file or a directory of YAML files.
	Dir string `mapstructure:"dir"`
	// Markdown is a Loam repository of step documents.
	Markdown string `mapstructure:"markdown"`
}

// HTTPConfig configures the HTTP bridge.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig enables the cross-process single-tour lease when Addr is set.
type RedisConfig struct {
	Addr   string `mapstructure:"addr"`
	Prefix string `mapstructure:"prefix"`
}

// LeaseConfig configures the lease lifetime.
type LeaseConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// CancelConfig configures the cancellation prompt.
type CancelConfig struct {
	Message string `mapstructure:"message"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("WAYPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("readiness.timeout", 5*time.Second)
	v.SetDefault("readiness.interval", 100*time.Millisecond)
	v.SetDefault("tours.dir", "")
	v.SetDefault("tours.markdown", "")
	v.SetDefault("http.port", 8080)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.prefix", "waypoint:")
	v.SetDefault("lease.ttl", 30*time.Minute)
	v.SetDefault("cancel.message", "")
}

// Load reads configuration. path is an optional YAML file; an empty path
// means defaults and environment only.
func Load(path string) (*Config, error) {
	return LoadWith(New(), path)
}

// LoadWith reads configuration into an existing viper instance, for callers
// that bind flags to it first.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Readiness.Timeout < 0 {
		errs = append(errs, fmt.Errorf("readiness.timeout must not be negative"))
	}
	if cfg.Readiness.Interval <= 0 {
		errs = append(errs, fmt.Errorf("readiness.interval must be positive"))
	}
	if cfg.HTTP.Port < 0 || cfg.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", cfg.HTTP.Port))
	}
	if cfg.Redis.Addr != "" && cfg.Lease.TTL <= 0 {
		errs = append(errs, fmt.Errorf("lease.ttl must be positive when redis.addr is set"))
	}
	return errors.Join(errs...)
}
