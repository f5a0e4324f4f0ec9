package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the combat simulator.
type Simulator struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Combat tuning
	Combat Combat `yaml:"combat"`

	// Combat log archival
	Archive Archive `yaml:"archive"`
}

// Archive configures where combat log entries are copied to.
// Both sinks are optional; an empty section disables it.
type Archive struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`

	BufferSize    int           `yaml:"buffer_size"`    // pump queue capacity (default: 1024)
	BatchSize     int           `yaml:"batch_size"`     // entries per flush (default: 64)
	FlushInterval time.Duration `yaml:"flush_interval"` // max delay before a partial batch is written (default: 500ms)
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig points at the stream combat entries are appended to.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Stream  string `yaml:"stream"`
	MaxLen  int64  `yaml:"max_len"` // approximate stream trim length, 0 = unbounded
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel: "info",
		Combat:   DefaultCombat(),
		Archive: Archive{
			BufferSize:    1024,
			BatchSize:     64,
			FlushInterval: 500 * time.Millisecond,
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "galaxies",
				Password: "galaxies",
				DBName:   "galaxies",
				SSLMode:  "disable",
			},
			Redis: RedisConfig{
				URL:    "redis://127.0.0.1:6379/0",
				Stream: "galaxies:combat",
				MaxLen: 100000,
			},
		},
	}
}

// LoadSimulator loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulator(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Combat.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}
