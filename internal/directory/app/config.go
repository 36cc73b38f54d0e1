package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config can come from a YAML file, environment variables, or both.
// Environment variables always override YAML values.
type Config struct {
	Env       string `yaml:"env" env:"ENV" env-default:"dev"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogFile   string `yaml:"log_file" env:"LOG_FILE"` // Optional: rotated copy of every log line

	Port                int           `yaml:"port" env:"PORT" env-default:"8080"`
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period" env:"SHUTDOWN_GRACE_PERIOD" env-default:"10s"`

	StoreDriver  string `yaml:"store_driver" env:"STORE_DRIVER" env-default:"sqlite"`
	DatabaseFile string `yaml:"database_file" env:"DATABASE_FILE" env-default:"directory.db"`

	Redis RedisConfig `yaml:"redis"`

	IDFormat string `yaml:"id_format" env:"ID_FORMAT" env-default:"ulid"`
	SeedFile string `yaml:"seed_file" env:"SEED_FILE"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"directory:"`
}

// LoadConfig reads path when given, then applies the environment.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverSQLite, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.StoreDriver)
	}

	if _, err := idx.Generator(idx.Format(c.IDFormat)); err != nil {
		return fmt.Errorf("%w: id format %q", ErrInvalidConfig, c.IDFormat)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	return nil
}
