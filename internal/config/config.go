package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers accepted by storage.driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`       // current application environment (local, dev, production)
	LogLevel         string  `mapstructure:"log_level"` // minimum zap level
	TelegramAPIToken string  `mapstructure:"-"`         // Telegram API token loaded from environment
	API              API     `mapstructure:"api"`
	Storage          Storage `mapstructure:"storage"`
	DB               DB      `mapstructure:"database"`
}

// API describes the remote course server.
type API struct {
	BaseURL        string        `mapstructure:"base_url"`
	HealthInterval time.Duration `mapstructure:"health_interval"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Driver     string `mapstructure:"driver"`
	FilePath   string `mapstructure:"file_path"`
	SQLitePath string `mapstructure:"sqlite_path"`
	RedisAddr  string `mapstructure:"redis_addr"`
	RedisDB    int    `mapstructure:"redis_db"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.health_interval", "30s")
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.file_path", "data/learn-scripting.json")
	v.SetDefault("storage.sqlite_path", "data/learn-scripting.db")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // api.base_url -> API_BASE_URL
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage.redis_addr", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.Storage.validate(cfg.DB); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (s Storage) validate(db DB) error {
	switch s.Driver {
	case DriverMemory, DriverFile, DriverSQLite, DriverRedis:
		return nil
	case DriverPostgres:
		if _, err := db.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, s.Driver)
	}
}
