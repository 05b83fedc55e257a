// Package config provides application configuration from environment
// variables and config files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Provider ProviderConfig
	Worker   WorkerConfig
	Logger   LoggerConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis settings for the job queue and result cache.
type RedisConfig struct {
	Addr     string
	Password string `json:"-"`
	DB       int
	Prefix   string
}

// ProviderConfig holds settings for the external product-search provider.
type ProviderConfig struct {
	APIKey     string `json:"-"`
	BaseURL    string
	Location   string
	Language   string
	Country    string
	PerSiteNum int
	Timeout    time.Duration
}

// WorkerConfig holds worker pool settings.
type WorkerConfig struct {
	PoolSize     int
	JobTimeout   time.Duration
	DrainTimeout time.Duration
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// Initialize configures Viper from environment variables and config files.
// This must be called before Load.
func Initialize() error {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	_ = viper.ReadInConfig()

	if err := bindEnvironmentVariables(); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	return nil
}

// setDefaults sets production-safe default configuration values.
func setDefaults() {
	viper.SetDefault("app.name", "shopsearch")
	viper.SetDefault("app.environment", "production")
	viper.SetDefault("app.debug", false)

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "shopsearch")
	viper.SetDefault("database.dbname", "shopsearch")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "shopsearch")

	viper.SetDefault("provider.base_url", "https://serpapi.com/search.json")
	viper.SetDefault("provider.location", "India")
	viper.SetDefault("provider.language", "en")
	viper.SetDefault("provider.country", "in")
	viper.SetDefault("provider.per_site_num", 15)
	viper.SetDefault("provider.timeout", "30s")

	viper.SetDefault("worker.pool_size", 4)
	viper.SetDefault("worker.job_timeout", "5m")
	viper.SetDefault("worker.drain_timeout", "30s")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("logger.development", false)
}

// bindEnvironmentVariables binds well-known environment variables to
// config keys.
func bindEnvironmentVariables() error {
	bindings := map[string]string{
		"database.host":     "DATABASE_HOST",
		"database.port":     "DATABASE_PORT",
		"database.user":     "DATABASE_USER",
		"database.password": "DATABASE_PASSWORD",
		"database.dbname":   "DATABASE_DBNAME",
		"database.sslmode":  "DATABASE_SSLMODE",
		"redis.addr":        "REDIS_ADDR",
		"redis.password":    "REDIS_PASSWORD",
		"provider.api_key":  "SERPAPI_KEY",
		"server.address":    "SERVER_ADDRESS",
		"logger.level":      "LOG_LEVEL",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	return nil
}

// Load reads the configuration out of Viper.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
		},
		Server: ServerConfig{
			Address:         viper.GetString("server.address"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("database.host"),
			Port:     viper.GetString("database.port"),
			User:     viper.GetString("database.user"),
			Password: viper.GetString("database.password"),
			DBName:   viper.GetString("database.dbname"),
			SSLMode:  viper.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			Prefix:   viper.GetString("redis.prefix"),
		},
		Provider: ProviderConfig{
			APIKey:     viper.GetString("provider.api_key"),
			BaseURL:    viper.GetString("provider.base_url"),
			Location:   viper.GetString("provider.location"),
			Language:   viper.GetString("provider.language"),
			Country:    viper.GetString("provider.country"),
			PerSiteNum: viper.GetInt("provider.per_site_num"),
			Timeout:    viper.GetDuration("provider.timeout"),
		},
		Worker: WorkerConfig{
			PoolSize:     viper.GetInt("worker.pool_size"),
			JobTimeout:   viper.GetDuration("worker.job_timeout"),
			DrainTimeout: viper.GetDuration("worker.drain_timeout"),
		},
		Logger: LoggerConfig{
			Level:       viper.GetString("logger.level"),
			Encoding:    viper.GetString("logger.encoding"),
			Development: viper.GetBool("logger.development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obviously broken values.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Worker.PoolSize <= 0 {
		return fmt.Errorf("worker pool size must be positive, got %d", c.Worker.PoolSize)
	}
	if c.Provider.PerSiteNum <= 0 {
		return fmt.Errorf("provider per_site_num must be positive, got %d", c.Provider.PerSiteNum)
	}
	return nil
}
