// Package config loads service configuration from a yaml file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	NATS     NATSConfig     `mapstructure:"nats"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeout int    `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int    `mapstructure:"idle_timeout_seconds"`
}

// StoreConfig selects the persistence backend. "memory" is the default
// and seeds the bootstrap fixture set; "postgres" uses the database
// section below.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
	// SeedPassword is the password every seeded user gets in memory
	// mode. Development convenience only.
	SeedPassword string `mapstructure:"seed_password"`
}

type NATSConfig struct {
	URL           string `mapstructure:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load reads config.<ENV>.yaml when present and applies environment
// variable overrides on top.
func Load() (*Config, error) {
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/configs")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")

	viper.SetDefault("env", env)
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout_seconds", 15)
	viper.SetDefault("server.write_timeout_seconds", 15)
	viper.SetDefault("server.idle_timeout_seconds", 60)
	viper.SetDefault("store.driver", "memory")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.name", "portal")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("auth.token_ttl_minutes", 60)
	viper.SetDefault("auth.seed_password", "pec@2024")
	viper.SetDefault("nats.url", "")
	viper.SetDefault("nats.subject_prefix", "portal")

	// Config file is optional; defaults plus ENV cover local runs.
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("store.driver", "STORE_DRIVER")
	viper.BindEnv("database.user", "DB_USER")
	viper.BindEnv("database.password", "DB_PASSWORD")
	viper.BindEnv("database.host", "DB_HOST")
	viper.BindEnv("database.name", "DB_NAME")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.seed_password", "SEED_PASSWORD")
	viper.BindEnv("nats.url", "NATS_URL")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Env != "local" {
			return nil, fmt.Errorf("JWT_SECRET is required outside local env")
		}
		cfg.Auth.JWTSecret = "local-dev-secret"
	}

	return &cfg, nil
}
