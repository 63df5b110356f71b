package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Hub      HubConfig
	GitHub   GitHubConfig
	Scoring  ScoringConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	// Driver selects the artifact store backend: postgres or memory.
	Driver          string
	SearchScanLimit int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// HubConfig drives the model-hub fetch client.
type HubConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	CacheTTL      time.Duration
	RatePerSecond float64
	Burst         int
}

// GitHubConfig drives the code-repository fetch client.
type GitHubConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	CacheTTL      time.Duration
	RatePerSecond float64
	Burst         int
}

type ScoringConfig struct {
	// Deadline bounds one whole scoring pass; metrics still running when it
	// fires are recorded as failed.
	Deadline time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("STORE_DRIVER", "postgres")
	v.SetDefault("SEARCH_SCAN_LIMIT", 1000)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "registry")
	v.SetDefault("DB_PASSWORD", "registry")
	v.SetDefault("DB_NAME", "registry")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("HUB_BASE_URL", "https://huggingface.co")
	v.SetDefault("HUB_TOKEN", "")
	v.SetDefault("HUB_TIMEOUT", "10s")
	v.SetDefault("HUB_CACHE_TTL", "5m")
	v.SetDefault("HUB_RATE_PER_SECOND", 5.0)
	v.SetDefault("HUB_BURST", 10)
	v.SetDefault("GITHUB_BASE_URL", "https://api.github.com")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_TIMEOUT", "10s")
	v.SetDefault("GITHUB_CACHE_TTL", "5m")
	v.SetDefault("GITHUB_RATE_PER_SECOND", 1.0)
	v.SetDefault("GITHUB_BURST", 5)
	v.SetDefault("SCORING_DEADLINE", "30s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Store: StoreConfig{
			Driver:          v.GetString("STORE_DRIVER"),
			SearchScanLimit: v.GetInt("SEARCH_SCAN_LIMIT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Hub: HubConfig{
			BaseURL:       v.GetString("HUB_BASE_URL"),
			Token:         v.GetString("HUB_TOKEN"),
			Timeout:       v.GetDuration("HUB_TIMEOUT"),
			CacheTTL:      v.GetDuration("HUB_CACHE_TTL"),
			RatePerSecond: v.GetFloat64("HUB_RATE_PER_SECOND"),
			Burst:         v.GetInt("HUB_BURST"),
		},
		GitHub: GitHubConfig{
			BaseURL:       v.GetString("GITHUB_BASE_URL"),
			Token:         v.GetString("GITHUB_TOKEN"),
			Timeout:       v.GetDuration("GITHUB_TIMEOUT"),
			CacheTTL:      v.GetDuration("GITHUB_CACHE_TTL"),
			RatePerSecond: v.GetFloat64("GITHUB_RATE_PER_SECOND"),
			Burst:         v.GetInt("GITHUB_BURST"),
		},
		Scoring: ScoringConfig{
			Deadline: v.GetDuration("SCORING_DEADLINE"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
