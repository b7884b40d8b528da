package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all daemon configuration
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Node       NodeConfig
	Rates      RatesConfig
	Settlement SettlementConfig
	Admin      AdminConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// NodeConfig identifies the Lightning node this gateway authorizes
// withdrawals for, and where to poll its channel status.
type NodeConfig struct {
	ID           string // node public key, part of the withdraw hash contract
	Chain        string // mainnet, testnet, signet or regtest
	StatusURL    string
	PollInterval time.Duration
}

// RatesConfig holds fiat exchange-rate lookup configuration
type RatesConfig struct {
	URL             string
	RefreshSchedule string // cron spec
	Timeout         time.Duration
}

// SettlementConfig holds the remote settlement notification endpoint
type SettlementConfig struct {
	URL     string
	Timeout time.Duration
}

// AdminConfig holds card-management API auth configuration
type AdminConfig struct {
	JWTSecret string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "boltcard"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		Node: NodeConfig{
			ID:           getEnv("NODE_ID", ""),
			Chain:        getEnv("NODE_CHAIN", "mainnet"),
			StatusURL:    getEnv("NODE_STATUS_URL", "http://localhost:9740/v1/status"),
			PollInterval: getEnvAsDuration("NODE_POLL_INTERVAL", "1s"),
		},
		Rates: RatesConfig{
			URL:             getEnv("RATES_URL", "https://blockchain.info/ticker"),
			RefreshSchedule: getEnv("RATES_REFRESH_SCHEDULE", "@every 20m"),
			Timeout:         getEnvAsDuration("RATES_TIMEOUT", "10s"),
		},
		Settlement: SettlementConfig{
			URL:     getEnv("SETTLEMENT_URL", ""),
			Timeout: getEnvAsDuration("SETTLEMENT_TIMEOUT", "10s"),
		},
		Admin: AdminConfig{
			JWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}

	validChains := map[string]bool{"mainnet": true, "testnet": true, "signet": true, "regtest": true}
	if !validChains[c.Node.Chain] {
		return fmt.Errorf("invalid chain: %s (must be mainnet, testnet, signet or regtest)", c.Node.Chain)
	}

	if c.Node.PollInterval <= 0 {
		return fmt.Errorf("node poll interval must be positive")
	}

	// An empty secret would let anyone mint a passing admin token.
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("admin JWT secret cannot be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
