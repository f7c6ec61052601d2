package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"bidexpert/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds runtime settings read from the environment
type Config struct {
	Port                string
	Storage             string
	MySQL               MySQLConfig
	DefaultBidIncrement decimal.Decimal
	MaxBidAttempts      int
	LogLevel            string
	SeedDemoData        bool
}

// MySQLConfig holds the connection settings for the mysql storage backend
type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Database string
}

// DSN builds the driver connection string
func (m MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = m.User
	cfg.Passwd = m.Password
	cfg.Net = "tcp"
	cfg.Addr = m.Host
	cfg.DBName = m.Database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// Load reads the configuration from the process environment
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads the configuration using getenv for lookups
func LoadFrom(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:     get("PORT", "8080"),
		Storage:  strings.ToLower(get("STORAGE", StorageMemory)),
		LogLevel: get("LOG_LEVEL", "info"),
		MySQL: MySQLConfig{
			User:     get("MYSQL_USER", "user"),
			Password: get("MYSQL_PWD", "password"),
			Host:     get("MYSQL_HOST", "127.0.0.1:3306"),
			Database: get("MYSQL_DATABASE", "bidexpert"),
		},
	}

	if cfg.Storage != StorageMemory && cfg.Storage != StorageMySQL {
		return Config{}, fmt.Errorf("config: unknown STORAGE %q", cfg.Storage)
	}

	inc, err := decimal.NewFromString(get("DEFAULT_BID_INCREMENT", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("config: DEFAULT_BID_INCREMENT: %w", err)
	}
	if inc.IsNegative() {
		return Config{}, fmt.Errorf("config: DEFAULT_BID_INCREMENT must not be negative, got %s", inc)
	}
	if !models.WholeCents(inc) {
		return Config{}, fmt.Errorf("config: DEFAULT_BID_INCREMENT must be in whole cents, got %s", inc)
	}
	cfg.DefaultBidIncrement = inc

	attempts, err := strconv.Atoi(get("MAX_BID_ATTEMPTS", "5"))
	if err != nil {
		return Config{}, fmt.Errorf("config: MAX_BID_ATTEMPTS: %w", err)
	}
	if attempts < 1 {
		return Config{}, fmt.Errorf("config: MAX_BID_ATTEMPTS must be at least 1, got %d", attempts)
	}
	cfg.MaxBidAttempts = attempts

	seedDefault := strconv.FormatBool(cfg.Storage == StorageMemory)
	seed, err := strconv.ParseBool(get("SEED_DEMO_DATA", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("config: SEED_DEMO_DATA: %w", err)
	}
	cfg.SeedDemoData = seed

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}
