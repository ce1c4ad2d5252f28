package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Savings  SavingsConfig
	Receipts ReceiptsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	BaseURL     string
	FrontendURL string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	// RankingTTL is how long a computed ranking is served from cache
	RankingTTL time.Duration
	// IdempotencyTTL bounds how long a deposit Idempotency-Key is remembered
	IdempotencyTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SavingsConfig holds the savings rules
type SavingsConfig struct {
	DefaultGoal    decimal.Decimal
	MinDeposit     decimal.Decimal
	InactivityDays int
	DefaultPlan    string

	// ReevaluationInterval schedules the background badge re-evaluation; zero disables it
	ReevaluationInterval time.Duration
}

// InactivityWindow is how long without deposits before a user counts as inactive
func (c SavingsConfig) InactivityWindow() time.Duration {
	return time.Duration(c.InactivityDays) * 24 * time.Hour
}

// ReceiptsConfig holds receipt rendering configuration
type ReceiptsConfig struct {
	Dir         string
	PublicPath  string
	CountryCode string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "5000"),
			Env:         getEnv("SERVER_ENV", "development"),
			BaseURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000"), "/"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvAsInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "ahorros"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "ahorros.db"),
		},
		Redis: RedisConfig{
			Enabled:        getEnvAsBool("REDIS_ENABLED", false),
			URL:            getEnv("REDIS_URL", "redis://localhost:6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			RankingTTL:     getEnvAsDuration("REDIS_RANKING_TTL", time.Minute),
			IdempotencyTTL: getEnvAsDuration("REDIS_IDEMPOTENCY_TTL", 24*time.Hour),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 7*24*time.Hour),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),
		},
		Savings: SavingsConfig{
			DefaultGoal:          getEnvAsDecimal("SAVINGS_DEFAULT_GOAL", decimal.NewFromInt(500)),
			MinDeposit:           getEnvAsDecimal("SAVINGS_MIN_DEPOSIT", decimal.NewFromInt(5)),
			InactivityDays:       getEnvAsInt("SAVINGS_INACTIVITY_DAYS", 30),
			DefaultPlan:          getEnv("SAVINGS_DEFAULT_PLAN", "Ahorro Campamento 2027"),
			ReevaluationInterval: getEnvAsDuration("SAVINGS_BADGE_REEVALUATION_INTERVAL", 0),
		},
		Receipts: ReceiptsConfig{
			Dir:         getEnv("RECEIPTS_DIR", "receipts"),
			PublicPath:  getEnv("RECEIPTS_PUBLIC_PATH", "/receipts"),
			CountryCode: getEnv("WHATSAPP_COUNTRY_CODE", "591"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && d.IsPositive() {
			return d
		}
	}
	return defaultValue
}
