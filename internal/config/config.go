package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"budget-app-go/pkg/logger"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string
	Env      string
	DB       DBConfig
	Security SecurityConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type SecurityConfig struct {
	SecretKey string
	Algorithm string
	TokenTTL  time.Duration
}

// ErrMissingSecretKey is returned when the token signing secret is not
// configured. The process must refuse to start in that case.
var ErrMissingSecretKey = errors.New("BUDGET_APP_SECRET_KEY must be set for token signing")

func Load(log logger.Logger) (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info("config: loaded .env file")
	}

	secret := os.Getenv("BUDGET_APP_SECRET_KEY")
	if secret == "" {
		return Config{}, ErrMissingSecretKey
	}

	ttlMinutes := getEnvInt("BUDGET_APP_ACCESS_TOKEN_EXPIRE_MINUTES", 60)
	if ttlMinutes <= 0 {
		return Config{}, fmt.Errorf("BUDGET_APP_ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer")
	}

	return Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "budget_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Security: SecurityConfig{
			SecretKey: secret,
			Algorithm: getEnv("BUDGET_APP_ALGORITHM", "HS256"),
			TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
