package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	TokenTTL    time.Duration
	AdminAPIKey string
	LogMode     string
}

// Load collects the configuration from the environment. godotenv is expected
// to have been loaded by the caller.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "northfish"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
		LogMode:     getEnv("LOG_MODE", "dev"),
	}
}

// DSN returns the postgres connection string, preferring DATABASE_URL over
// the discrete DB_* parts.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
