package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env            string
	Port           string
	DatabaseURL    string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	RequestTimeout time.Duration
	SendGridAPIKey string
	NotifyFrom     string
	NotifyTo       string
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MailEnabled reports whether signup notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.NotifyFrom != "" && c.NotifyTo != ""
}

// LoadConfig reads the environment, loading a .env file first outside
// production.
func LoadConfig() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, continuing")
		}
	}

	bcryptCost, err := parseInt(os.Getenv("BCRYPT_COST"), DefaultBcryptCost)
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST must be an integer: %w", err)
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       parseDuration(os.Getenv("TOKEN_TTL"), DefaultTokenTTL),
		BcryptCost:     bcryptCost,
		RequestTimeout: parseDuration(os.Getenv("REQUEST_TIMEOUT"), 15*time.Second),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		NotifyFrom:     os.Getenv("NOTIFY_FROM"),
		NotifyTo:       os.Getenv("NOTIFY_TO"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.IsProduction() && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required in production")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return defaultValue
	}
	return duration
}

// parseInt returns defaultValue for an unset variable and an error for a
// malformed one.
func parseInt(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
