// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv     string
	Port       string
	MongoURL   string
	MongoDB    string
	RedisURL   string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	LogLevel   string
	LogFormat  string

	// Login endpoint rate limiting (per client IP).
	LoginRatePerSecond float64
	LoginRateBurst     int
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		MongoURL:  getEnv("MONGO_URL", ""),
		MongoDB:   getEnv("MONGO_DB", "simple-blog"),
		RedisURL:  getEnv("REDIS_URL", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AppEnv == "production" && len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL must be a valid duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	cfg.TokenTTL = ttl

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(bcrypt.DefaultCost)))
	if err != nil {
		return nil, fmt.Errorf("BCRYPT_COST must be an integer: %w", err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	cfg.BcryptCost = cost

	rate, err := strconv.ParseFloat(getEnv("LOGIN_RATE_PER_SECOND", "5"), 64)
	if err != nil || rate <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_SECOND must be a positive number")
	}
	cfg.LoginRatePerSecond = rate

	burst, err := strconv.Atoi(getEnv("LOGIN_RATE_BURST", "10"))
	if err != nil || burst <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_BURST must be a positive integer")
	}
	cfg.LoginRateBurst = burst

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
