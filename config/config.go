package config

import (
	"fmt"
	"os"
)

// Config holds all process configuration, read once from the environment at
// startup. godotenv loads a local .env first when present.
type Config struct {
	Port                string
	DatabaseDSN         string
	StripeSecretKey     string
	StripeWebhookSecret string
	Currency            string
	JWTSecret           string
	GinMode             string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseDSN:         os.Getenv("DATABASE_DSN"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            getEnv("CURRENCY", "usd"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		GinMode:             getEnv("GIN_MODE", "debug"),
	}

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is not set")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	if cfg.StripeWebhookSecret == "" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
