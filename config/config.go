package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultMenuWebhookURL is the fallback OCR/translation endpoint used when
// MENU_WEBHOOK_URL is not set.
const DefaultMenuWebhookURL = "http://srv858154.hstgr.cloud:5678/webhook/afb1492e-cda4-44d5-9906-f91d7525d003"

type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	CORSOrigin string

	StripeSecretKey     string
	StripeWebhookSecret string

	SiteURL        string
	MenuWebhookURL string
}

func LoadEnv() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		DBURL:      mustEnv("DB_URL"),
		JWTSecret:  mustEnv("JWT_SECRET"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		StripeSecretKey:     mustEnv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: mustEnv("STRIPE_WEBHOOK_SECRET"),

		SiteURL:        mustEnv("SITE_URL"),
		MenuWebhookURL: getEnv("MENU_WEBHOOK_URL", DefaultMenuWebhookURL),
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
