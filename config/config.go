package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	TOKEN_TTL   time.Duration
	UPLOAD_DIR  string
	CORS_ORIGIN string
	APP_ENV     string
)

// Session tokens stay valid for 30 days unless TOKEN_TTL overrides it.
const defaultTokenTTL = 30 * 24 * time.Hour

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "5000")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	UPLOAD_DIR = getEnv("UPLOAD_DIR", "uploads")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost")
	APP_ENV = getEnv("APP_ENV", "production")

	TOKEN_TTL = defaultTokenTTL
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid TOKEN_TTL value: %s", raw)
		}
		TOKEN_TTL = d
	}
}

// IsDevelopment controls whether error details may be echoed to clients.
func IsDevelopment() bool {
	return APP_ENV == "development"
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
