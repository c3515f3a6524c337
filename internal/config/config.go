package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// APIKey must be sent as X-Api-Key on every /api request.
	APIKey    string
	JWTSecret string

	// InternalSecretKey marks service-to-service calls for the internal rate tier.
	InternalSecretKey string

	RedisAddr    string
	KafkaBrokers []string
	ServiceName  string
	CORSOrigins  []string

	// Optional bootstrap admin account, created on startup when both are set.
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:               os.Getenv("DB_HOST"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBPort:               os.Getenv("DB_PORT"),
		AppPort:              getenv("APP_PORT", "8080"),
		AppEnv:               os.Getenv("APP_ENV"),
		APIKey:               os.Getenv("API_KEY"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		InternalSecretKey:    os.Getenv("INTERNAL_SECRET_KEY"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		KafkaBrokers:         splitCSV(os.Getenv("KAFKA_BROKERS")),
		ServiceName:          getenv("SERVICE_NAME", "gridiron-api"),
		CORSOrigins:          splitCSV(getenv("CORS_ORIGINS", "http://localhost:3000")),
		DefaultAdminEmail:    os.Getenv("DEFAULT_ADMIN_EMAIL"),
		DefaultAdminPassword: os.Getenv("DEFAULT_ADMIN_PASSWORD"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
