package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTTTLHours   int
	RabbitMQURI   string
	EventExchange string
	AdminEmail    string
	CORSOrigins   []string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:          getEnvOrDefault("PORT", "5000"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "quiz_platform"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "quiz-platform-dev-secret"),
		JWTTTLHours:   getEnvIntOrDefault("JWT_TTL_HOURS", 24),
		RabbitMQURI:   getEnvOrDefault("RABBITMQ_URI", ""),
		EventExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", ""),
		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
		CORSOrigins:   splitOrigins(getEnvOrDefault("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
