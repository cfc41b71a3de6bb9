package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DBPath        string
	DatabaseURL   string
	SessionSecret string
	KafkaAddress  string
	LogLevel      string
	AddRedirect   string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		Port:          EnvIntDefault("PORT", 8080),
		DBPath:        EnvDefault("DB_PATH", "store.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		KafkaAddress:  os.Getenv("KAFKA_ADDRESS"),
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),
		AddRedirect:   EnvDefault("ADD_REDIRECT", "/cart"),
	}

	if config.SessionSecret == "" {
		log.Printf("Notice: SESSION_SECRET not set, using development default")
		config.SessionSecret = "dev-session-secret"
	}

	// /add redirects either back home or straight to the cart.
	if config.AddRedirect != "/" && config.AddRedirect != "/cart" {
		log.Printf("Notice: ADD_REDIRECT %q is not / or /cart, falling back to /cart", config.AddRedirect)
		config.AddRedirect = "/cart"
	}

	return config, nil
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
