package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string

	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool
	CSRFProtect   bool

	LogLevel string

	KafkaBrokers []string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not loaded: %v, using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shop"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: EnvDefault("DATABASE_URL", "ecommerce.db"),

		SessionSecret: []byte(EnvDefault("SESSION_SECRET", "")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", 24*time.Hour),
		CookieSecure:  EnvBoolDefault("COOKIE_SECURE", false),
		CSRFProtect:   EnvBoolDefault("CSRF_PROTECT", false),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers: CSV(EnvDefault("KAFKA_BROKERS", "")),
	}
}
