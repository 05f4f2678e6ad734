package initializers

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	DBDriver    string
	DBURL       string
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
	SeedCatalog bool

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	AITimeout     time.Duration
	AICacheTTL    time.Duration
	AIRateLimit   int
	RedisURL      string

	KafkaBrokers []string
	S3Bucket     string

	FromEmail         string
	FromEmailPassword string
	FromEmailSMTP     string
	SMTPAddress       string

	LogLevel       string
	LogFile        string
	TracingEnabled bool
}

// LoadConfig reads the configuration from the environment. LoadEnv should run
// first so values from .env are visible.
func LoadConfig() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DBURL:       getEnv("DB_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenTTL:    getEnvAsDuration("TOKEN_TTL", 30*24*time.Hour),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		SeedCatalog: getEnvAsBool("SEED_CATALOG", true),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AITimeout:     getEnvAsDuration("AI_TIMEOUT", 60*time.Second),
		AICacheTTL:    getEnvAsDuration("AI_CACHE_TTL", time.Hour),
		AIRateLimit:   getEnvAsInt("AI_RATE_LIMIT", 20),
		RedisURL:      getEnv("REDIS_URL", ""),

		KafkaBrokers: getEnvAsList("KAFKA_BROKERS", nil),
		S3Bucket:     getEnv("S3_BUCKET", ""),

		FromEmail:         getEnv("FROM_EMAIL", ""),
		FromEmailPassword: getEnv("FROM_EMAIL_PASSWORD", ""),
		FromEmailSMTP:     getEnv("FROM_EMAIL_SMTP", ""),
		SMTPAddress:       getEnv("SMTP_ADDRESS", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		TracingEnabled: getEnvAsBool("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
