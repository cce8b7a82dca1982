package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppName    string
	ServerPort int

	MongoURI     string
	DatabaseName string
	TxnEnabled   bool

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	MaxReportSize int64

	JobsEnabled bool
}

// Load builds the configuration once at startup. godotenv is expected to have
// populated the environment before this runs.
func Load() *Config {
	return &Config{
		AppName:    getEnv("APP_NAME", "caretrack"),
		ServerPort: getEnvInt("SERVER_PORT", 3000),

		MongoURI:     getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DatabaseName: getEnv("MONGODB_DATABASE", "caretrack"),
		TxnEnabled:   getEnvBool("MONGODB_TXN_ENABLED", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getEnvDuration("JWT_TOKEN_TTL", 24*time.Hour),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MaxReportSize: getEnvInt64("MAX_REPORT_SIZE", 5*1024*1024),

		JobsEnabled: getEnvBool("JOBS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
