package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Config holds every runtime setting of the admin console server.
type Config struct {
	AppPort int

	// APIBaseURL is the remote rental API root, e.g. http://host:4062/api.
	APIBaseURL        string
	UpstreamTimeout   time.Duration
	UpstreamRPS       float64
	ExportConcurrency int

	JWTSecret    string
	SessionTTL   time.Duration
	SessionStore string

	RedisAddr     string
	RedisPassword string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	LogFile  string
	LogLevel string

	// DisplayTimezone is the IANA zone export dates are shown in.
	DisplayTimezone string

	CORSOrigins []string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found – relying on env vars")
	}

	cfg := Config{}

	cfg.AppPort = cast.ToInt(getEnv("APP_PORT", 8080))

	cfg.APIBaseURL = strings.TrimRight(cast.ToString(getEnv("API_BASE_URL", "http://localhost:4062/api")), "/")
	cfg.UpstreamTimeout = getDuration("UPSTREAM_TIMEOUT", 15*time.Second)
	cfg.UpstreamRPS = cast.ToFloat64(getEnv("UPSTREAM_RPS", 0))
	cfg.ExportConcurrency = cast.ToInt(getEnv("EXPORT_CONCURRENCY", 8))

	cfg.JWTSecret = cast.ToString(getEnv("JWT_SECRET", "supersecret"))
	cfg.SessionTTL = getDuration("SESSION_TTL", 12*time.Hour)
	cfg.SessionStore = strings.ToLower(cast.ToString(getEnv("SESSION_STORE", "memory")))

	cfg.RedisAddr = cast.ToString(getEnv("REDIS_ADDR", "localhost:6379"))
	cfg.RedisPassword = cast.ToString(getEnv("REDIS_PASSWORD", ""))

	cfg.DBHost = cast.ToString(getEnv("DB_HOST", "localhost"))
	cfg.DBPort = cast.ToString(getEnv("DB_PORT", "5432"))
	cfg.DBUser = cast.ToString(getEnv("DB_USER", "postgres"))
	cfg.DBPassword = cast.ToString(getEnv("DB_PASSWORD", "password"))
	cfg.DBName = cast.ToString(getEnv("DB_NAME", "rental_admin"))
	cfg.DBSSLMode = cast.ToString(getEnv("DB_SSLMODE", "disable"))
	cfg.DBTimezone = cast.ToString(getEnv("DB_TIMEZONE", "UTC"))

	cfg.LogFile = cast.ToString(getEnv("LOG_FILE", "./logs/app.log"))
	cfg.LogLevel = cast.ToString(getEnv("LOG_LEVEL", "info"))
	cfg.DisplayTimezone = cast.ToString(getEnv("DISPLAY_TIMEZONE", "Asia/Kolkata"))

	cfg.CORSOrigins = splitList(cast.ToString(getEnv("CORS_ORIGINS", "")))

	if cfg.ExportConcurrency < 1 {
		cfg.ExportConcurrency = 1
	}

	return cfg
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key string, defaultValue interface{}) interface{} {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}

// getDuration reads a Go duration such as "15s" or "12h". Values without a
// unit, unparseable or not positive fall back to the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	raw = strings.TrimSpace(raw)
	if !exists || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		logrus.WithFields(logrus.Fields{"key": key, "value": raw, "default": defaultValue}).
			Warn("Invalid duration, expected a unit such as 15s or 12h; using default")
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
