package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Admin
	AdminToken string

	// Spam screening (OpenRouter-backed)
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	ScreeningTimeout  time.Duration
	WorkerInterval    time.Duration
	WorkerBatchSize   int

	// Notifications
	NtfyBaseURL string
	NtfyTopic   string
	NtfyTimeout time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "hotline_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "openai/gpt-5-nano"),
		ScreeningTimeout:  parseDuration(getEnv("SCREENING_TIMEOUT", "30s")),
		WorkerInterval:    parseDuration(getEnv("SPAM_WORKER_INTERVAL", "60s")),
		WorkerBatchSize:   parseInt(getEnv("SPAM_WORKER_BATCH_SIZE", "20")),

		NtfyBaseURL: getEnv("NTFY_BASE_URL", "https://ntfy.sh"),
		NtfyTopic:   getEnv("NTFY_TOPIC", "aiabusehotline-alerts"),
		NtfyTimeout: parseDuration(getEnv("NTFY_TIMEOUT", "10s")),

		Port:        getEnv("PORT", "8000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 20
	}
	return n
}
