package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ListenAddr  string
	UpstreamURL string

	RedisAddr   string
	CacheTTLSec int

	MaxRetries       int
	RetryBaseMs      int
	UpstreamTimeoutS int

	CSVExportDir string
	Debug        bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "tracker"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "tracker123"),
		PostgresDB:       getEnv("POSTGRES_DB", "home_tracker"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		UpstreamURL: getEnv("UPSTREAM_URL", "http://localhost:5000/get_listings"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTLSec: getEnvInt("CACHE_TTL_SEC", 300),

		MaxRetries:       getEnvInt("MAX_RETRIES", 3),
		RetryBaseMs:      getEnvInt("RETRY_BASE_MS", 500),
		UpstreamTimeoutS: getEnvInt("UPSTREAM_TIMEOUT_S", 15),

		CSVExportDir: getEnv("CSV_EXPORT_DIR", "./output"),
		Debug:        getEnv("DEBUG", "") != "",
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
