package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	AppEnv     string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	TMDBAPIKey     string
	TMDBBaseURL    string
	TMDBLanguage   string
	SearchCacheTTL time.Duration

	KafkaBrokers     []string
	KafkaReviewTopic string

	SwaggerHost string
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.HasPrefix(strings.ToLower(c.AppEnv), "prod")
}

// Load builds Config from the environment (and an optional .env file).
// It fails when JWT_SECRET is missing: tokens cannot be issued or verified without it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded (%v), using process environment", err)
	}

	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseDSN:      getEnv("DATABASE_DSN", "user:password@tcp(localhost:3306)/moviereview?charset=utf8mb4&parseTime=True&loc=Local"),
		ResetDB:          os.Getenv("RESET_DB") == "true",
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		TMDBAPIKey:       os.Getenv("TMDB_API_KEY"),
		TMDBBaseURL:      getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBLanguage:     getEnv("TMDB_LANGUAGE", "ja-JP"),
		SearchCacheTTL:   time.Duration(getEnvInt("SEARCH_CACHE_TTL_SECONDS", 600)) * time.Second,
		KafkaBrokers:     csv(os.Getenv("KAFKA_BROKERS")),
		KafkaReviewTopic: getEnv("KAFKA_REVIEW_TOPIC", "review_events"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
