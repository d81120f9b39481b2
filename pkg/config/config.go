package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type RecommenderConfig struct {
	// LookbackDays bounds the interaction feed consumed by the batch jobs.
	LookbackDays int

	// MinCoOccurrence is the qualifying filter for similarity edges.
	MinCoOccurrence int

	// TopKSimilar caps the outgoing edges stored per product.
	TopKSimilar int

	// SimilarityBlockSize bounds peak memory during pairwise computation.
	SimilarityBlockSize int

	RecommendationTTL time.Duration
	SimilarityTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ShopSmart API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "shopsmart"),
			Password: getEnv("DB_PASSWORD", "shopsmart_secret"),
			Name:     getEnv("DB_NAME", "shopsmart"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Recommender: RecommenderConfig{
			LookbackDays:        getEnvInt("RECO_LOOKBACK_DAYS", 90),
			MinCoOccurrence:     getEnvInt("RECO_MIN_CO_OCCURRENCE", 2),
			TopKSimilar:         getEnvInt("RECO_TOP_K_SIMILAR", 50),
			SimilarityBlockSize: getEnvInt("RECO_SIMILARITY_BLOCK_SIZE", 500),
			RecommendationTTL:   time.Duration(getEnvInt("CACHE_TTL_RECOMMENDATIONS", 300)) * time.Second,
			SimilarityTTL:       time.Duration(getEnvInt("CACHE_TTL_SIMILAR_PRODUCTS", 3600)) * time.Second,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}

	return defaultVal
}
