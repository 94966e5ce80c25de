package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	FirebaseProject            string
	FirebaseApiKey             string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string
	StorageBucket              string
	StorageSignedURLs          bool

	LocalStorePath string

	CatalogPageSize    int
	CollectionPageSize int
	FeaturedLimit      int
	GameCacheTTL       time.Duration
	RateLimitPerSecond float64
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:             getEnv("FIREBASE_API_KEY", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./firebase-service-account.json"),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),
		StorageSignedURLs:          getEnv("STORAGE_SIGNED_URLS", "false") == "true",

		LocalStorePath: getEnv("LOCAL_STORE_PATH", "file:gamecatalog-local.db"),

		CatalogPageSize:    getEnvAsInt("CATALOG_PAGE_SIZE", 12),
		CollectionPageSize: getEnvAsInt("COLLECTION_PAGE_SIZE", 5),
		FeaturedLimit:      getEnvAsInt("FEATURED_LIMIT", 6),
		GameCacheTTL:       time.Duration(getEnvAsInt64("GAME_CACHE_TTL_SECONDS", 5*60)) * time.Second,
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 20),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
