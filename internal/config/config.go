package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration, sourced from environment
// variables with development defaults.
type Config struct {
	Port        string
	Environment string

	MongoURI string
	MongoDB  string

	RedisURL string
	NATSURL  string

	UploadEndpoint string
	UploadAPIKey   string
	UploadPerMin   int
	UploadBurst    int

	CORSOrigins []string
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "storefront"),

		RedisURL: getEnv("REDIS_URL", ""),
		NATSURL:  getEnv("NATS_URL", ""),

		UploadEndpoint: getEnv("IMGBB_ENDPOINT", "https://api.imgbb.com/1/upload"),
		UploadAPIKey:   getEnv("IMGBB_API_KEY", ""),
		UploadPerMin:   getEnvInt("UPLOAD_RATE", 30),
		UploadBurst:    getEnvInt("UPLOAD_BURST", 5),

		CORSOrigins: splitEnv(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitEnv(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
