package config

import (
	"os"
	"strings"
)

type Config struct {
	Port             string
	StaticDir        string
	DatabaseURL      string
	KafkaBrokers     []string
	AnalyticsEnabled bool
}

// Load reads the service configuration from the environment. DatabaseURL
// and KafkaBrokers are optional; leaving them empty runs the engine
// without stats persistence or analytics.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3000"),
		StaticDir:        getEnv("STATIC_DIR", "./web/dist/"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		AnalyticsEnabled: getEnv("ANALYTICS_ENABLED", "true") == "true",
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
