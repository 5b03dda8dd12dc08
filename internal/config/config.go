package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// Empty brokers means audit entries go to the console producer.
	KafkaBrokers    []string
	KafkaAuditTopic string

	AuditWorkers       int
	AuditBatchSize     int
	AuditFlushInterval time.Duration
}

// Load reads .env if present, then the environment. Missing keys fall back
// to defaults; a missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		LogLevel:           getEnv("LOG_LEVEL", "debug"),
		KafkaAuditTopic:    getEnv("KAFKA_AUDIT_TOPIC", "audit_logs"),
		AuditWorkers:       getEnvInt("AUDIT_WORKERS", 2),
		AuditBatchSize:     getEnvInt("AUDIT_BATCH_SIZE", 5),
		AuditFlushInterval: getEnvDuration("AUDIT_FLUSH_INTERVAL", 500*time.Millisecond),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
