package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration. FromEnv keeps main lean;
// every knob has a development-friendly default.
type Server struct {
	Addr     string
	LogLevel string

	// KVBackend selects the persistence substrate: memory, redis, postgres.
	KVBackend   string
	RedisURL    string
	PostgresDSN string

	JWTSigningKey string

	// Deployer is the address credited as initializer; AdminOverride, when
	// set, becomes admin instead.
	Deployer      string
	AdminOverride string

	KafkaBrokers    []string
	KafkaAuditTopic string

	ShutdownTimeout time.Duration
}

// Redis connection tuning.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:            getenv("SKILLEXIFY_ADDR", ":8080"),
		LogLevel:        getenv("SKILLEXIFY_LOG_LEVEL", "info"),
		KVBackend:       getenv("SKILLEXIFY_KV_BACKEND", "memory"),
		RedisURL:        os.Getenv("SKILLEXIFY_REDIS_URL"),
		PostgresDSN:     os.Getenv("SKILLEXIFY_POSTGRES_DSN"),
		JWTSigningKey:   getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Deployer:        getenv("SKILLEXIFY_DEPLOYER", "deployer0"),
		AdminOverride:   os.Getenv("SKILLEXIFY_ADMIN"),
		KafkaAuditTopic: getenv("SKILLEXIFY_KAFKA_AUDIT_TOPIC", "skillexify.audit"),
		ShutdownTimeout: 10 * time.Second,
	}
	if brokers := os.Getenv("SKILLEXIFY_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

// RedisFromEnv builds the Redis tuning config around the configured URL.
func RedisFromEnv(url string) RedisConfig {
	return RedisConfig{
		URL:          url,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
