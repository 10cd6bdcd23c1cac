package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures all process configuration, built once at startup and passed
// into the components that need it. Nothing outside this package reads the
// environment directly.
type Config struct {
	Addr string
	Env  string

	// AdminPasswordHash is the bcrypt hash of the single admin password.
	// Its absence is a configuration error surfaced at login time, never a
	// silent bypass.
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration

	AuditLogPath string

	// DatabaseURL selects the postgres contact store; empty falls back to the
	// in-memory store (development only).
	DatabaseURL string

	// RedisURL selects the redis-backed login limiter store; empty falls back
	// to the in-memory store.
	RedisURL string

	// KafkaBrokers enables the optional audit fan-out to a SIEM topic.
	KafkaBrokers    []string
	KafkaAuditTopic string

	LoginLimit  int
	LoginWindow time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":5001"
	}

	auditPath := os.Getenv("AUDIT_LOG_PATH")
	if auditPath == "" {
		auditPath = "logs/admin-audit.log"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "breakpoint.audit"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Config{
		Addr:              addr,
		Env:               os.Getenv("ENV"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          2 * time.Hour,
		AuditLogPath:      auditPath,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		KafkaBrokers:      brokers,
		KafkaAuditTopic:   topic,
		LoginLimit:        5,
		LoginWindow:       15 * time.Minute,
	}
}

// Production reports whether the process runs with production logging rules.
func (c Config) Production() bool {
	return c.Env == "production"
}
