package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "dev_fallback_secret"

type Config struct {
	ServiceName string
	ServerPort  int

	DatabaseURL string
	UploadDir   string

	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool

	LogLevel     string
	KafkaBrokers []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() *Config {
	cfg := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "gallery"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: EnvDefault("DATABASE_URL", "database.db"),
		UploadDir:   EnvDefault("UPLOAD_DIR", "static/uploads"),

		SessionSecret: []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:    EnvDurationDefault("SESSION_TTL", 12*time.Hour),
		SecureCookies: EnvDefault("COOKIE_SECURE", "false") == "true",

		LogLevel:     os.Getenv("LOG_LEVEL"),
		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}

	if len(cfg.SessionSecret) == 0 {
		log.Printf("WARN: SESSION_SECRET is empty, using development fallback")
		cfg.SessionSecret = []byte(devSessionSecret)
	}
	return cfg
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
