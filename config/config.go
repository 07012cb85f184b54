package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseDriver      string
	DatabaseURI         string
	RedisURI            string
	JWTSecret           string
	TokenTTL            time.Duration
	SLAThresholdMinutes int
	SLASweepSchedule    string
	CORSOrigins         []string
	Location            *time.Location

	AdminUsername string
	AdminPassword string
	AdminRole     string
}

var AppConfig *Config

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warn loading .env file")
	}

	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		Port:                getEnv("PORT", "4000"),
		DatabaseDriver:      getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURI:         getEnv("DATABASE_URI", "postgres://localhost:5432/atm?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		TokenTTL:            time.Duration(getEnvInt("TOKEN_TTL_HOURS", 12)) * time.Hour,
		SLAThresholdMinutes: getEnvInt("SLA_THRESHOLD_MINUTES", 30),
		SLASweepSchedule:    getEnv("SLA_SWEEP_SCHEDULE", "@every 1m"),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "*")),
		Location:            getEnvLocation("APP_TIMEZONE", time.Local),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminRole:     getEnv("ADMIN_ROLE", "ADMIN"),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI cannot be empty")
	}
	if c.SLAThresholdMinutes <= 0 {
		return fmt.Errorf("SLA_THRESHOLD_MINUTES must be positive")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
