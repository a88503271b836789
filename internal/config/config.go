package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is everything the process reads from the environment, loaded
// once at startup. JWTSecret and the admin credential pair are
// required: running without them would silently disable the admin
// gate, so their absence is fatal.
type Config struct {
	Port        string
	Environment string // "production" enables Secure cookies
	SiteBaseURL string

	JWTSecret     string
	AdminUser     string
	AdminPassword string

	DatabaseURL string // empty = in-memory storage
	RabbitMQURL string // empty = direct (in-process) report dispatch

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromEmail    string

	GoogleMapsAPIKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("APP_ENV", "development"),
		SiteBaseURL: envOr("SITE_BASE_URL", "https://www.sellmypostoffice.com"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUser:     os.Getenv("ADMIN_USER"),
		AdminPassword: os.Getenv("ADMIN_PASS"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		SMTPHost:     os.Getenv("MAIL_HOST"),
		SMTPUser:     os.Getenv("MAIL_USER"),
		SMTPPassword: os.Getenv("MAIL_PASS"),
		FromEmail:    envOr("FROM_EMAIL", "reports@sellmypostoffice.com"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
	}

	port, err := strconv.Atoi(envOr("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("MAIL_PORT must be a number: %w", err)
	}
	cfg.SMTPPort = port

	var missing []string
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.AdminUser == "" {
		missing = append(missing, "ADMIN_USER")
	}
	if cfg.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASS")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
