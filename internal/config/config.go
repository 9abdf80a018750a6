package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, parsed from environment variables.
type Config struct {
	Port          string        `env:"PORT" envDefault:"5000"`
	DatabaseURL   string        `env:"DATABASE_URL,notEmpty"`
	JWTSecret     string        `env:"JWT_SECRET,notEmpty"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	UploadsDir    string        `env:"UPLOADS_DIR" envDefault:"uploads"`
	FrontendURL   string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// AllowedOrigins entries may be exact origins or wildcard subdomain
	// patterns like https://*.onrender.com.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Domain is the cookie domain; empty means host-only cookies.
	Domain string `env:"DOMAIN"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`

	Email EmailConfig `envPrefix:"EMAIL_"`
}

// EmailConfig carries SMTP settings. Host and From left empty leave the
// mailer unconfigured; mail-dependent features degrade instead of failing.
type EmailConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Secure   bool   `env:"SECURE"`
	User     string `env:"USER"`
	Password string `env:"PASS"`
	From     string `env:"FROM"`
}

func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
