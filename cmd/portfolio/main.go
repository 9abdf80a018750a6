package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/auth"
	"github.com/portfolio-dev/portfolio/internal/config"
	"github.com/portfolio-dev/portfolio/internal/handlers"
	"github.com/portfolio-dev/portfolio/internal/mailer"
	"github.com/portfolio-dev/portfolio/internal/middleware"
	"github.com/portfolio-dev/portfolio/internal/router"
	"github.com/portfolio-dev/portfolio/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := auth.InitJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	auth.InitSessions(auth.GormSessionStore{}, cfg.SessionSecret, cfg.SessionTTL)
	auth.StartSessionSweeper(context.Background(), time.Hour)
	middleware.CookieDomain = cfg.Domain

	uploads, err := storage.NewFileStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	mail := mailer.New(mailer.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Secure:   cfg.Email.Secure,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	if mail.Configured() {
		log.Println("Email transporter configured")
	} else {
		log.Println("Email transporter not configured, mail features disabled")
	}

	handlers.Configure(cfg.Domain, uploads, mail, cfg.FrontendURL)

	if err := handlers.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	r := router.NewRouter(cfg)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
