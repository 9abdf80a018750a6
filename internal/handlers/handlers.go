package handlers

import (
	"github.com/portfolio-dev/portfolio/internal/mailer"
	"github.com/portfolio-dev/portfolio/internal/storage"
)

// Process-wide handler dependencies, set once at startup.
var (
	Domain      string
	Uploads     *storage.FileStore
	Mail        *mailer.Mailer
	FrontendURL string
)

func Configure(domain string, uploads *storage.FileStore, mail *mailer.Mailer, frontendURL string) {
	Domain = domain
	Uploads = uploads
	Mail = mail
	FrontendURL = frontendURL
}
