package router

import (
	"testing"

	"github.com/portfolio-dev/portfolio/internal/config"
	"github.com/stretchr/testify/require"
)

func TestOriginAllowed_Exact(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://portfolio.example.com"}

	require.True(t, originAllowed("http://localhost:3000", allowed))
	require.True(t, originAllowed("https://portfolio.example.com", allowed))
	require.False(t, originAllowed("https://evil.example.com", allowed))
	require.False(t, originAllowed("http://localhost:3001", allowed))
}

func TestOriginAllowed_WildcardSubdomain(t *testing.T) {
	allowed := []string{"https://*.onrender.com"}

	require.True(t, originAllowed("https://myapp.onrender.com", allowed))
	require.True(t, originAllowed("https://deep.nested.onrender.com", allowed))
	require.False(t, originAllowed("http://myapp.onrender.com", allowed))
	require.False(t, originAllowed("https://onrender.com", allowed))
	require.False(t, originAllowed("https://evilonrender.com", allowed))
	require.False(t, originAllowed("https://onrender.com.evil.com", allowed))
}

func TestAllowedOrigins_MergesConfig(t *testing.T) {
	cfg := &config.Config{
		FrontendURL:    "https://portfolio.example.com",
		AllowedOrigins: []string{" https://*.onrender.com ", "", "https://admin.example.com"},
	}

	origins := allowedOrigins(cfg)

	require.Contains(t, origins, "http://localhost:3000")
	require.Contains(t, origins, "https://portfolio.example.com")
	require.Contains(t, origins, "https://*.onrender.com")
	require.Contains(t, origins, "https://admin.example.com")
	require.NotContains(t, origins, "")
}
