package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/internal/config"
	"github.com/portfolio-dev/portfolio/internal/handlers"
	"github.com/portfolio-dev/portfolio/internal/middleware"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	allowed := allowedOrigins(cfg)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return originAllowed(origin, allowed)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadsDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/check", handlers.AuthCheck)
			auth.GET("/me", middleware.RequireAuth(), handlers.Me)
		}

		content := api.Group("/content")
		{
			content.GET("", handlers.GetContent)
			content.PUT("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateContent)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", handlers.ListProjects)
			projects.GET("/featured", handlers.ListFeaturedProjects)
			projects.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.CreateProject)
			projects.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateProject)
			projects.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteProject)
		}

		skills := api.Group("/skills")
		{
			skills.GET("", handlers.ListSkills)
			skills.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.CreateSkill)
			skills.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateSkill)
			skills.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteSkill)
		}

		experience := api.Group("/experience")
		{
			experience.GET("", handlers.ListExperience)
			experience.GET("/latest", handlers.LatestExperience)
			experience.GET("/latest/:limit", handlers.LatestExperience)
			experience.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.CreateExperience)
			experience.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateExperience)
			experience.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteExperience)
		}

		contact := api.Group("/contact")
		{
			contact.POST("", handlers.SubmitContact)
			contact.GET("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.ListContacts)
			contact.GET("/unread-count", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UnreadContactCount)
			contact.PATCH("/:id/read", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.MarkContactRead)
			contact.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteContact)
		}

		socialLinks := api.Group("/social-links")
		{
			socialLinks.GET("", handlers.ListSocialLinks)
			socialLinks.GET("/admin", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.ListAllSocialLinks)
			socialLinks.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.CreateSocialLink)
			socialLinks.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateSocialLink)
			socialLinks.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteSocialLink)
		}

		resume := api.Group("/resume")
		{
			resume.GET("", middleware.RequireAuth(), handlers.GetResume)
			resume.GET("/view", middleware.RequireAuth(), handlers.ViewResume)
			resume.GET("/download", middleware.RequireAuth(), handlers.GetResume)
			resume.GET("/check", handlers.CheckResume)
			resume.GET("/admin", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.GetResumeAdmin)
			resume.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UploadResume)
			resume.PUT("/url", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.UpdateResumeURL)
			resume.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteResume)
		}

		newsletter := api.Group("/newsletter")
		{
			newsletter.POST("/subscribe", handlers.Subscribe)
			newsletter.POST("/unsubscribe", handlers.UnsubscribeByEmail)
			newsletter.GET("/unsubscribe/:token", handlers.UnsubscribeByToken)
			newsletter.GET("/subscribers", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.ListSubscribers)
			newsletter.GET("/count", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.SubscriberCount)
			newsletter.DELETE("/subscribers/:id", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.DeleteSubscriber)
			newsletter.POST("/send", middleware.RequireAuth(), middleware.RequireAdmin(), handlers.SendNewsletter)
		}
	}

	return r
}

// allowedOrigins merges dev defaults, the configured frontend, and any
// extra configured origins or wildcard patterns.
func allowedOrigins(cfg *config.Config) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}

	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

// originAllowed matches an origin against exact entries and wildcard
// subdomain patterns like https://*.onrender.com. A wildcard never
// matches the bare apex domain.
func originAllowed(origin string, allowed []string) bool {
	for _, entry := range allowed {
		if entry == origin {
			return true
		}

		star := strings.Index(entry, "*.")
		if star == -1 {
			continue
		}

		prefix := entry[:star]
		suffix := entry[star+1:] // keeps the leading dot
		if strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) &&
			len(origin) > len(prefix)+len(suffix) {
			return true
		}
	}
	return false
}
