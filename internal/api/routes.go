package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jroosing/gordap/internal/api/handlers"
	"github.com/jroosing/gordap/internal/api/middleware"
	"github.com/jroosing/gordap/internal/config"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)

	api.GET("/domain/:name", h.LookupDomain)
	api.GET("/tld/:name", h.LookupTLD)
	// Wildcard so CIDR queries like /ip/10.0.0.0/8 route here.
	api.GET("/ip/*addr", h.LookupIP)
	api.GET("/autnum/:number", h.LookupAutnum)
	api.GET("/entity/:handle", h.LookupEntity)
	api.GET("/nameserver/:name", h.LookupNameserver)

	api.GET("/history", h.History)
}
