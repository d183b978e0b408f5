package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"siteaudit-backend/internal/audits"
	"siteaudit-backend/internal/shared/config"
	"siteaudit-backend/internal/shared/metrics"
	"siteaudit-backend/internal/shared/server/middleware"
	"siteaudit-backend/internal/shared/server/respond"
)

// RouterDeps holds the handlers the router needs.
type RouterDeps struct {
	Config        config.Config
	AuditsHandler *audits.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.AuditsHandler != nil {
		deps.AuditsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
