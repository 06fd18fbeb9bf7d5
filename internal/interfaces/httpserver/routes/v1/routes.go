package v1

import (
	"github.com/gin-gonic/gin"

	"minecrox-server/services/pack-api/internal/config"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/handlers"
	"minecrox-server/services/pack-api/internal/interfaces/httpserver/middlewares"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
	cfg      *config.Config
}

func NewRoutes(provider *handlers.Provider, cfg *config.Config) *Routes {
	return &Routes{handlers: provider, cfg: cfg}
}

// Register attaches all v1 routes under the /v1 prefix. Upload and download
// routes carry per-client rate limits.
func (r *Routes) Register(router gin.IRouter) {
	group := router.Group("/v1")

	group.POST("/uploads",
		middlewares.RateLimit(r.cfg.UploadRateEvery, r.cfg.UploadBurst),
		r.handlers.Files.Upload)

	group.GET("/files/:slug", r.handlers.Files.Get)
	group.DELETE("/files/:slug", r.handlers.Files.Delete)

	group.GET("/download/:slug",
		middlewares.RateLimit(r.cfg.DownloadRateEvery, r.cfg.DownloadBurst),
		r.handlers.Files.Download)

	group.GET("/analytics/files/:slug", r.handlers.Files.Analytics)

	group.POST("/reports", r.handlers.Reports.Create)
}
