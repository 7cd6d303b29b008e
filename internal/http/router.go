package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/andrewdionne/polishpages/internal/http/handlers"
	httpMW "github.com/andrewdionne/polishpages/internal/http/middleware"
	"github.com/andrewdionne/polishpages/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string

	SetHandler    *httpH.SetHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.SetHandler != nil {
			api.GET("/sets", cfg.SetHandler.List)
			api.POST("/sets", cfg.SetHandler.Create)
			api.POST("/sets/:slug/regenerate", cfg.SetHandler.Regenerate)
			api.DELETE("/sets/:slug", cfg.SetHandler.Delete)
			api.POST("/catalog/rebuild", cfg.SetHandler.RebuildCatalog)
		}
	}

	return r
}
