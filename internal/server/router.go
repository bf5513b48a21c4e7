package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/edushare/edushare-backend/internal/http/handlers"
	httpMW "github.com/edushare/edushare-backend/internal/http/middleware"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	ResourceHandler      *httpH.ResourceHandler
	ModuleHandler        *httpH.LearningModuleHandler
	UserContentHandler   *httpH.UserContentHandler
	UserSettingsHandler  *httpH.UserSettingsHandler
	FilterOptionsHandler *httpH.FilterOptionsHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Resources
		if cfg.ResourceHandler != nil {
			protected.POST("/resources/search", cfg.ResourceHandler.Search)
			protected.POST("/resources/validate-title", cfg.ResourceHandler.ValidateTitle)
			protected.GET("/resources/:id", cfg.ResourceHandler.Get)
			protected.POST("/resources", cfg.ResourceHandler.Create)
			protected.PATCH("/resources/:id", cfg.ResourceHandler.Update)
			protected.DELETE("/resources/:id", cfg.ResourceHandler.Delete)
			protected.POST("/resources/:id/upvote", cfg.ResourceHandler.Upvote)
			protected.POST("/resources/:id/downvote", cfg.ResourceHandler.Downvote)
			protected.POST("/resources/:id/save", cfg.ResourceHandler.Save)
			protected.DELETE("/resources/:id/save", cfg.ResourceHandler.Unsave)
		}

		// Learning modules
		if cfg.ModuleHandler != nil {
			protected.POST("/learningmodules/search", cfg.ModuleHandler.Search)
			protected.POST("/learningmodules/validate-title", cfg.ModuleHandler.ValidateTitle)
			protected.GET("/learningmodules/:id", cfg.ModuleHandler.Get)
			protected.POST("/learningmodules", cfg.ModuleHandler.Create)
			protected.PATCH("/learningmodules/:id", cfg.ModuleHandler.Update)
			protected.DELETE("/learningmodules/:id", cfg.ModuleHandler.Delete)
			protected.POST("/learningmodules/:id/upvote", cfg.ModuleHandler.Upvote)
			protected.POST("/learningmodules/:id/downvote", cfg.ModuleHandler.Downvote)
			protected.POST("/learningmodules/:id/save", cfg.ModuleHandler.Save)
			protected.DELETE("/learningmodules/:id/save", cfg.ModuleHandler.Unsave)
		}

		// User content ("my created" / "my saved" overlay)
		if cfg.UserContentHandler != nil {
			protected.POST("/me/content/search", cfg.UserContentHandler.Search)
		}

		// Persisted default filters
		if cfg.UserSettingsHandler != nil {
			protected.GET("/me/filters/:entityType", cfg.UserSettingsHandler.GetFilters)
			protected.PUT("/me/filters/:entityType", cfg.UserSettingsHandler.PutFilters)
		}

		// Facet dropdown options
		if cfg.FilterOptionsHandler != nil {
			protected.GET("/filters/options", cfg.FilterOptionsHandler.Options)
		}
	}

	return r
}
