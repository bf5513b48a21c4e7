package app

import (
	"github.com/gin-gonic/gin"

	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:         log,
		ServiceName: cfg.ServiceName,
		CORSOrigins: cfg.CORSOrigins,

		AuthMiddleware: middleware.Auth,

		ResourceHandler:      handlers.Resource,
		ModuleHandler:        handlers.Module,
		UserContentHandler:   handlers.UserContent,
		UserSettingsHandler:  handlers.UserSettings,
		FilterOptionsHandler: handlers.FilterOptions,

		HealthHandler: handlers.Health,
	})
}
