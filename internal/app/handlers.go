package app

import (
	httpH "github.com/edushare/edushare-backend/internal/http/handlers"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type Handlers struct {
	Health        *httpH.HealthHandler
	Resource      *httpH.ResourceHandler
	Module        *httpH.LearningModuleHandler
	UserContent   *httpH.UserContentHandler
	UserSettings  *httpH.UserSettingsHandler
	FilterOptions *httpH.FilterOptionsHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:        httpH.NewHealthHandler(),
		Resource:      httpH.NewResourceHandler(log, services.ResourceDiscovery, services.Resource, services.Vote, services.SavedList),
		Module:        httpH.NewLearningModuleHandler(log, services.ModuleDiscovery, services.LearningModule, services.Vote, services.SavedList),
		UserContent:   httpH.NewUserContentHandler(log, services.ResourceDiscovery, services.ModuleDiscovery),
		UserSettings:  httpH.NewUserSettingsHandler(log, services.UserSettings),
		FilterOptions: httpH.NewFilterOptionsHandler(log, services.FilterOptions),
	}
}
