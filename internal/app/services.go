package app

import (
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/platform/names"
	"github.com/edushare/edushare-backend/internal/services"
)

type Services struct {
	ResourceDiscovery services.ResourceDiscoveryService
	ModuleDiscovery   services.ModuleDiscoveryService
	Resource          services.ResourceService
	LearningModule    services.LearningModuleService
	Vote              services.VoteService
	SavedList         services.SavedListService
	UserSettings      services.UserSettingsService
	FilterOptions     services.FilterOptionsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, resolver names.Resolver) Services {
	log.Info("Wiring services...")
	return Services{
		ResourceDiscovery: services.NewResourceDiscoveryService(db, log, r.Resource, r.UserResource, resolver, cfg.NameBatchMax),
		ModuleDiscovery:   services.NewModuleDiscoveryService(db, log, r.LearningModule, r.UserLearningModule, resolver, cfg.NameBatchMax),
		Resource:          services.NewResourceService(db, log, r.Resource, r.Tag, r.ResourceTag, r.ResourceVote, r.UserResource, r.ResourceModuleMapping),
		LearningModule:    services.NewLearningModuleService(db, log, r.LearningModule, r.Resource, r.Tag, r.LearningModuleTag, r.LearningModuleVote, r.UserLearningModule, r.ResourceModuleMapping),
		Vote:              services.NewVoteService(db, log, r.Resource, r.LearningModule, r.ResourceVote, r.LearningModuleVote),
		SavedList:         services.NewSavedListService(db, log, r.Resource, r.LearningModule, r.UserResource, r.UserLearningModule),
		UserSettings:      services.NewUserSettingsService(db, log, r.UserSettings),
		FilterOptions:     services.NewFilterOptionsService(db, log, r.Subject, r.Grade, r.Tag),
	}
}
