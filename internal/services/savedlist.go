package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// SavedListService manages per-user saved entities. Saving something
// already on the list is a Conflict; removing something absent is a no-op.
type SavedListService interface {
	SaveResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error
	UnsaveResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error
	SaveModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error
	UnsaveModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error
}

type savedListService struct {
	db            *gorm.DB
	log           *logger.Logger
	resourceRepo  repos.ResourceRepo
	moduleRepo    repos.LearningModuleRepo
	userResources repos.UserResourceRepo
	userModules   repos.UserLearningModuleRepo
}

func NewSavedListService(
	db *gorm.DB,
	baseLog *logger.Logger,
	resourceRepo repos.ResourceRepo,
	moduleRepo repos.LearningModuleRepo,
	userResources repos.UserResourceRepo,
	userModules repos.UserLearningModuleRepo,
) SavedListService {
	return &savedListService{
		db:            db,
		log:           baseLog.With("service", "SavedListService"),
		resourceRepo:  resourceRepo,
		moduleRepo:    moduleRepo,
		userResources: userResources,
		userModules:   userModules,
	}
}

func (s *savedListService) SaveResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	res, err := s.resourceRepo.GetByID(ctx, t, resourceID)
	if err != nil {
		return fmt.Errorf("load resource: %w", err)
	}
	if res == nil {
		return apierr.NotFound("resource_not_found", fmt.Errorf("resource %s not found", resourceID))
	}
	inserted, err := s.userResources.Save(ctx, t, userID, resourceID)
	if err != nil {
		return fmt.Errorf("save resource: %w", err)
	}
	if !inserted {
		return apierr.Conflict("already_saved", fmt.Errorf("resource %s already saved", resourceID))
	}
	return nil
}

func (s *savedListService) UnsaveResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if _, err := s.userResources.Unsave(ctx, t, userID, resourceID); err != nil {
		return fmt.Errorf("unsave resource: %w", err)
	}
	return nil
}

func (s *savedListService) SaveModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	mod, err := s.moduleRepo.GetByID(ctx, t, moduleID)
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}
	if mod == nil {
		return apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", moduleID))
	}
	inserted, err := s.userModules.Save(ctx, t, userID, moduleID)
	if err != nil {
		return fmt.Errorf("save module: %w", err)
	}
	if !inserted {
		return apierr.Conflict("already_saved", fmt.Errorf("learning module %s already saved", moduleID))
	}
	return nil
}

func (s *savedListService) UnsaveModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if _, err := s.userModules.Unsave(ctx, t, userID, moduleID); err != nil {
		return fmt.Errorf("unsave module: %w", err)
	}
	return nil
}
