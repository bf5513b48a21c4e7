package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// UserSettingsService persists a user's default discovery filter per
// entity family so the client can restore it on next visit.
type UserSettingsService interface {
	Persist(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string, f discovery.FilterSpec) error
	// Fetch returns the stored default filter, or a zero FilterSpec when
	// the user has never saved one.
	Fetch(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string) (discovery.FilterSpec, error)
}

type userSettingsService struct {
	db           *gorm.DB
	log          *logger.Logger
	settingsRepo repos.UserSettingsRepo
}

func NewUserSettingsService(db *gorm.DB, baseLog *logger.Logger, settingsRepo repos.UserSettingsRepo) UserSettingsService {
	return &userSettingsService{
		db:           db,
		log:          baseLog.With("service", "UserSettingsService"),
		settingsRepo: settingsRepo,
	}
}

func validEntityType(entityType string) bool {
	return entityType == domain.EntityTypeResource || entityType == domain.EntityTypeLearningModule
}

func (s *userSettingsService) Persist(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string, f discovery.FilterSpec) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if !validEntityType(entityType) {
		return apierr.Validation("unknown_entity_type", fmt.Errorf("unknown entity type %q", entityType))
	}
	f = f.Normalized()
	row := &domain.UserSettings{
		UserID:       userID,
		EntityType:   entityType,
		SubjectIDs:   discovery.FormatIDList(f.SubjectIDs),
		GradeIDs:     discovery.FormatIDList(f.GradeIDs),
		TagIDs:       discovery.FormatIDList(f.TagIDs),
		CreatedByIDs: discovery.FormatIDList(f.CreatedByIDs),
	}
	if err := s.settingsRepo.Upsert(ctx, t, row); err != nil {
		return fmt.Errorf("persist user settings: %w", err)
	}
	return nil
}

func (s *userSettingsService) Fetch(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string) (discovery.FilterSpec, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	if !validEntityType(entityType) {
		return discovery.FilterSpec{}, apierr.Validation("unknown_entity_type", fmt.Errorf("unknown entity type %q", entityType))
	}
	row, err := s.settingsRepo.GetByUserAndType(ctx, t, userID, entityType)
	if err != nil {
		return discovery.FilterSpec{}, fmt.Errorf("fetch user settings: %w", err)
	}
	if row == nil {
		return discovery.FilterSpec{}, nil
	}
	return discovery.FilterSpec{
		SubjectIDs:   discovery.ParseIDList(row.SubjectIDs),
		GradeIDs:     discovery.ParseIDList(row.GradeIDs),
		TagIDs:       discovery.ParseIDList(row.TagIDs),
		CreatedByIDs: discovery.ParseIDList(row.CreatedByIDs),
	}, nil
}
