package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type UserSettingsRepo interface {
	// Upsert writes the saved filter for (user, entity type), replacing any
	// previous row for that pair.
	Upsert(ctx context.Context, tx *gorm.DB, row *domain.UserSettings) error
	GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string) (*domain.UserSettings, error)
	DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type userSettingsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	return &userSettingsRepo{db: db, log: baseLog.With("repo", "UserSettingsRepo")}
}

func (r *userSettingsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *domain.UserSettings) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "entity_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_ids", "grade_ids", "tag_ids", "created_by_ids", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *userSettingsRepo) GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, entityType string) (*domain.UserSettings, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var result domain.UserSettings
	err := t.WithContext(ctx).
		Where("user_id = ? AND entity_type = ?", userID, entityType).
		First(&result).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *userSettingsRepo) DeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&domain.UserSettings{}).Error
}
