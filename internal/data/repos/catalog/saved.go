package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// Saved-list rows. Save reports whether a row was inserted: false means
// the pair already existed, which the service surfaces as a conflict
// (unlike votes, duplicate saves are not silently absorbed).
type UserResourceRepo interface {
	Save(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error)
	Unsave(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error)
	ResourceIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
}

type UserLearningModuleRepo interface {
	Save(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error)
	Unsave(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error)
	ModuleIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error
}

type userResourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserResourceRepo(db *gorm.DB, baseLog *logger.Logger) UserResourceRepo {
	return &userResourceRepo{db: db, log: baseLog.With("repo", "UserResourceRepo")}
}

func (r *userResourceRepo) Save(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.UserResource{ID: uuid.New(), UserID: userID, ResourceID: resourceID}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "resource_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userResourceRepo) Unsave(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		Delete(&domain.UserResource{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userResourceRepo) ResourceIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if err := t.WithContext(ctx).
		Model(&domain.UserResource{}).
		Where("user_id = ?", userID).
		Pluck("resource_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userResourceRepo) DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&domain.UserResource{}).Error
}

type userLearningModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) UserLearningModuleRepo {
	return &userLearningModuleRepo{db: db, log: baseLog.With("repo", "UserLearningModuleRepo")}
}

func (r *userLearningModuleRepo) Save(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.UserLearningModule{ID: uuid.New(), UserID: userID, LearningModuleID: moduleID}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "learning_module_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userLearningModuleRepo) Unsave(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("user_id = ? AND learning_module_id = ?", userID, moduleID).
		Delete(&domain.UserLearningModule{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userLearningModuleRepo) ModuleIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if err := t.WithContext(ctx).
		Model(&domain.UserLearningModule{}).
		Where("user_id = ?", userID).
		Pluck("learning_module_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userLearningModuleRepo) DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("learning_module_id IN ?", moduleIDs).
		Delete(&domain.UserLearningModule{}).Error
}
