package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type ResourceTagRepo interface {
	Replace(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID, tagIDs []uuid.UUID) error
	GetByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) ([]*domain.ResourceTag, error)
	DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
}

type LearningModuleTagRepo interface {
	Replace(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, tagIDs []uuid.UUID) error
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*domain.LearningModuleTag, error)
	DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error
}

type resourceTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceTagRepo(db *gorm.DB, baseLog *logger.Logger) ResourceTagRepo {
	return &resourceTagRepo{db: db, log: baseLog.With("repo", "ResourceTagRepo")}
}

// Replace swaps the tag set of one resource: delete-then-insert inside the
// caller's transaction keeps the unique (resource, tag) pairs consistent.
func (r *resourceTagRepo) Replace(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID, tagIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Delete(&domain.ResourceTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*domain.ResourceTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &domain.ResourceTag{ID: uuid.New(), ResourceID: resourceID, TagID: tagID})
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *resourceTagRepo) GetByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) ([]*domain.ResourceTag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.ResourceTag
	if len(resourceIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *resourceTagRepo) DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&domain.ResourceTag{}).Error
}

type learningModuleTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleTagRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleTagRepo {
	return &learningModuleTagRepo{db: db, log: baseLog.With("repo", "LearningModuleTagRepo")}
}

func (r *learningModuleTagRepo) Replace(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, tagIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("learning_module_id = ?", moduleID).
		Delete(&domain.LearningModuleTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*domain.LearningModuleTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, &domain.LearningModuleTag{ID: uuid.New(), LearningModuleID: moduleID, TagID: tagID})
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learning_module_id"}, {Name: "tag_id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}

func (r *learningModuleTagRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*domain.LearningModuleTag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.LearningModuleTag
	if len(moduleIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("learning_module_id IN ?", moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningModuleTagRepo) DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("learning_module_id IN ?", moduleIDs).
		Delete(&domain.LearningModuleTag{}).Error
}
