package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type ResourceModuleMappingRepo interface {
	// Add links resources into a module, ignoring pairs that already
	// exist. Returns how many new links were created.
	Add(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) (int, error)
	Remove(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error
	Replace(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*domain.ResourceModuleMapping, error)
	DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error
	DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
}

type resourceModuleMappingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceModuleMappingRepo(db *gorm.DB, baseLog *logger.Logger) ResourceModuleMappingRepo {
	return &resourceModuleMappingRepo{db: db, log: baseLog.With("repo", "ResourceModuleMappingRepo")}
}

func (r *resourceModuleMappingRepo) Add(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) (int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return 0, nil
	}
	rows := make([]*domain.ResourceModuleMapping, 0, len(resourceIDs))
	for _, resID := range resourceIDs {
		rows = append(rows, &domain.ResourceModuleMapping{ID: uuid.New(), LearningModuleID: moduleID, ResourceID: resID})
	}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learning_module_id"}, {Name: "resource_id"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *resourceModuleMappingRepo) Remove(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("learning_module_id = ? AND resource_id IN ?", moduleID, resourceIDs).
		Delete(&domain.ResourceModuleMapping{}).Error
}

func (r *resourceModuleMappingRepo) Replace(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("learning_module_id = ?", moduleID).
		Delete(&domain.ResourceModuleMapping{}).Error; err != nil {
		return err
	}
	_, err := r.Add(ctx, t, moduleID, resourceIDs)
	return err
}

func (r *resourceModuleMappingRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*domain.ResourceModuleMapping, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.ResourceModuleMapping
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

func (r *resourceModuleMappingRepo) DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("learning_module_id IN ?", moduleIDs).
		Delete(&domain.ResourceModuleMapping{}).Error
}

func (r *resourceModuleMappingRepo) DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&domain.ResourceModuleMapping{}).Error
}
