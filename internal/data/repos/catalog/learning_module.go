package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type LearningModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.LearningModule) ([]*domain.LearningModule, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.LearningModule, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LearningModule, error)
	GetByExactTitle(ctx context.Context, tx *gorm.DB, title string) ([]*domain.LearningModule, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error

	PageIDs(ctx context.Context, tx *gorm.DB, skip, count int) ([]uuid.UUID, error)
	JoinedRowsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]discovery.ModuleRow, error)
	JoinedRowsFiltered(ctx context.Context, tx *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) ([]discovery.ModuleRow, error)
}

type learningModuleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleRepo {
	return &learningModuleRepo{db: db, log: baseLog.With("repo", "LearningModuleRepo")}
}

const moduleRowSelect = `
lm.id, lm.title, lm.description,
lm.subject_id, s.name AS subject_name,
lm.grade_id, g.name AS grade_name,
lm.image_url,
lm.created_by_id, lm.created_at, lm.updated_at,
lmt.tag_id AS tag_id, tg.name AS tag_name,
v.id AS vote_id, v.user_id AS vote_user_id,
m.id AS mapping_id, m.resource_id AS mapped_resource_id`

func (r *learningModuleRepo) joined(ctx context.Context, t *gorm.DB) *gorm.DB {
	return t.WithContext(ctx).
		Table("learning_module AS lm").
		Select(moduleRowSelect).
		Joins("LEFT JOIN subject s ON s.id = lm.subject_id").
		Joins("LEFT JOIN grade g ON g.id = lm.grade_id").
		Joins("LEFT JOIN learning_module_tag lmt ON lmt.learning_module_id = lm.id").
		Joins("LEFT JOIN tag tg ON tg.id = lmt.tag_id").
		Joins("LEFT JOIN learning_module_vote v ON v.learning_module_id = lm.id").
		Joins("LEFT JOIN resource_module_mapping m ON m.learning_module_id = lm.id").
		Where("lm.deleted_at IS NULL")
}

func (r *learningModuleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.LearningModule) ([]*domain.LearningModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.LearningModule{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningModuleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.LearningModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.LearningModule
	if len(ids) == 0 {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningModuleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.LearningModule, error) {
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *learningModuleRepo) GetByExactTitle(ctx context.Context, tx *gorm.DB, title string) ([]*domain.LearningModule, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.LearningModule
	if title == "" {
		return results, nil
	}
	if err := t.WithContext(ctx).
		Where("LOWER(title) = LOWER(?)", title).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *learningModuleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&domain.LearningModule{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *learningModuleRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.LearningModule{}).Error
}

func (r *learningModuleRepo) PageIDs(ctx context.Context, tx *gorm.DB, skip, count int) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if count <= 0 {
		return ids, nil
	}
	if skip < 0 {
		skip = 0
	}
	if err := t.WithContext(ctx).
		Model(&domain.LearningModule{}).
		Order("created_at DESC, id ASC").
		Offset(skip).
		Limit(count).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *learningModuleRepo) JoinedRowsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]discovery.ModuleRow, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []discovery.ModuleRow
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.joined(ctx, t).
		Where("lm.id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *learningModuleRepo) JoinedRowsFiltered(ctx context.Context, tx *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) ([]discovery.ModuleRow, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []discovery.ModuleRow
	if err := applyModuleFilter(r.joined(ctx, t), f, restrictIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
