package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type ResourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Resource) ([]*domain.Resource, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Resource, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Resource, error)
	GetByExactTitle(ctx context.Context, tx *gorm.DB, title string) ([]*domain.Resource, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error

	// PageIDs is the unfiltered fast path: one windowed id fetch ordered
	// by (created_at DESC, id ASC).
	PageIDs(ctx context.Context, tx *gorm.DB, skip, count int) ([]uuid.UUID, error)
	// JoinedRowsByIDs batch-fetches the joined entity graph for the given
	// ids; combined with PageIDs it serves a page in two round trips
	// regardless of page size.
	JoinedRowsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]discovery.ResourceRow, error)
	// JoinedRowsFiltered materializes the full filtered set in one joined
	// fetch; grouping and pagination happen client-side afterwards.
	JoinedRowsFiltered(ctx context.Context, tx *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) ([]discovery.ResourceRow, error)
}

type resourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
	return &resourceRepo{db: db, log: baseLog.With("repo", "ResourceRepo")}
}

const resourceRowSelect = `
r.id, r.title, r.description,
r.subject_id, s.name AS subject_name,
r.grade_id, g.name AS grade_name,
r.image_url, r.link_url,
r.created_by_id, r.created_at, r.updated_at,
rt.tag_id AS tag_id, tg.name AS tag_name,
v.id AS vote_id, v.user_id AS vote_user_id`

func (r *resourceRepo) joined(ctx context.Context, t *gorm.DB) *gorm.DB {
	return t.WithContext(ctx).
		Table("resource AS r").
		Select(resourceRowSelect).
		Joins("LEFT JOIN subject s ON s.id = r.subject_id").
		Joins("LEFT JOIN grade g ON g.id = r.grade_id").
		Joins("LEFT JOIN resource_tag rt ON rt.resource_id = r.id").
		Joins("LEFT JOIN tag tg ON tg.id = rt.tag_id").
		Joins("LEFT JOIN resource_vote v ON v.resource_id = r.id").
		Where("r.deleted_at IS NULL")
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Resource) ([]*domain.Resource, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Resource{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *resourceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Resource, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Resource
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

func (r *resourceRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Resource, error) {
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *resourceRepo) GetByExactTitle(ctx context.Context, tx *gorm.DB, title string) ([]*domain.Resource, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Resource
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

func (r *resourceRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(updates) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Model(&domain.Resource{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *resourceRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Resource{}).Error
}

func (r *resourceRepo) PageIDs(ctx context.Context, tx *gorm.DB, skip, count int) ([]uuid.UUID, error) {
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
		Model(&domain.Resource{}).
		Order("created_at DESC, id ASC").
		Offset(skip).
		Limit(count).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *resourceRepo) JoinedRowsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]discovery.ResourceRow, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []discovery.ResourceRow
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.joined(ctx, t).
		Where("r.id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *resourceRepo) JoinedRowsFiltered(ctx context.Context, tx *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) ([]discovery.ResourceRow, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var rows []discovery.ResourceRow
	if err := applyResourceFilter(r.joined(ctx, t), f, restrictIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
