package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type GradeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Grade) ([]*domain.Grade, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Grade, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Grade, error)
}

type gradeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGradeRepo(db *gorm.DB, baseLog *logger.Logger) GradeRepo {
	return &gradeRepo{db: db, log: baseLog.With("repo", "GradeRepo")}
}

func (r *gradeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Grade) ([]*domain.Grade, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Grade{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gradeRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Grade, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Grade
	if err := t.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *gradeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Grade, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Grade
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
