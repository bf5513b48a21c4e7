package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Subject) ([]*domain.Subject, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Subject, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Subject, error)
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Subject) ([]*domain.Subject, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Subject{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *subjectRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Subject, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Subject
	if err := t.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subjectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Subject, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Subject
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
