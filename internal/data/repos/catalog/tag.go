package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type TagRepo interface {
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Tag, error)
	// EnsureByNames creates any missing tags and returns the full row set
	// for the requested names, existing or new.
	EnsureByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Tag
	if err := t.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var results []*domain.Tag
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

func (r *tagRepo) EnsureByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*domain.Tag, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	cleaned := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, n)
	}
	if len(cleaned) == 0 {
		return []*domain.Tag{}, nil
	}

	rows := make([]*domain.Tag, 0, len(cleaned))
	for _, n := range cleaned {
		rows = append(rows, &domain.Tag{ID: uuid.New(), Name: n})
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&rows).Error; err != nil {
		return nil, err
	}

	// Re-fetch to pick up pre-existing rows the conflict clause skipped.
	var results []*domain.Tag
	if err := t.WithContext(ctx).
		Where("name IN ?", cleaned).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
