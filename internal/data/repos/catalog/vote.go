package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// The vote ledger. Upvote/Downvote are idempotent: the unique
// (entity, user) index plus ON CONFLICT DO NOTHING makes concurrent
// duplicate upvotes collapse into one row without erroring.
type ResourceVoteRepo interface {
	Upvote(ctx context.Context, tx *gorm.DB, resourceID, userID uuid.UUID) (bool, error)
	Downvote(ctx context.Context, tx *gorm.DB, resourceID, userID uuid.UUID) (bool, error)
	CountByResourceID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (int64, error)
	DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error
}

type LearningModuleVoteRepo interface {
	Upvote(ctx context.Context, tx *gorm.DB, moduleID, userID uuid.UUID) (bool, error)
	Downvote(ctx context.Context, tx *gorm.DB, moduleID, userID uuid.UUID) (bool, error)
	CountByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int64, error)
	DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error
}

type resourceVoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResourceVoteRepo(db *gorm.DB, baseLog *logger.Logger) ResourceVoteRepo {
	return &resourceVoteRepo{db: db, log: baseLog.With("repo", "ResourceVoteRepo")}
}

func (r *resourceVoteRepo) Upvote(ctx context.Context, tx *gorm.DB, resourceID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.ResourceVote{ID: uuid.New(), ResourceID: resourceID, UserID: userID}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *resourceVoteRepo) Downvote(ctx context.Context, tx *gorm.DB, resourceID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("resource_id = ? AND user_id = ?", resourceID, userID).
		Delete(&domain.ResourceVote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *resourceVoteRepo) CountByResourceID(ctx context.Context, tx *gorm.DB, resourceID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&domain.ResourceVote{}).
		Where("resource_id = ?", resourceID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *resourceVoteRepo) DeleteByResourceIDs(ctx context.Context, tx *gorm.DB, resourceIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(resourceIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Delete(&domain.ResourceVote{}).Error
}

type learningModuleVoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningModuleVoteRepo(db *gorm.DB, baseLog *logger.Logger) LearningModuleVoteRepo {
	return &learningModuleVoteRepo{db: db, log: baseLog.With("repo", "LearningModuleVoteRepo")}
}

func (r *learningModuleVoteRepo) Upvote(ctx context.Context, tx *gorm.DB, moduleID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	row := &domain.LearningModuleVote{ID: uuid.New(), LearningModuleID: moduleID, UserID: userID}
	res := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "learning_module_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *learningModuleVoteRepo) Downvote(ctx context.Context, tx *gorm.DB, moduleID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(ctx).
		Where("learning_module_id = ? AND user_id = ?", moduleID, userID).
		Delete(&domain.LearningModuleVote{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *learningModuleVoteRepo) CountByModuleID(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&domain.LearningModuleVote{}).
		Where("learning_module_id = ?", moduleID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *learningModuleVoteRepo) DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("learning_module_id IN ?", moduleIDs).
		Delete(&domain.LearningModuleVote{}).Error
}
