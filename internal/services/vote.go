package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// VoteService is the write side of the vote ledger. Both directions are
// idempotent: repeating an upvote or downvote never errors and never
// changes the count a second time.
type VoteService interface {
	UpvoteResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error
	DownvoteResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error
	UpvoteModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error
	DownvoteModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error
}

type voteService struct {
	db             *gorm.DB
	log            *logger.Logger
	resourceRepo   repos.ResourceRepo
	moduleRepo     repos.LearningModuleRepo
	resourceVotes  repos.ResourceVoteRepo
	moduleVoteRepo repos.LearningModuleVoteRepo
}

func NewVoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	resourceRepo repos.ResourceRepo,
	moduleRepo repos.LearningModuleRepo,
	resourceVotes repos.ResourceVoteRepo,
	moduleVoteRepo repos.LearningModuleVoteRepo,
) VoteService {
	return &voteService{
		db:             db,
		log:            baseLog.With("service", "VoteService"),
		resourceRepo:   resourceRepo,
		moduleRepo:     moduleRepo,
		resourceVotes:  resourceVotes,
		moduleVoteRepo: moduleVoteRepo,
	}
}

func (s *voteService) checkResource(ctx context.Context, t *gorm.DB, id uuid.UUID) error {
	res, err := s.resourceRepo.GetByID(ctx, t, id)
	if err != nil {
		return fmt.Errorf("load resource: %w", err)
	}
	if res == nil {
		return apierr.NotFound("resource_not_found", fmt.Errorf("resource %s not found", id))
	}
	return nil
}

func (s *voteService) checkModule(ctx context.Context, t *gorm.DB, id uuid.UUID) error {
	mod, err := s.moduleRepo.GetByID(ctx, t, id)
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}
	if mod == nil {
		return apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", id))
	}
	return nil
}

func (s *voteService) UpvoteResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if err := s.checkResource(ctx, t, resourceID); err != nil {
		return err
	}
	inserted, err := s.resourceVotes.Upvote(ctx, t, resourceID, userID)
	if err != nil {
		return fmt.Errorf("upvote resource: %w", err)
	}
	if !inserted {
		s.log.Debug("duplicate resource upvote absorbed", "resource_id", resourceID, "user_id", userID)
	}
	return nil
}

func (s *voteService) DownvoteResource(ctx context.Context, tx *gorm.DB, userID, resourceID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if err := s.checkResource(ctx, t, resourceID); err != nil {
		return err
	}
	if _, err := s.resourceVotes.Downvote(ctx, t, resourceID, userID); err != nil {
		return fmt.Errorf("downvote resource: %w", err)
	}
	return nil
}

func (s *voteService) UpvoteModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if err := s.checkModule(ctx, t, moduleID); err != nil {
		return err
	}
	inserted, err := s.moduleVoteRepo.Upvote(ctx, t, moduleID, userID)
	if err != nil {
		return fmt.Errorf("upvote module: %w", err)
	}
	if !inserted {
		s.log.Debug("duplicate module upvote absorbed", "learning_module_id", moduleID, "user_id", userID)
	}
	return nil
}

func (s *voteService) DownvoteModule(ctx context.Context, tx *gorm.DB, userID, moduleID uuid.UUID) error {
	t := tx
	if t == nil {
		t = s.db
	}
	if err := s.checkModule(ctx, t, moduleID); err != nil {
		return err
	}
	if _, err := s.moduleVoteRepo.Downvote(ctx, t, moduleID, userID); err != nil {
		return fmt.Errorf("downvote module: %w", err)
	}
	return nil
}
