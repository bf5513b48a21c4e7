package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type CreateResourceInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	SubjectID   uuid.UUID      `json:"subject_id"`
	GradeID     uuid.UUID      `json:"grade_id"`
	ImageURL    string         `json:"image_url"`
	LinkURL     string         `json:"link_url"`
	Attachments datatypes.JSON `json:"attachments"`
	TagNames    []string       `json:"tag_names"`
}

type UpdateResourceInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	SubjectID   *uuid.UUID      `json:"subject_id"`
	GradeID     *uuid.UUID      `json:"grade_id"`
	ImageURL    *string         `json:"image_url"`
	LinkURL     *string         `json:"link_url"`
	Attachments *datatypes.JSON `json:"attachments"`
	TagNames    *[]string       `json:"tag_names"`
}

type ResourceService interface {
	Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, in CreateResourceInput) (*domain.Resource, error)
	Update(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, in UpdateResourceInput) (*domain.Resource, error)
	// Delete soft-deletes the resource and hard-deletes its tag joins,
	// votes, saved rows, and module mappings in one transaction.
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type resourceService struct {
	db           *gorm.DB
	log          *logger.Logger
	resourceRepo repos.ResourceRepo
	tagRepo      repos.TagRepo
	entityTags   repos.ResourceTagRepo
	voteRepo     repos.ResourceVoteRepo
	savedRepo    repos.UserResourceRepo
	mappingRepo  repos.ResourceModuleMappingRepo
}

func NewResourceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	resourceRepo repos.ResourceRepo,
	tagRepo repos.TagRepo,
	entityTags repos.ResourceTagRepo,
	voteRepo repos.ResourceVoteRepo,
	savedRepo repos.UserResourceRepo,
	mappingRepo repos.ResourceModuleMappingRepo,
) ResourceService {
	return &resourceService{
		db:           db,
		log:          baseLog.With("service", "ResourceService"),
		resourceRepo: resourceRepo,
		tagRepo:      tagRepo,
		entityTags:   entityTags,
		voteRepo:     voteRepo,
		savedRepo:    savedRepo,
		mappingRepo:  mappingRepo,
	}
}

func (s *resourceService) inTx(tx *gorm.DB, fn func(t *gorm.DB) error) error {
	if tx != nil {
		return fn(tx)
	}
	return s.db.Transaction(fn)
}

func (s *resourceService) Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, in CreateResourceInput) (*domain.Resource, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
	}
	if in.SubjectID == uuid.Nil || in.GradeID == uuid.Nil {
		return nil, apierr.Validation("missing_reference", fmt.Errorf("subject and grade are required"))
	}

	var created *domain.Resource
	err := s.inTx(tx, func(t *gorm.DB) error {
		existing, err := s.resourceRepo.GetByExactTitle(ctx, t, title)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if len(existing) > 0 {
			return apierr.Conflict("duplicate_title", fmt.Errorf("resource titled %q already exists", title))
		}

		res := &domain.Resource{
			ID:          uuid.New(),
			Title:       title,
			Description: in.Description,
			SubjectID:   in.SubjectID,
			GradeID:     in.GradeID,
			ImageURL:    in.ImageURL,
			LinkURL:     in.LinkURL,
			Attachments: in.Attachments,
			CreatedByID: userID,
			CreatedAt:   time.Now().UTC(),
		}
		if _, err := s.resourceRepo.Create(ctx, t, []*domain.Resource{res}); err != nil {
			return fmt.Errorf("create resource: %w", err)
		}

		if len(in.TagNames) > 0 {
			tags, err := s.tagRepo.EnsureByNames(ctx, t, in.TagNames)
			if err != nil {
				return fmt.Errorf("ensure tags: %w", err)
			}
			tagIDs := make([]uuid.UUID, 0, len(tags))
			for _, tag := range tags {
				tagIDs = append(tagIDs, tag.ID)
			}
			if err := s.entityTags.Replace(ctx, t, res.ID, tagIDs); err != nil {
				return fmt.Errorf("attach tags: %w", err)
			}
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("resource created", "resource_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *resourceService) Update(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, in UpdateResourceInput) (*domain.Resource, error) {
	var updated *domain.Resource
	err := s.inTx(tx, func(t *gorm.DB) error {
		current, err := s.resourceRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("load resource: %w", err)
		}
		if current == nil {
			return apierr.NotFound("resource_not_found", fmt.Errorf("resource %s not found", id))
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
			}
			existing, err := s.resourceRepo.GetByExactTitle(ctx, t, title)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			for _, other := range existing {
				if other.ID != id {
					return apierr.Conflict("duplicate_title", fmt.Errorf("resource titled %q already exists", title))
				}
			}
			updates["title"] = title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.SubjectID != nil {
			if *in.SubjectID == uuid.Nil {
				return apierr.Validation("missing_reference", fmt.Errorf("subject is required"))
			}
			updates["subject_id"] = *in.SubjectID
		}
		if in.GradeID != nil {
			if *in.GradeID == uuid.Nil {
				return apierr.Validation("missing_reference", fmt.Errorf("grade is required"))
			}
			updates["grade_id"] = *in.GradeID
		}
		if in.ImageURL != nil {
			updates["image_url"] = *in.ImageURL
		}
		if in.LinkURL != nil {
			updates["link_url"] = *in.LinkURL
		}
		if in.Attachments != nil {
			updates["attachments"] = *in.Attachments
		}

		if len(updates) > 0 {
			updates["updated_by_id"] = userID
			updates["updated_at"] = time.Now().UTC()
			if err := s.resourceRepo.UpdateFields(ctx, t, id, updates); err != nil {
				return fmt.Errorf("update resource: %w", err)
			}
		}

		if in.TagNames != nil {
			tags, err := s.tagRepo.EnsureByNames(ctx, t, *in.TagNames)
			if err != nil {
				return fmt.Errorf("ensure tags: %w", err)
			}
			tagIDs := make([]uuid.UUID, 0, len(tags))
			for _, tag := range tags {
				tagIDs = append(tagIDs, tag.ID)
			}
			if err := s.entityTags.Replace(ctx, t, id, tagIDs); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
		}

		updated, err = s.resourceRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("reload resource: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *resourceService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	err := s.inTx(tx, func(t *gorm.DB) error {
		current, err := s.resourceRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("load resource: %w", err)
		}
		if current == nil {
			return apierr.NotFound("resource_not_found", fmt.Errorf("resource %s not found", id))
		}

		ids := []uuid.UUID{id}
		if err := s.entityTags.DeleteByResourceIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete tag joins: %w", err)
		}
		if err := s.voteRepo.DeleteByResourceIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if err := s.savedRepo.DeleteByResourceIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete saved rows: %w", err)
		}
		if err := s.mappingRepo.DeleteByResourceIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete module mappings: %w", err)
		}
		if err := s.resourceRepo.SoftDeleteByIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete resource: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("resource deleted", "resource_id", id)
	return nil
}
