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

type CreateModuleInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	SubjectID   uuid.UUID      `json:"subject_id"`
	GradeID     uuid.UUID      `json:"grade_id"`
	ImageURL    string         `json:"image_url"`
	Attachments datatypes.JSON `json:"attachments"`
	TagNames    []string       `json:"tag_names"`
	ResourceIDs []uuid.UUID    `json:"resource_ids"`
}

type UpdateModuleInput struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	SubjectID   *uuid.UUID      `json:"subject_id"`
	GradeID     *uuid.UUID      `json:"grade_id"`
	ImageURL    *string         `json:"image_url"`
	Attachments *datatypes.JSON `json:"attachments"`
	TagNames    *[]string       `json:"tag_names"`
	ResourceIDs *[]uuid.UUID    `json:"resource_ids"`
}

type LearningModuleService interface {
	Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, in CreateModuleInput) (*domain.LearningModule, error)
	Update(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, in UpdateModuleInput) (*domain.LearningModule, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	// SetResources replaces the module's resource membership wholesale.
	SetResources(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error
}

type learningModuleService struct {
	db           *gorm.DB
	log          *logger.Logger
	moduleRepo   repos.LearningModuleRepo
	resourceRepo repos.ResourceRepo
	tagRepo      repos.TagRepo
	entityTags   repos.LearningModuleTagRepo
	voteRepo     repos.LearningModuleVoteRepo
	savedRepo    repos.UserLearningModuleRepo
	mappingRepo  repos.ResourceModuleMappingRepo
}

func NewLearningModuleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	moduleRepo repos.LearningModuleRepo,
	resourceRepo repos.ResourceRepo,
	tagRepo repos.TagRepo,
	entityTags repos.LearningModuleTagRepo,
	voteRepo repos.LearningModuleVoteRepo,
	savedRepo repos.UserLearningModuleRepo,
	mappingRepo repos.ResourceModuleMappingRepo,
) LearningModuleService {
	return &learningModuleService{
		db:           db,
		log:          baseLog.With("service", "LearningModuleService"),
		moduleRepo:   moduleRepo,
		resourceRepo: resourceRepo,
		tagRepo:      tagRepo,
		entityTags:   entityTags,
		voteRepo:     voteRepo,
		savedRepo:    savedRepo,
		mappingRepo:  mappingRepo,
	}
}

func (s *learningModuleService) inTx(tx *gorm.DB, fn func(t *gorm.DB) error) error {
	if tx != nil {
		return fn(tx)
	}
	return s.db.Transaction(fn)
}

// checkResourceIDs verifies every referenced resource exists and is not
// deleted before it is linked into a module.
func (s *learningModuleService) checkResourceIDs(ctx context.Context, t *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.resourceRepo.GetByIDs(ctx, t, ids)
	if err != nil {
		return fmt.Errorf("load referenced resources: %w", err)
	}
	if len(found) != len(ids) {
		return apierr.Validation("unknown_resource", fmt.Errorf("one or more referenced resources do not exist"))
	}
	return nil
}

func (s *learningModuleService) Create(ctx context.Context, tx *gorm.DB, userID uuid.UUID, in CreateModuleInput) (*domain.LearningModule, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
	}
	if in.SubjectID == uuid.Nil || in.GradeID == uuid.Nil {
		return nil, apierr.Validation("missing_reference", fmt.Errorf("subject and grade are required"))
	}

	var created *domain.LearningModule
	err := s.inTx(tx, func(t *gorm.DB) error {
		existing, err := s.moduleRepo.GetByExactTitle(ctx, t, title)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if len(existing) > 0 {
			return apierr.Conflict("duplicate_title", fmt.Errorf("learning module titled %q already exists", title))
		}

		resourceIDs := dedupe(in.ResourceIDs)
		if err := s.checkResourceIDs(ctx, t, resourceIDs); err != nil {
			return err
		}

		mod := &domain.LearningModule{
			ID:          uuid.New(),
			Title:       title,
			Description: in.Description,
			SubjectID:   in.SubjectID,
			GradeID:     in.GradeID,
			ImageURL:    in.ImageURL,
			Attachments: in.Attachments,
			CreatedByID: userID,
			CreatedAt:   time.Now().UTC(),
		}
		if _, err := s.moduleRepo.Create(ctx, t, []*domain.LearningModule{mod}); err != nil {
			return fmt.Errorf("create module: %w", err)
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
			if err := s.entityTags.Replace(ctx, t, mod.ID, tagIDs); err != nil {
				return fmt.Errorf("attach tags: %w", err)
			}
		}
		if len(resourceIDs) > 0 {
			if _, err := s.mappingRepo.Add(ctx, t, mod.ID, resourceIDs); err != nil {
				return fmt.Errorf("link resources: %w", err)
			}
		}

		created = mod
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("learning module created", "learning_module_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *learningModuleService) Update(ctx context.Context, tx *gorm.DB, userID, id uuid.UUID, in UpdateModuleInput) (*domain.LearningModule, error) {
	var updated *domain.LearningModule
	err := s.inTx(tx, func(t *gorm.DB) error {
		current, err := s.moduleRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("load module: %w", err)
		}
		if current == nil {
			return apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", id))
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
			}
			existing, err := s.moduleRepo.GetByExactTitle(ctx, t, title)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			for _, other := range existing {
				if other.ID != id {
					return apierr.Conflict("duplicate_title", fmt.Errorf("learning module titled %q already exists", title))
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
		if in.Attachments != nil {
			updates["attachments"] = *in.Attachments
		}

		if len(updates) > 0 {
			updates["updated_by_id"] = userID
			updates["updated_at"] = time.Now().UTC()
			if err := s.moduleRepo.UpdateFields(ctx, t, id, updates); err != nil {
				return fmt.Errorf("update module: %w", err)
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
		if in.ResourceIDs != nil {
			resourceIDs := dedupe(*in.ResourceIDs)
			if err := s.checkResourceIDs(ctx, t, resourceIDs); err != nil {
				return err
			}
			if err := s.mappingRepo.Replace(ctx, t, id, resourceIDs); err != nil {
				return fmt.Errorf("replace resource links: %w", err)
			}
		}

		updated, err = s.moduleRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("reload module: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *learningModuleService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	err := s.inTx(tx, func(t *gorm.DB) error {
		current, err := s.moduleRepo.GetByID(ctx, t, id)
		if err != nil {
			return fmt.Errorf("load module: %w", err)
		}
		if current == nil {
			return apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", id))
		}

		ids := []uuid.UUID{id}
		if err := s.entityTags.DeleteByModuleIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete tag joins: %w", err)
		}
		if err := s.voteRepo.DeleteByModuleIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		if err := s.savedRepo.DeleteByModuleIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete saved rows: %w", err)
		}
		if err := s.mappingRepo.DeleteByModuleIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete resource links: %w", err)
		}
		if err := s.moduleRepo.SoftDeleteByIDs(ctx, t, ids); err != nil {
			return fmt.Errorf("delete module: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("learning module deleted", "learning_module_id", id)
	return nil
}

func (s *learningModuleService) SetResources(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, resourceIDs []uuid.UUID) error {
	return s.inTx(tx, func(t *gorm.DB) error {
		current, err := s.moduleRepo.GetByID(ctx, t, moduleID)
		if err != nil {
			return fmt.Errorf("load module: %w", err)
		}
		if current == nil {
			return apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", moduleID))
		}
		resourceIDs = dedupe(resourceIDs)
		if err := s.checkResourceIDs(ctx, t, resourceIDs); err != nil {
			return err
		}
		if err := s.mappingRepo.Replace(ctx, t, moduleID, resourceIDs); err != nil {
			return fmt.Errorf("replace resource links: %w", err)
		}
		return nil
	})
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
