package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/logger"
	"github.com/edushare/edushare-backend/internal/platform/names"
)

type ModuleDiscoveryService interface {
	Search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec) (*discovery.ModulePage, error)
	SearchUserContent(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, isSaved bool, searchText string, page int) (*discovery.ModulePage, error)
	Get(ctx context.Context, tx *gorm.DB, viewerID, id uuid.UUID) (*discovery.ModuleView, error)
	ValidateTitle(ctx context.Context, tx *gorm.DB, title string, excludeID uuid.UUID) (bool, error)
}

type moduleDiscoveryService struct {
	db           *gorm.DB
	log          *logger.Logger
	moduleRepo   repos.LearningModuleRepo
	savedRepo    repos.UserLearningModuleRepo
	resolver     names.Resolver
	nameBatchMax int
}

func NewModuleDiscoveryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	moduleRepo repos.LearningModuleRepo,
	savedRepo repos.UserLearningModuleRepo,
	resolver names.Resolver,
	nameBatchMax int,
) ModuleDiscoveryService {
	if nameBatchMax <= 0 {
		nameBatchMax = names.DefaultBatchMax
	}
	return &moduleDiscoveryService{
		db:           db,
		log:          baseLog.With("service", "ModuleDiscoveryService"),
		moduleRepo:   moduleRepo,
		savedRepo:    savedRepo,
		resolver:     resolver,
		nameBatchMax: nameBatchMax,
	}
}

func (s *moduleDiscoveryService) Search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec) (*discovery.ModulePage, error) {
	return s.search(ctx, tx, viewerID, f, nil)
}

func (s *moduleDiscoveryService) SearchUserContent(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, isSaved bool, searchText string, page int) (*discovery.ModulePage, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	f := discovery.FilterSpec{SearchText: searchText, Page: page}

	if !isSaved {
		f.CreatedByIDs = []uuid.UUID{viewerID}
		return s.search(ctx, t, viewerID, f, nil)
	}

	savedIDs, err := s.savedRepo.ModuleIDsByUser(ctx, t, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load saved module ids: %w", err)
	}
	if len(savedIDs) == 0 {
		f = f.Normalized()
		return &discovery.ModulePage{Items: []discovery.ModuleView{}, Page: f.Page, HasMore: false}, nil
	}
	return s.search(ctx, t, viewerID, f, savedIDs)
}

func (s *moduleDiscoveryService) search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec, restrictIDs []uuid.UUID) (*discovery.ModulePage, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	f = f.Normalized()

	if !f.HasConstraints() && restrictIDs == nil {
		ids, err := s.moduleRepo.PageIDs(ctx, t, f.Page*f.PageSize, f.PageSize)
		if err != nil {
			return nil, fmt.Errorf("page module ids: %w", err)
		}
		rows, err := s.moduleRepo.JoinedRowsByIDs(ctx, t, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch module rows: %w", err)
		}
		recs := discovery.GroupModuleRows(s.log, rows)
		discovery.SortModuleRecords(recs)
		hasMore := len(ids) == f.PageSize
		return s.assemble(ctx, t, recs, viewerID, f.Page, hasMore)
	}

	rows, err := s.moduleRepo.JoinedRowsFiltered(ctx, t, f, restrictIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch filtered module rows: %w", err)
	}
	recs := discovery.GroupModuleRows(s.log, rows)
	discovery.SortModuleRecords(recs)
	pageRecs, hasMore := discovery.Window(recs, f.Page, f.PageSize)
	return s.assemble(ctx, t, pageRecs, viewerID, f.Page, hasMore)
}

func (s *moduleDiscoveryService) assemble(ctx context.Context, tx *gorm.DB, recs []discovery.ModuleRecord, viewerID uuid.UUID, page int, hasMore bool) (*discovery.ModulePage, error) {
	creatorIDs := discovery.DistinctCreatorIDs(recs, func(r discovery.ModuleRecord) uuid.UUID {
		return r.CreatedByID
	}, s.nameBatchMax)

	nameMap, err := s.resolver.ResolveDisplayNames(ctx, tx, creatorIDs)
	if err != nil {
		s.log.Warn("display name resolution failed", "error", err)
		nameMap = map[uuid.UUID]string{}
	}

	return &discovery.ModulePage{
		Items:   discovery.AssembleModuleViews(recs, viewerID, nameMap),
		Page:    page,
		HasMore: hasMore,
	}, nil
}

func (s *moduleDiscoveryService) Get(ctx context.Context, tx *gorm.DB, viewerID, id uuid.UUID) (*discovery.ModuleView, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	rows, err := s.moduleRepo.JoinedRowsByIDs(ctx, t, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("fetch module rows: %w", err)
	}
	recs := discovery.GroupModuleRows(s.log, rows)
	if len(recs) == 0 {
		return nil, apierr.NotFound("learning_module_not_found", fmt.Errorf("learning module %s not found", id))
	}

	page, err := s.assemble(ctx, t, recs[:1], viewerID, 0, false)
	if err != nil {
		return nil, err
	}
	return &page.Items[0], nil
}

func (s *moduleDiscoveryService) ValidateTitle(ctx context.Context, tx *gorm.DB, title string, excludeID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	if title == "" {
		return false, apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
	}
	existing, err := s.moduleRepo.GetByExactTitle(ctx, t, title)
	if err != nil {
		return false, fmt.Errorf("check module title: %w", err)
	}
	for _, m := range existing {
		if m.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}
