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

type ResourceDiscoveryService interface {
	// Search runs the full discovery pipeline for the viewing user:
	// predicate fetch, grouping, ordering, windowing, and batched
	// display-name resolution.
	Search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec) (*discovery.ResourcePage, error)
	// SearchUserContent restricts discovery to the viewer's own shelf:
	// resources they created (isSaved=false) or saved (isSaved=true).
	SearchUserContent(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, isSaved bool, searchText string, page int) (*discovery.ResourcePage, error)
	Get(ctx context.Context, tx *gorm.DB, viewerID, id uuid.UUID) (*discovery.ResourceView, error)
	// ValidateTitle reports whether title is free for use. excludeID (non
	// nil uuid) skips the entity being edited so saving without renaming
	// does not trip the duplicate check.
	ValidateTitle(ctx context.Context, tx *gorm.DB, title string, excludeID uuid.UUID) (bool, error)
}

type resourceDiscoveryService struct {
	db           *gorm.DB
	log          *logger.Logger
	resourceRepo repos.ResourceRepo
	savedRepo    repos.UserResourceRepo
	resolver     names.Resolver
	nameBatchMax int
}

func NewResourceDiscoveryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	resourceRepo repos.ResourceRepo,
	savedRepo repos.UserResourceRepo,
	resolver names.Resolver,
	nameBatchMax int,
) ResourceDiscoveryService {
	if nameBatchMax <= 0 {
		nameBatchMax = names.DefaultBatchMax
	}
	return &resourceDiscoveryService{
		db:           db,
		log:          baseLog.With("service", "ResourceDiscoveryService"),
		resourceRepo: resourceRepo,
		savedRepo:    savedRepo,
		resolver:     resolver,
		nameBatchMax: nameBatchMax,
	}
}

func (s *resourceDiscoveryService) Search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec) (*discovery.ResourcePage, error) {
	return s.search(ctx, tx, viewerID, f, nil)
}

func (s *resourceDiscoveryService) SearchUserContent(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, isSaved bool, searchText string, page int) (*discovery.ResourcePage, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	f := discovery.FilterSpec{SearchText: searchText, Page: page}

	if !isSaved {
		f.CreatedByIDs = []uuid.UUID{viewerID}
		return s.search(ctx, t, viewerID, f, nil)
	}

	savedIDs, err := s.savedRepo.ResourceIDsByUser(ctx, t, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load saved resource ids: %w", err)
	}
	if len(savedIDs) == 0 {
		f = f.Normalized()
		return &discovery.ResourcePage{Items: []discovery.ResourceView{}, Page: f.Page, HasMore: false}, nil
	}
	return s.search(ctx, t, viewerID, f, savedIDs)
}

func (s *resourceDiscoveryService) search(ctx context.Context, tx *gorm.DB, viewerID uuid.UUID, f discovery.FilterSpec, restrictIDs []uuid.UUID) (*discovery.ResourcePage, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	f = f.Normalized()

	var (
		rows []discovery.ResourceRow
		err  error
	)
	if !f.HasConstraints() && restrictIDs == nil {
		// Unfiltered feed: window the id set first, then hydrate only
		// that page's entities.
		ids, pErr := s.resourceRepo.PageIDs(ctx, t, f.Page*f.PageSize, f.PageSize)
		if pErr != nil {
			return nil, fmt.Errorf("page resource ids: %w", pErr)
		}
		rows, err = s.resourceRepo.JoinedRowsByIDs(ctx, t, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch resource rows: %w", err)
		}
		recs := discovery.GroupResourceRows(s.log, rows)
		discovery.SortResourceRecords(recs)
		hasMore := len(ids) == f.PageSize
		return s.assemble(ctx, t, recs, viewerID, f.Page, hasMore)
	}

	rows, err = s.resourceRepo.JoinedRowsFiltered(ctx, t, f, restrictIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch filtered resource rows: %w", err)
	}
	recs := discovery.GroupResourceRows(s.log, rows)
	discovery.SortResourceRecords(recs)
	pageRecs, hasMore := discovery.Window(recs, f.Page, f.PageSize)
	return s.assemble(ctx, t, pageRecs, viewerID, f.Page, hasMore)
}

func (s *resourceDiscoveryService) assemble(ctx context.Context, tx *gorm.DB, recs []discovery.ResourceRecord, viewerID uuid.UUID, page int, hasMore bool) (*discovery.ResourcePage, error) {
	creatorIDs := discovery.DistinctCreatorIDs(recs, func(r discovery.ResourceRecord) uuid.UUID {
		return r.CreatedByID
	}, s.nameBatchMax)

	nameMap, err := s.resolver.ResolveDisplayNames(ctx, tx, creatorIDs)
	if err != nil {
		// Names are decoration; serve the page without them.
		s.log.Warn("display name resolution failed", "error", err)
		nameMap = map[uuid.UUID]string{}
	}

	return &discovery.ResourcePage{
		Items:   discovery.AssembleResourceViews(recs, viewerID, nameMap),
		Page:    page,
		HasMore: hasMore,
	}, nil
}

func (s *resourceDiscoveryService) Get(ctx context.Context, tx *gorm.DB, viewerID, id uuid.UUID) (*discovery.ResourceView, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	rows, err := s.resourceRepo.JoinedRowsByIDs(ctx, t, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("fetch resource rows: %w", err)
	}
	recs := discovery.GroupResourceRows(s.log, rows)
	if len(recs) == 0 {
		return nil, apierr.NotFound("resource_not_found", fmt.Errorf("resource %s not found", id))
	}

	page, err := s.assemble(ctx, t, recs[:1], viewerID, 0, false)
	if err != nil {
		return nil, err
	}
	return &page.Items[0], nil
}

func (s *resourceDiscoveryService) ValidateTitle(ctx context.Context, tx *gorm.DB, title string, excludeID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = s.db
	}
	if title == "" {
		return false, apierr.Validation("empty_title", fmt.Errorf("title must not be empty"))
	}
	existing, err := s.resourceRepo.GetByExactTitle(ctx, t, title)
	if err != nil {
		return false, fmt.Errorf("check resource title: %w", err)
	}
	for _, r := range existing {
		if r.ID != excludeID {
			return false, nil
		}
	}
	return true, nil
}
