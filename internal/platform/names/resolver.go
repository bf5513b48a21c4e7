package names

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/platform/logger"
)

// DefaultBatchMax bounds one resolution request. Discovery pages are
// small, so a page's worth of distinct creators always fits.
const DefaultBatchMax = 25

// Resolver maps user ids to display names in one batched lookup. Ids that
// resolve to nothing are absent from the returned map; callers degrade to
// an empty display name rather than failing the page. The lookup runs on
// the caller's transaction so it sees rows the caller just wrote.
type Resolver interface {
	ResolveDisplayNames(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type repoResolver struct {
	userRepo repos.UserRepo
	log      *logger.Logger
	batchMax int
}

func NewRepoResolver(userRepo repos.UserRepo, baseLog *logger.Logger, batchMax int) Resolver {
	if batchMax <= 0 {
		batchMax = DefaultBatchMax
	}
	return &repoResolver{
		userRepo: userRepo,
		log:      baseLog.With("service", "NameResolver"),
		batchMax: batchMax,
	}
}

func (r *repoResolver) ResolveDisplayNames(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for start := 0; start < len(ids); start += r.batchMax {
		end := start + r.batchMax
		if end > len(ids) {
			end = len(ids)
		}
		chunk, err := r.userRepo.DisplayNamesByIDs(ctx, tx, ids[start:end])
		if err != nil {
			return nil, err
		}
		for id, name := range chunk {
			out[id] = name
		}
	}
	return out, nil
}
