package discovery

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ordering is (CreatedOn descending, ID ascending). The id tie-break keeps
// pagination deterministic when several entities share a timestamp.
func lessByRecency(aCreated time.Time, aID uuid.UUID, bCreated time.Time, bID uuid.UUID) bool {
	if !aCreated.Equal(bCreated) {
		return aCreated.After(bCreated)
	}
	return strings.Compare(aID.String(), bID.String()) < 0
}

func SortResourceRecords(recs []ResourceRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return lessByRecency(recs[i].CreatedAt, recs[i].ID, recs[j].CreatedAt, recs[j].ID)
	})
}

func SortModuleRecords(recs []ModuleRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return lessByRecency(recs[i].CreatedAt, recs[i].ID, recs[j].CreatedAt, recs[j].ID)
	})
}

// Window applies zero-based page windowing over an ordered slice. The
// second result is the "has more" signal: a page is the last one exactly
// when it comes back shorter than pageSize.
func Window[T any](items []T, page, pageSize int) ([]T, bool) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := page * pageSize
	if start >= len(items) {
		return []T{}, false
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	out := items[start:end]
	return out, len(out) == pageSize
}
