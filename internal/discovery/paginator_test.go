package discovery

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSortResourceRecords_NewestFirstWithIDTieBreak(t *testing.T) {
	now := time.Now()
	older := ResourceRecord{ID: uuid.New(), CreatedAt: now.Add(-time.Hour)}
	newer := ResourceRecord{ID: uuid.New(), CreatedAt: now}

	// two records sharing a timestamp order by id ascending
	tieA := ResourceRecord{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), CreatedAt: now.Add(-2 * time.Hour)}
	tieB := ResourceRecord{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), CreatedAt: now.Add(-2 * time.Hour)}

	recs := []ResourceRecord{tieB, older, tieA, newer}
	SortResourceRecords(recs)

	if recs[0].ID != newer.ID || recs[1].ID != older.ID {
		t.Fatalf("recency ordering broken: %v", []uuid.UUID{recs[0].ID, recs[1].ID})
	}
	if recs[2].ID != tieA.ID || recs[3].ID != tieB.ID {
		t.Fatalf("id tie-break broken: got %v then %v", recs[2].ID, recs[3].ID)
	}
}

func TestWindow_PagesAreDisjointAndComplete(t *testing.T) {
	recs := make([]ResourceRecord, 5)
	now := time.Now()
	for i := range recs {
		recs[i] = ResourceRecord{ID: uuid.New(), CreatedAt: now.Add(-time.Duration(i) * time.Minute)}
	}
	SortResourceRecords(recs)

	seen := map[uuid.UUID]bool{}
	page0, more0 := Window(recs, 0, 2)
	page1, more1 := Window(recs, 1, 2)
	page2, more2 := Window(recs, 2, 2)

	if len(page0) != 2 || !more0 {
		t.Fatalf("page 0: len=%d more=%v", len(page0), more0)
	}
	if len(page1) != 2 || !more1 {
		t.Fatalf("page 1: len=%d more=%v", len(page1), more1)
	}
	if len(page2) != 1 || more2 {
		t.Fatalf("page 2 must be the short last page: len=%d more=%v", len(page2), more2)
	}
	for _, p := range [][]ResourceRecord{page0, page1, page2} {
		for _, r := range p {
			if seen[r.ID] {
				t.Fatalf("entity %v appeared on two pages", r.ID)
			}
			seen[r.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected all 5 entities across pages, got %d", len(seen))
	}
}

func TestWindow_PastTheEnd(t *testing.T) {
	recs := []ResourceRecord{{ID: uuid.New()}}
	out, more := Window(recs, 7, 3)
	if len(out) != 0 || more {
		t.Fatalf("expected empty page without more, got len=%d more=%v", len(out), more)
	}
}

func TestWindow_ExactBoundaryReportsMore(t *testing.T) {
	// A full page cannot prove it is the last one; the contract is that
	// only a short page is terminal.
	recs := make([]ResourceRecord, 4)
	out, more := Window(recs, 1, 2)
	if len(out) != 2 || !more {
		t.Fatalf("full trailing page should still report more: len=%d more=%v", len(out), more)
	}
	next, nextMore := Window(recs, 2, 2)
	if len(next) != 0 || nextMore {
		t.Fatalf("following page should be empty and terminal")
	}
}

func TestDistinctCreatorIDs_CapsAndDedupes(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	recs := []ResourceRecord{
		{CreatedByID: a}, {CreatedByID: b}, {CreatedByID: a}, {CreatedByID: c},
	}
	got := DistinctCreatorIDs(recs, func(r ResourceRecord) uuid.UUID { return r.CreatedByID }, 2)
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("expected first two distinct creators, got %v", got)
	}
	all := DistinctCreatorIDs(recs, func(r ResourceRecord) uuid.UUID { return r.CreatedByID }, 25)
	if len(all) != 3 {
		t.Fatalf("expected 3 distinct creators, got %d", len(all))
	}
}

func TestAssembleResourceViews_AggregatesAndNames(t *testing.T) {
	creator := uuid.New()
	viewer := uuid.New()
	rec := ResourceRecord{
		ID:          uuid.New(),
		Title:       "Photosynthesis Lab",
		SubjectName: "Biology",
		GradeName:   "G7",
		CreatedByID: creator,
		CreatedAt:   time.Now(),
		VoteUserIDs: []uuid.UUID{viewer, uuid.New()},
	}
	views := AssembleResourceViews([]ResourceRecord{rec}, viewer, map[uuid.UUID]string{creator: "Pat Jones"})
	if len(views) != 1 {
		t.Fatalf("expected one view")
	}
	v := views[0]
	if v.VoteCount != 2 || !v.IsLikedByUser {
		t.Fatalf("aggregates wrong: count=%d liked=%v", v.VoteCount, v.IsLikedByUser)
	}
	if v.UserDisplayName != "Pat Jones" {
		t.Fatalf("name resolution wrong: %q", v.UserDisplayName)
	}
	if v.Tags == nil {
		t.Fatalf("tags must serialize as an empty list, not null")
	}
}

func TestAssembleModuleViews_MissingNameDegradesToEmpty(t *testing.T) {
	rec := ModuleRecord{
		ID:                uuid.New(),
		SubjectName:       "Math",
		GradeName:         "G1",
		CreatedByID:       uuid.New(),
		MappedResourceIDs: []uuid.UUID{uuid.New(), uuid.New()},
	}
	views := AssembleModuleViews([]ModuleRecord{rec}, uuid.New(), map[uuid.UUID]string{})
	if views[0].UserDisplayName != "" {
		t.Fatalf("expected empty display name fallback")
	}
	if views[0].ResourceCount != 2 {
		t.Fatalf("expected resource count 2, got %d", views[0].ResourceCount)
	}
}
