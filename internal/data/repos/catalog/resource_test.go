package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/edushare/edushare-backend/internal/data/repos/testutil"
	"github.com/edushare/edushare-backend/internal/discovery"
)

func TestResourceRepoJoinedRows(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	tagRepo := NewResourceTagRepo(db, testutil.Logger(t))
	voteRepo := NewResourceVoteRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	voterA := testutil.SeedUser(t, tx, "Voter A")
	voterB := testutil.SeedUser(t, tx, "Voter B")
	subj := testutil.SeedSubject(t, tx, "math")
	grade := testutil.SeedGrade(t, tx, "grade-5")
	tagX := testutil.SeedTag(t, tx, "algebra")
	tagY := testutil.SeedTag(t, tx, "fractions")

	now := time.Now().UTC().Truncate(time.Microsecond)
	res := testutil.SeedResource(t, tx, "Fraction Drills", subj.ID, grade.ID, creator.ID, now)

	if err := tagRepo.Replace(ctx, tx, res.ID, []uuid.UUID{tagX.ID, tagY.ID}); err != nil {
		t.Fatalf("Replace tags: %v", err)
	}
	for _, voter := range []uuid.UUID{voterA.ID, voterB.ID} {
		if _, err := voteRepo.Upvote(ctx, tx, res.ID, voter); err != nil {
			t.Fatalf("Upvote: %v", err)
		}
	}

	rows, err := repo.JoinedRowsByIDs(ctx, tx, []uuid.UUID{res.ID})
	if err != nil {
		t.Fatalf("JoinedRowsByIDs: %v", err)
	}
	// 2 tags x 2 votes fan out to 4 rows for one resource.
	if len(rows) != 4 {
		t.Fatalf("JoinedRowsByIDs: expected 4 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ID != res.ID {
			t.Fatalf("JoinedRowsByIDs: unexpected resource id %s", row.ID)
		}
		if row.SubjectName != subj.Name || row.GradeName != grade.Name {
			t.Fatalf("JoinedRowsByIDs: scalar names not joined: %+v", row)
		}
		if row.TagID == nil || row.VoteUserID == nil {
			t.Fatalf("JoinedRowsByIDs: expected tag and vote join columns: %+v", row)
		}
	}

	recs := discovery.GroupResourceRows(testutil.Logger(t), rows)
	if len(recs) != 1 {
		t.Fatalf("GroupResourceRows: expected 1 record, got %d", len(recs))
	}
	if got := len(recs[0].Tags); got != 2 {
		t.Fatalf("grouped tags: expected 2, got %d", got)
	}
	if got := recs[0].VoteCount(); got != 2 {
		t.Fatalf("grouped votes: expected 2, got %d", got)
	}
}

func TestResourceRepoJoinedRowsNoChildren(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "science")
	grade := testutil.SeedGrade(t, tx, "grade-7")
	res := testutil.SeedResource(t, tx, "Plain Resource", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	rows, err := repo.JoinedRowsByIDs(ctx, tx, []uuid.UUID{res.ID})
	if err != nil {
		t.Fatalf("JoinedRowsByIDs: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for tagless voteless resource, got %d", len(rows))
	}
	if rows[0].TagID != nil || rows[0].VoteID != nil {
		t.Fatalf("expected nil join columns: %+v", rows[0])
	}
}

func TestResourceRepoFilteredFacets(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	tagRepo := NewResourceTagRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	other := testutil.SeedUser(t, tx, "Other")
	mathSubj := testutil.SeedSubject(t, tx, "math")
	sciSubj := testutil.SeedSubject(t, tx, "science")
	grade := testutil.SeedGrade(t, tx, "grade-3")
	tag := testutil.SeedTag(t, tx, "geometry")

	now := time.Now().UTC()
	mathRes := testutil.SeedResource(t, tx, "Shapes Workbook", mathSubj.ID, grade.ID, creator.ID, now)
	sciRes := testutil.SeedResource(t, tx, "Plant Cells", sciSubj.ID, grade.ID, other.ID, now.Add(-time.Hour))
	if err := tagRepo.Replace(ctx, tx, mathRes.ID, []uuid.UUID{tag.ID}); err != nil {
		t.Fatalf("Replace tags: %v", err)
	}

	onlyIDs := func(rows []discovery.ResourceRow) map[uuid.UUID]bool {
		out := map[uuid.UUID]bool{}
		for _, r := range rows {
			out[r.ID] = true
		}
		return out
	}

	rows, err := repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SubjectIDs: []uuid.UUID{mathSubj.ID}}, nil)
	if err != nil {
		t.Fatalf("filter by subject: %v", err)
	}
	ids := onlyIDs(rows)
	if !ids[mathRes.ID] || ids[sciRes.ID] {
		t.Fatalf("subject facet: expected only math resource, got %v", ids)
	}

	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{TagIDs: []uuid.UUID{tag.ID}}, nil)
	if err != nil {
		t.Fatalf("filter by tag: %v", err)
	}
	ids = onlyIDs(rows)
	if !ids[mathRes.ID] || ids[sciRes.ID] {
		t.Fatalf("tag facet: expected only tagged resource, got %v", ids)
	}

	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{CreatedByIDs: []uuid.UUID{other.ID}}, nil)
	if err != nil {
		t.Fatalf("filter by creator: %v", err)
	}
	ids = onlyIDs(rows)
	if ids[mathRes.ID] || !ids[sciRes.ID] {
		t.Fatalf("creator facet: expected only other's resource, got %v", ids)
	}

	// Facets AND together: math subject + other creator matches nothing.
	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{
		SubjectIDs:   []uuid.UUID{mathSubj.ID},
		CreatedByIDs: []uuid.UUID{other.ID},
	}, nil)
	if err != nil {
		t.Fatalf("filter by subject+creator: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("AND of disjoint facets: expected no rows, got %d", len(rows))
	}
}

func TestResourceRepoFilteredText(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "reading")
	grade := testutil.SeedGrade(t, tx, "grade-1")

	now := time.Now().UTC()
	phonics := testutil.SeedResource(t, tx, "Phonics Primer", subj.ID, grade.ID, creator.ID, now)
	sight := testutil.SeedResource(t, tx, "Sight Words", subj.ID, grade.ID, creator.ID, now)

	rows, err := repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SearchText: "phon"}, nil)
	if err != nil {
		t.Fatalf("fuzzy search: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != phonics.ID {
		t.Fatalf("fuzzy search: expected the phonics resource, got %+v", rows)
	}

	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SearchText: "SIGHT WORDS", ExactMatch: true}, nil)
	if err != nil {
		t.Fatalf("exact search: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != sight.ID {
		t.Fatalf("exact search: expected case-insensitive title match, got %+v", rows)
	}

	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SearchText: "Sight", ExactMatch: true}, nil)
	if err != nil {
		t.Fatalf("exact partial search: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("exact search must not match partial titles, got %+v", rows)
	}

	// A literal underscore in the pattern must not act as a wildcard.
	rows, err = repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SearchText: "p_onics"}, nil)
	if err != nil {
		t.Fatalf("escaped search: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("LIKE metacharacters must be escaped, got %+v", rows)
	}
}

func TestResourceRepoRestrictIDs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "art")
	grade := testutil.SeedGrade(t, tx, "grade-2")

	now := time.Now().UTC()
	mine := testutil.SeedResource(t, tx, "Mine", subj.ID, grade.ID, creator.ID, now)
	testutil.SeedResource(t, tx, "Not Mine", subj.ID, grade.ID, creator.ID, now)

	rows, err := repo.JoinedRowsFiltered(ctx, tx, discovery.FilterSpec{SubjectIDs: []uuid.UUID{subj.ID}}, []uuid.UUID{mine.ID})
	if err != nil {
		t.Fatalf("restricted filter: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != mine.ID {
		t.Fatalf("restricted filter: expected only the allowed id, got %+v", rows)
	}
}

func TestResourceRepoSoftDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "music")
	grade := testutil.SeedGrade(t, tx, "grade-4")
	res := testutil.SeedResource(t, tx, "Scales", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{res.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected soft-deleted resource to be invisible, got %+v", got)
	}

	rows, err := repo.JoinedRowsByIDs(ctx, tx, []uuid.UUID{res.ID})
	if err != nil {
		t.Fatalf("JoinedRowsByIDs: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected soft-deleted resource excluded from joins, got %d rows", len(rows))
	}
}

func TestResourceRepoPageIDsOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "history")
	grade := testutil.SeedGrade(t, tx, "grade-6")

	base := time.Now().UTC().Add(100 * 365 * 24 * time.Hour)
	oldest := testutil.SeedResource(t, tx, "Oldest", subj.ID, grade.ID, creator.ID, base)
	middle := testutil.SeedResource(t, tx, "Middle", subj.ID, grade.ID, creator.ID, base.Add(time.Minute))
	newest := testutil.SeedResource(t, tx, "Newest", subj.ID, grade.ID, creator.ID, base.Add(2*time.Minute))

	ids, err := repo.PageIDs(ctx, tx, 0, 3)
	if err != nil {
		t.Fatalf("PageIDs: %v", err)
	}
	want := []uuid.UUID{newest.ID, middle.ID, oldest.ID}
	if len(ids) != 3 {
		t.Fatalf("PageIDs: expected 3 ids, got %d", len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("PageIDs: position %d expected %s got %s", i, want[i], ids[i])
		}
	}

	ids, err = repo.PageIDs(ctx, tx, 1, 2)
	if err != nil {
		t.Fatalf("PageIDs offset: %v", err)
	}
	if len(ids) != 2 || ids[0] != middle.ID || ids[1] != oldest.ID {
		t.Fatalf("PageIDs offset: unexpected window %v", ids)
	}
}

func TestResourceRepoGetByExactTitle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	subj := testutil.SeedSubject(t, tx, "latin")
	grade := testutil.SeedGrade(t, tx, "grade-8")
	res := testutil.SeedResource(t, tx, "Declensions", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	got, err := repo.GetByExactTitle(ctx, tx, "dEcLeNsIoNs")
	if err != nil {
		t.Fatalf("GetByExactTitle: %v", err)
	}
	if len(got) != 1 || got[0].ID != res.ID {
		t.Fatalf("GetByExactTitle: expected case-insensitive hit, got %+v", got)
	}

	got, err = repo.GetByExactTitle(ctx, tx, "Declension")
	if err != nil {
		t.Fatalf("GetByExactTitle (miss): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("GetByExactTitle: partial title must not match, got %+v", got)
	}
}

func TestResourceRepoUpdateFields(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	editor := testutil.SeedUser(t, tx, "Editor")
	subj := testutil.SeedSubject(t, tx, "civics")
	grade := testutil.SeedGrade(t, tx, "grade-9")
	res := testutil.SeedResource(t, tx, "Branches", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	editedAt := time.Now().UTC().Truncate(time.Microsecond)
	err := repo.UpdateFields(ctx, tx, res.ID, map[string]interface{}{
		"title":         "Branches of Government",
		"updated_by_id": editor.ID,
		"updated_at":    editedAt,
	})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, res.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Branches of Government" {
		t.Fatalf("UpdateFields: title not updated: %q", got.Title)
	}
	if got.UpdatedByID == nil || *got.UpdatedByID != editor.ID {
		t.Fatalf("UpdateFields: updated_by not recorded: %+v", got.UpdatedByID)
	}
	if got.UpdatedAt == nil {
		t.Fatalf("UpdateFields: updated_at still nil")
	}
}
