package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/edushare/edushare-backend/internal/data/repos/testutil"
)

func TestUserResourceRepoSaveConflict(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserResourceRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	saver := testutil.SeedUser(t, tx, "Saver")
	subj := testutil.SeedSubject(t, tx, "math")
	grade := testutil.SeedGrade(t, tx, "grade-5")
	res := testutil.SeedResource(t, tx, "Saveable", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	inserted, err := repo.Save(ctx, tx, saver.ID, res.ID)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !inserted {
		t.Fatalf("Save: first save should insert")
	}

	inserted, err = repo.Save(ctx, tx, saver.ID, res.ID)
	if err != nil {
		t.Fatalf("Save (repeat): %v", err)
	}
	if inserted {
		t.Fatalf("Save: duplicate save must report no insert")
	}

	ids, err := repo.ResourceIDsByUser(ctx, tx, saver.ID)
	if err != nil {
		t.Fatalf("ResourceIDsByUser: %v", err)
	}
	if len(ids) != 1 || ids[0] != res.ID {
		t.Fatalf("ResourceIDsByUser: unexpected ids %v", ids)
	}

	removed, err := repo.Unsave(ctx, tx, saver.ID, res.ID)
	if err != nil {
		t.Fatalf("Unsave: %v", err)
	}
	if !removed {
		t.Fatalf("Unsave: expected removal")
	}

	removed, err = repo.Unsave(ctx, tx, saver.ID, res.ID)
	if err != nil {
		t.Fatalf("Unsave (repeat): %v", err)
	}
	if removed {
		t.Fatalf("Unsave: repeat must be a no-op")
	}

	ids, err = repo.ResourceIDsByUser(ctx, tx, saver.ID)
	if err != nil {
		t.Fatalf("ResourceIDsByUser (after unsave): %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty saved list, got %v", ids)
	}
}

func TestUserLearningModuleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserLearningModuleRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	saver := testutil.SeedUser(t, tx, "Saver")
	subj := testutil.SeedSubject(t, tx, "science")
	grade := testutil.SeedGrade(t, tx, "grade-7")
	modA := testutil.SeedModule(t, tx, "Unit A", subj.ID, grade.ID, creator.ID, time.Now().UTC())
	modB := testutil.SeedModule(t, tx, "Unit B", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	if _, err := repo.Save(ctx, tx, saver.ID, modA.ID); err != nil {
		t.Fatalf("Save A: %v", err)
	}
	if _, err := repo.Save(ctx, tx, saver.ID, modB.ID); err != nil {
		t.Fatalf("Save B: %v", err)
	}

	ids, err := repo.ModuleIDsByUser(ctx, tx, saver.ID)
	if err != nil {
		t.Fatalf("ModuleIDsByUser: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 saved modules, got %v", ids)
	}

	if err := repo.DeleteByModuleIDs(ctx, tx, ids[:1]); err != nil {
		t.Fatalf("DeleteByModuleIDs: %v", err)
	}
	ids, err = repo.ModuleIDsByUser(ctx, tx, saver.ID)
	if err != nil {
		t.Fatalf("ModuleIDsByUser (after delete): %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 saved module after cascade delete, got %v", ids)
	}
}
