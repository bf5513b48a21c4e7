package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/edushare/edushare-backend/internal/data/repos/testutil"
)

func TestResourceVoteRepoIdempotence(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewResourceVoteRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	voter := testutil.SeedUser(t, tx, "Voter")
	subj := testutil.SeedSubject(t, tx, "math")
	grade := testutil.SeedGrade(t, tx, "grade-5")
	res := testutil.SeedResource(t, tx, "Votable", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	inserted, err := repo.Upvote(ctx, tx, res.ID, voter.ID)
	if err != nil {
		t.Fatalf("Upvote: %v", err)
	}
	if !inserted {
		t.Fatalf("Upvote: first vote should insert")
	}

	inserted, err = repo.Upvote(ctx, tx, res.ID, voter.ID)
	if err != nil {
		t.Fatalf("Upvote (repeat): %v", err)
	}
	if inserted {
		t.Fatalf("Upvote: repeat vote must be a no-op")
	}

	n, err := repo.CountByResourceID(ctx, tx, res.ID)
	if err != nil {
		t.Fatalf("CountByResourceID: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected exactly one vote after repeats, got %d", n)
	}

	removed, err := repo.Downvote(ctx, tx, res.ID, voter.ID)
	if err != nil {
		t.Fatalf("Downvote: %v", err)
	}
	if !removed {
		t.Fatalf("Downvote: expected removal of existing vote")
	}

	removed, err = repo.Downvote(ctx, tx, res.ID, voter.ID)
	if err != nil {
		t.Fatalf("Downvote (repeat): %v", err)
	}
	if removed {
		t.Fatalf("Downvote: repeat must be a no-op")
	}

	// Re-vote after removal works again.
	inserted, err = repo.Upvote(ctx, tx, res.ID, voter.ID)
	if err != nil {
		t.Fatalf("Upvote (re-vote): %v", err)
	}
	if !inserted {
		t.Fatalf("Upvote: re-vote after downvote should insert")
	}
}

func TestLearningModuleVoteRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLearningModuleVoteRepo(db, testutil.Logger(t))
	ctx := context.Background()

	creator := testutil.SeedUser(t, tx, "Creator")
	voterA := testutil.SeedUser(t, tx, "Voter A")
	voterB := testutil.SeedUser(t, tx, "Voter B")
	subj := testutil.SeedSubject(t, tx, "science")
	grade := testutil.SeedGrade(t, tx, "grade-7")
	mod := testutil.SeedModule(t, tx, "Votable Unit", subj.ID, grade.ID, creator.ID, time.Now().UTC())

	if _, err := repo.Upvote(ctx, tx, mod.ID, voterA.ID); err != nil {
		t.Fatalf("Upvote A: %v", err)
	}
	if _, err := repo.Upvote(ctx, tx, mod.ID, voterB.ID); err != nil {
		t.Fatalf("Upvote B: %v", err)
	}
	if _, err := repo.Upvote(ctx, tx, mod.ID, voterB.ID); err != nil {
		t.Fatalf("Upvote B repeat: %v", err)
	}

	n, err := repo.CountByModuleID(ctx, tx, mod.ID)
	if err != nil {
		t.Fatalf("CountByModuleID: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 distinct votes, got %d", n)
	}
}
