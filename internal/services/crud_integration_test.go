package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/data/repos"
	"github.com/edushare/edushare-backend/internal/data/repos/testutil"
	"github.com/edushare/edushare-backend/internal/discovery"
	"github.com/edushare/edushare-backend/internal/domain"
	"github.com/edushare/edushare-backend/internal/platform/apierr"
	"github.com/edushare/edushare-backend/internal/platform/names"
)

type serviceHarness struct {
	tx *gorm.DB

	resources repos.ResourceRepo
	modules   repos.LearningModuleRepo

	resourceSvc  ResourceService
	moduleSvc    LearningModuleService
	resourceDisc ResourceDiscoveryService
	moduleDisc   ModuleDiscoveryService
	votes        VoteService
	saved        SavedListService
	settings     UserSettingsService
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	userRepo := repos.NewUserRepo(db, log)
	tagRepo := repos.NewTagRepo(db, log)
	resourceRepo := repos.NewResourceRepo(db, log)
	resourceTags := repos.NewResourceTagRepo(db, log)
	resourceVotes := repos.NewResourceVoteRepo(db, log)
	userResources := repos.NewUserResourceRepo(db, log)
	moduleRepo := repos.NewLearningModuleRepo(db, log)
	moduleTags := repos.NewLearningModuleTagRepo(db, log)
	moduleVotes := repos.NewLearningModuleVoteRepo(db, log)
	userModules := repos.NewUserLearningModuleRepo(db, log)
	mappings := repos.NewResourceModuleMappingRepo(db, log)
	settingsRepo := repos.NewUserSettingsRepo(db, log)

	resolver := names.NewRepoResolver(userRepo, log, 0)

	return &serviceHarness{
		tx:        tx,
		resources: resourceRepo,
		modules:   moduleRepo,

		resourceSvc: NewResourceService(db, log, resourceRepo, tagRepo, resourceTags, resourceVotes, userResources, mappings),
		moduleSvc: NewLearningModuleService(db, log, moduleRepo, resourceRepo, tagRepo,
			moduleTags, moduleVotes, userModules, mappings),
		resourceDisc: NewResourceDiscoveryService(db, log, resourceRepo, userResources, resolver, 0),
		moduleDisc:   NewModuleDiscoveryService(db, log, moduleRepo, userModules, resolver, 0),
		votes:        NewVoteService(db, log, resourceRepo, moduleRepo, resourceVotes, moduleVotes),
		saved:        NewSavedListService(db, log, resourceRepo, moduleRepo, userResources, userModules),
		settings:     NewUserSettingsService(db, log, settingsRepo),
	}
}

func TestResourceLifecycle(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, h.tx, "Author")
	subj := testutil.SeedSubject(t, h.tx, "math")
	grade := testutil.SeedGrade(t, h.tx, "grade-5")

	created, err := h.resourceSvc.Create(ctx, h.tx, user.ID, CreateResourceInput{
		Title:     "Lifecycle Resource",
		SubjectID: subj.ID,
		GradeID:   grade.ID,
		TagNames:  []string{"algebra", "drills"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A freshly created resource carries no votes and is not liked.
	view, err := h.resourceDisc.Get(ctx, h.tx, user.ID, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view.VoteCount != 0 || view.IsLikedByUser {
		t.Fatalf("fresh resource must have zero votes: %+v", view)
	}
	if len(view.Tags) != 2 {
		t.Fatalf("expected 2 tags on created resource, got %+v", view.Tags)
	}
	if view.UserDisplayName != "Author" {
		t.Fatalf("creator display name not resolved: %q", view.UserDisplayName)
	}

	// Duplicate title rejected, case-insensitively.
	_, err = h.resourceSvc.Create(ctx, h.tx, user.ID, CreateResourceInput{
		Title:     "LIFECYCLE resource",
		SubjectID: subj.ID,
		GradeID:   grade.ID,
	})
	if err == nil {
		t.Fatalf("duplicate title must be rejected")
	}
	if status, code := apierr.StatusOf(err); status != 409 || code != "duplicate_title" {
		t.Fatalf("expected 409 duplicate_title, got %d %s", status, code)
	}

	// Vote, save, then delete and verify the cascade.
	voter := testutil.SeedUser(t, h.tx, "Voter")
	if err := h.votes.UpvoteResource(ctx, h.tx, voter.ID, created.ID); err != nil {
		t.Fatalf("UpvoteResource: %v", err)
	}
	if err := h.saved.SaveResource(ctx, h.tx, voter.ID, created.ID); err != nil {
		t.Fatalf("SaveResource: %v", err)
	}

	if err := h.resourceSvc.Delete(ctx, h.tx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := h.resourceDisc.Get(ctx, h.tx, user.ID, created.ID); err == nil {
		t.Fatalf("deleted resource must not be fetchable")
	}
	for _, table := range []interface{}{&domain.ResourceTag{}, &domain.ResourceVote{}, &domain.UserResource{}} {
		var n int64
		if err := h.tx.Model(table).Where("resource_id = ?", created.ID).Count(&n).Error; err != nil {
			t.Fatalf("count cascade rows: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected cascade to clear %T rows, found %d", table, n)
		}
	}
}

func TestModuleLifecycleWithMappings(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, h.tx, "Curator")
	subj := testutil.SeedSubject(t, h.tx, "science")
	grade := testutil.SeedGrade(t, h.tx, "grade-7")

	resA, err := h.resourceSvc.Create(ctx, h.tx, user.ID, CreateResourceInput{
		Title: "Module Member A", SubjectID: subj.ID, GradeID: grade.ID,
	})
	if err != nil {
		t.Fatalf("create resource A: %v", err)
	}
	resB, err := h.resourceSvc.Create(ctx, h.tx, user.ID, CreateResourceInput{
		Title: "Module Member B", SubjectID: subj.ID, GradeID: grade.ID,
	})
	if err != nil {
		t.Fatalf("create resource B: %v", err)
	}

	mod, err := h.moduleSvc.Create(ctx, h.tx, user.ID, CreateModuleInput{
		Title:       "Curated Unit",
		SubjectID:   subj.ID,
		GradeID:     grade.ID,
		ResourceIDs: []uuid.UUID{resA.ID, resB.ID},
	})
	if err != nil {
		t.Fatalf("create module: %v", err)
	}

	view, err := h.moduleDisc.Get(ctx, h.tx, user.ID, mod.ID)
	if err != nil {
		t.Fatalf("Get module: %v", err)
	}
	if view.ResourceCount != 2 {
		t.Fatalf("expected resource count 2, got %d", view.ResourceCount)
	}
	if view.VoteCount != 0 || view.IsLikedByUser {
		t.Fatalf("fresh module must have zero votes: %+v", view)
	}

	// Linking an unknown resource is a validation error.
	_, err = h.moduleSvc.Create(ctx, h.tx, user.ID, CreateModuleInput{
		Title:       "Broken Unit",
		SubjectID:   subj.ID,
		GradeID:     grade.ID,
		ResourceIDs: []uuid.UUID{uuid.New()},
	})
	if err == nil {
		t.Fatalf("unknown resource id must be rejected")
	}
	if status, _ := apierr.StatusOf(err); status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}

	// Shrink membership; a repeated id collapses to one link instead of
	// tripping the existence check.
	if err := h.moduleSvc.SetResources(ctx, h.tx, mod.ID, []uuid.UUID{resA.ID, resA.ID}); err != nil {
		t.Fatalf("SetResources: %v", err)
	}
	view, err = h.moduleDisc.Get(ctx, h.tx, user.ID, mod.ID)
	if err != nil {
		t.Fatalf("Get module (after shrink): %v", err)
	}
	if view.ResourceCount != 1 {
		t.Fatalf("expected resource count 1 after shrink, got %d", view.ResourceCount)
	}

	if err := h.moduleSvc.Delete(ctx, h.tx, mod.ID); err != nil {
		t.Fatalf("Delete module: %v", err)
	}
	var n int64
	if err := h.tx.Model(&domain.ResourceModuleMapping{}).Where("learning_module_id = ?", mod.ID).Count(&n).Error; err != nil {
		t.Fatalf("count mappings: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected mappings cleared on module delete, found %d", n)
	}

	// The member resources survive the module delete.
	left, err := h.resources.GetByIDs(ctx, h.tx, []uuid.UUID{resA.ID, resB.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("module delete must not remove member resources, got %d", len(left))
	}
}

func TestSavedListConflict(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, h.tx, "Saver")
	creator := testutil.SeedUser(t, h.tx, "Creator")
	subj := testutil.SeedSubject(t, h.tx, "reading")
	grade := testutil.SeedGrade(t, h.tx, "grade-1")

	res, err := h.resourceSvc.Create(ctx, h.tx, creator.ID, CreateResourceInput{
		Title: "Conflict Target", SubjectID: subj.ID, GradeID: grade.ID,
	})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}

	if err := h.saved.SaveResource(ctx, h.tx, user.ID, res.ID); err != nil {
		t.Fatalf("SaveResource: %v", err)
	}
	err = h.saved.SaveResource(ctx, h.tx, user.ID, res.ID)
	if err == nil {
		t.Fatalf("duplicate save must conflict")
	}
	if status, code := apierr.StatusOf(err); status != 409 || code != "already_saved" {
		t.Fatalf("expected 409 already_saved, got %d %s", status, code)
	}

	// Unsave twice: second is a silent no-op.
	if err := h.saved.UnsaveResource(ctx, h.tx, user.ID, res.ID); err != nil {
		t.Fatalf("UnsaveResource: %v", err)
	}
	if err := h.saved.UnsaveResource(ctx, h.tx, user.ID, res.ID); err != nil {
		t.Fatalf("UnsaveResource (repeat): %v", err)
	}
}

func TestUserSettingsRoundTrip(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, h.tx, "Settings Owner")
	subj := testutil.SeedSubject(t, h.tx, "math")
	grade := testutil.SeedGrade(t, h.tx, "grade-5")

	in := discovery.FilterSpec{
		SubjectIDs: []uuid.UUID{subj.ID},
		GradeIDs:   []uuid.UUID{grade.ID},
	}
	if err := h.settings.Persist(ctx, h.tx, user.ID, domain.EntityTypeResource, in); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	out, err := h.settings.Fetch(ctx, h.tx, user.ID, domain.EntityTypeResource)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(out.SubjectIDs) != 1 || out.SubjectIDs[0] != subj.ID {
		t.Fatalf("subject ids did not round-trip: %+v", out)
	}
	if len(out.GradeIDs) != 1 || out.GradeIDs[0] != grade.ID {
		t.Fatalf("grade ids did not round-trip: %+v", out)
	}

	// Unknown entity type rejected.
	if err := h.settings.Persist(ctx, h.tx, user.ID, "course", in); err == nil {
		t.Fatalf("unknown entity type must be rejected")
	}

	// Never-saved user gets the zero filter, not an error.
	other := testutil.SeedUser(t, h.tx, "Fresh User")
	out, err = h.settings.Fetch(ctx, h.tx, other.ID, domain.EntityTypeLearningModule)
	if err != nil {
		t.Fatalf("Fetch (fresh): %v", err)
	}
	if out.HasConstraints() {
		t.Fatalf("fresh user settings must be unconstrained, got %+v", out)
	}
}
