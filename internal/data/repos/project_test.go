package repos

import (
	"context"
	"testing"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos/testutil"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
)

func TestProjectRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "projectrepo@example.com")

	repo := NewProjectRepo(db, testutil.Logger(t))

	project := &domain.Project{
		OrganizationID:   org.ID,
		OrganizationUID:  org.UID,
		OrganizationName: org.Name,
		Name:             "Website",
		Slug:             "website",
		IsActive:         true,
	}
	if err := repo.Create(ctx, tx, user.ID, project); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByOrganizationIDAndSlug(ctx, tx, org.ID, "website")
	if err != nil {
		t.Fatalf("GetByOrganizationIDAndSlug: %v", err)
	}
	if got == nil || got.ID != project.ID {
		t.Fatalf("GetByOrganizationIDAndSlug: unexpected result: %+v", got)
	}

	exists, err := repo.SlugExists(ctx, tx, org.ID, "website")
	if err != nil {
		t.Fatalf("SlugExists: %v", err)
	}
	if !exists {
		t.Fatalf("SlugExists: expected true")
	}

	count, err := repo.CountByOrganizationID(ctx, tx, org.ID)
	if err != nil {
		t.Fatalf("CountByOrganizationID: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByOrganizationID: expected 1, got %d", count)
	}
}

func TestProjectRepo_SetActiveKeepsCounters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "setactive@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")
	project.LabelCount = 5
	if err := tx.Save(project).Error; err != nil {
		t.Fatalf("set counter: %v", err)
	}

	repo := NewProjectRepo(db, testutil.Logger(t))

	if err := repo.SetActive(ctx, tx, user.ID, project.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.IsActive {
		t.Fatalf("SetActive: expected inactive")
	}
	if got.LabelCount != 5 {
		t.Fatalf("SetActive: counters must be untouched, got %d", got.LabelCount)
	}

	revs, err := repo.Revisions(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("Revisions: activation toggle must append one revision, got %d", len(revs))
	}
}
