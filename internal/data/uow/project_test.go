package uow

import (
	"context"
	"testing"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos"
	"github.com/lokalhub/lokalhub-backend/internal/data/repos/testutil"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
)

func newProjectUOW(t *testing.T, f *labelFixture) *ProjectUOW {
	t.Helper()
	return NewProjectUOW(f.uow.ex, f.orgs, f.users, f.projects, f.labels, f.translations, testutil.Logger(t))
}

func (f *labelFixture) newProject(slug string) *domain.Project {
	return &domain.Project{
		OrganizationID:   f.org.ID,
		OrganizationUID:  f.org.UID,
		OrganizationName: f.org.Name,
		Name:             slug,
		Slug:             slug,
		IsActive:         true,
	}
}

func TestProjectUOW_CreateAndDelete(t *testing.T) {
	f := newLabelFixture(t)
	u := newProjectUOW(t, f)
	ctx := context.Background()

	project := f.newProject("mobile-app")
	if err := u.CreateProject(ctx, f.user.ID, project); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	f.reload(t)
	// The fixture project is seeded below the unit-of-work layer, so only
	// this create moves the counter.
	if f.org.ProjectCount != 1 {
		t.Fatalf("org.ProjectCount: expected 1, got %d", f.org.ProjectCount)
	}

	if err := u.DeleteProject(ctx, f.user.ID, project); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	f.reload(t)
	if f.org.ProjectCount != 0 {
		t.Fatalf("org.ProjectCount: expected 0, got %d", f.org.ProjectCount)
	}
	gone, err := f.projects.GetByID(ctx, nil, project.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if gone != nil {
		t.Fatalf("deleted project still visible")
	}
}

func TestProjectUOW_CloneProject(t *testing.T) {
	f := newLabelFixture(t)
	u := newProjectUOW(t, f)
	ctx := context.Background()

	greeting := f.newLabel("greeting")
	if err := f.uow.CreateLabel(ctx, f.user.ID, greeting); err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}
	if err := f.uow.CreateTranslation(ctx, f.user.ID, f.newTranslation(greeting, "en", "Hello")); err != nil {
		t.Fatalf("CreateTranslation: %v", err)
	}
	if err := f.uow.CreateTranslation(ctx, f.user.ID, f.newTranslation(greeting, "tr", "Merhaba")); err != nil {
		t.Fatalf("CreateTranslation: %v", err)
	}
	farewell := f.newLabel("farewell")
	if err := f.uow.CreateLabel(ctx, f.user.ID, farewell); err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}

	clone := f.newProject("website-copy")
	if err := u.CloneProject(ctx, f.user.ID, f.project.ID, clone); err != nil {
		t.Fatalf("CloneProject: %v", err)
	}

	got, err := f.projects.GetByID(ctx, nil, clone.ID)
	if err != nil || got == nil {
		t.Fatalf("reload clone: %v", err)
	}
	if got.LabelCount != 2 || got.LabelTranslationCount != 2 {
		t.Fatalf("clone counters: expected 2/2, got %d/%d", got.LabelCount, got.LabelTranslationCount)
	}

	f.reload(t)
	if f.org.ProjectCount != 1 {
		t.Fatalf("org.ProjectCount: expected 1, got %d", f.org.ProjectCount)
	}
	if f.org.LabelCount != 4 || f.org.LabelTranslationCount != 4 {
		t.Fatalf("org counters: expected 4/4, got %d/%d", f.org.LabelCount, f.org.LabelTranslationCount)
	}
	if f.user.LabelCount != 4 || f.user.LabelTranslationCount != 4 {
		t.Fatalf("user counters: expected 4/4, got %d/%d", f.user.LabelCount, f.user.LabelTranslationCount)
	}

	copied, err := f.labels.ListByProjectID(ctx, nil, clone.ID, repos.ListQuery{OrderBy: "key"})
	if err != nil {
		t.Fatalf("list copied labels: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("expected 2 copied labels, got %d", len(copied))
	}
	for _, l := range copied {
		if l.ProjectID != clone.ID || l.ProjectUID != clone.UID {
			t.Fatalf("copied label %s not repointed at the clone", l.Key)
		}
		if l.UID == greeting.UID || l.UID == farewell.UID {
			t.Fatalf("copied label %s kept a source external id", l.Key)
		}
	}

	clonedGreeting, err := f.labels.GetByProjectIDAndKey(ctx, nil, clone.ID, "greeting")
	if err != nil || clonedGreeting == nil {
		t.Fatalf("cloned greeting: %v", err)
	}
	n, err := f.translations.CountByLabelID(ctx, nil, clonedGreeting.ID)
	if err != nil {
		t.Fatalf("count cloned translations: %v", err)
	}
	if n != 2 {
		t.Fatalf("cloned greeting translations: expected 2, got %d", n)
	}
}
