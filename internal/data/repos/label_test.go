package repos

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos/testutil"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
)

func TestLabelRepo_CreateAndLookups(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "labelrepo@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")

	repo := NewLabelRepo(db, testutil.Logger(t))

	label := &domain.Label{
		OrganizationID:   org.ID,
		OrganizationUID:  org.UID,
		OrganizationName: org.Name,
		ProjectID:        project.ID,
		ProjectUID:       project.UID,
		ProjectName:      project.Name,
		Key:              "greeting",
		Name:             "greeting",
		IsActive:         true,
	}
	if err := repo.Create(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if label.ID == 0 {
		t.Fatalf("Create: expected assigned id")
	}
	if label.UID == uuid.Nil {
		t.Fatalf("Create: expected assigned uid")
	}

	got, err := repo.GetByID(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Key != "greeting" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	got, err = repo.GetByUID(ctx, tx, label.UID)
	if err != nil {
		t.Fatalf("GetByUID: %v", err)
	}
	if got == nil || got.ID != label.ID {
		t.Fatalf("GetByUID: unexpected result: %+v", got)
	}

	got, err = repo.GetByProjectIDAndKey(ctx, tx, project.ID, "greeting")
	if err != nil {
		t.Fatalf("GetByProjectIDAndKey: %v", err)
	}
	if got == nil || got.ID != label.ID {
		t.Fatalf("GetByProjectIDAndKey: unexpected result: %+v", got)
	}

	missing, err := repo.GetByProjectIDAndKey(ctx, tx, project.ID, "farewell")
	if err != nil {
		t.Fatalf("GetByProjectIDAndKey (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByProjectIDAndKey (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.KeyExists(ctx, tx, project.ID, "greeting")
	if err != nil {
		t.Fatalf("KeyExists: %v", err)
	}
	if !exists {
		t.Fatalf("KeyExists: expected true")
	}

	count, err := repo.CountByProjectID(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("CountByProjectID: %v", err)
	}
	if count != 1 {
		t.Fatalf("CountByProjectID: expected 1, got %d", count)
	}
}

func TestLabelRepo_ListPaging(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	project := testutil.SeedProject(t, ctx, tx, org, "website")
	for _, key := range []string{"a", "b", "c", "d"} {
		testutil.SeedLabel(t, ctx, tx, project, key)
	}

	repo := NewLabelRepo(db, testutil.Logger(t))

	page, err := repo.ListByProjectID(ctx, tx, project.ID, ListQuery{Skip: 1, Take: 2, OrderBy: "key"})
	if err != nil {
		t.Fatalf("ListByProjectID: %v", err)
	}
	if len(page) != 2 || page[0].Key != "b" || page[1].Key != "c" {
		t.Fatalf("ListByProjectID: unexpected page: %+v", page)
	}

	desc, err := repo.ListByProjectID(ctx, tx, project.ID, ListQuery{Take: 1, OrderBy: "key", Desc: true})
	if err != nil {
		t.Fatalf("ListByProjectID (desc): %v", err)
	}
	if len(desc) != 1 || desc[0].Key != "d" {
		t.Fatalf("ListByProjectID (desc): unexpected page: %+v", desc)
	}
}

func TestLabelRepo_RevisionsAppendOnly(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "revisions@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")

	repo := NewLabelRepo(db, testutil.Logger(t))

	label := testutil.SeedLabel(t, ctx, tx, project, "greeting")
	// Seeding bypasses the repo, so revisions start with the first repo
	// mutation.
	label.Description = "v1"
	if err := repo.Update(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Update v1: %v", err)
	}
	label.Description = "v2"
	if err := repo.Update(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Update v2: %v", err)
	}
	label.Description = "v3"
	if err := repo.Update(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Update v3: %v", err)
	}

	revs, err := repo.Revisions(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(revs) != 3 {
		t.Fatalf("Revisions: expected 3, got %d", len(revs))
	}
	// Each revision captures the state immediately before its mutation.
	wantDescriptions := []string{"", "v1", "v2"}
	for i, rev := range revs {
		if rev.Sequence != int64(i+1) {
			t.Fatalf("Revisions: expected sequence %d, got %d", i+1, rev.Sequence)
		}
		if rev.ActingUserID != user.ID {
			t.Fatalf("Revisions: expected acting user %d, got %d", user.ID, rev.ActingUserID)
		}
		var snap domain.Label
		if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
			t.Fatalf("Revisions: decode snapshot %d: %v", rev.Sequence, err)
		}
		if snap.Description != wantDescriptions[i] {
			t.Fatalf("Revisions: sequence %d expected description %q, got %q", rev.Sequence, wantDescriptions[i], snap.Description)
		}
	}
}

func TestLabelRepo_DeleteRecordsFinalRevision(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "delete@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")
	label := testutil.SeedLabel(t, ctx, tx, project, "greeting")

	repo := NewLabelRepo(db, testutil.Logger(t))

	if err := repo.Delete(ctx, tx, user.ID, label.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got != nil {
		t.Fatalf("GetByID after delete: expected nil, got %+v", got)
	}

	revs, err := repo.Revisions(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("Revisions after delete: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("Revisions after delete: expected 1, got %d", len(revs))
	}
	var snap domain.Label
	if err := json.Unmarshal(revs[0].Snapshot, &snap); err != nil {
		t.Fatalf("decode final revision: %v", err)
	}
	if snap.Key != "greeting" {
		t.Fatalf("final revision: expected last live state, got %+v", snap)
	}

	if err := repo.Delete(ctx, tx, user.ID, label.ID); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("Delete (already deleted): expected not_found, got %v", err)
	}
}

func TestLabelRepo_RestoreRevision(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "restore@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")

	repo := NewLabelRepo(db, testutil.Logger(t))

	label := &domain.Label{
		OrganizationID:   org.ID,
		OrganizationUID:  org.UID,
		OrganizationName: org.Name,
		ProjectID:        project.ID,
		ProjectUID:       project.UID,
		ProjectName:      project.Name,
		Key:              "greeting",
		Name:             "greeting",
		Description:      "v1",
		IsActive:         true,
	}
	if err := repo.Create(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Create: %v", err)
	}
	label.Description = "v2"
	if err := repo.Update(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Update v2: %v", err)
	}
	label.Description = "v3"
	if err := repo.Update(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Update v3: %v", err)
	}
	// Sequences now: 1 = created state (v1), 2 = pre-update v1, 3 = pre-update v2.

	label.LabelTranslationCount = 7 // live counter, must survive restore
	if err := tx.Save(label).Error; err != nil {
		t.Fatalf("set counter: %v", err)
	}

	if err := repo.RestoreRevision(ctx, tx, user.ID, label.ID, 3); err != nil {
		t.Fatalf("RestoreRevision: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("GetByID after restore: %v", err)
	}
	if got.Description != "v2" {
		t.Fatalf("restore: expected description v2, got %q", got.Description)
	}
	if got.UID != label.UID || got.ID != label.ID {
		t.Fatalf("restore: identity changed: %+v", got)
	}
	if got.LabelTranslationCount != 7 {
		t.Fatalf("restore: live counter overwritten, got %d", got.LabelTranslationCount)
	}

	revs, err := repo.Revisions(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("Revisions after restore: %v", err)
	}
	if len(revs) != 4 {
		t.Fatalf("Revisions after restore: expected 4, got %d", len(revs))
	}
	var snap domain.Label
	if err := json.Unmarshal(revs[3].Snapshot, &snap); err != nil {
		t.Fatalf("decode forward revision: %v", err)
	}
	if snap.Description != "v3" {
		t.Fatalf("forward revision: expected pre-restore state v3, got %q", snap.Description)
	}
}

func TestLabelRepo_RestoreMissingRevisionFailsClosed(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	org := testutil.SeedOrganization(t, ctx, tx, "acme")
	user := testutil.SeedUser(t, ctx, tx, org, "restoremissing@example.com")
	project := testutil.SeedProject(t, ctx, tx, org, "website")

	repo := NewLabelRepo(db, testutil.Logger(t))

	label := &domain.Label{
		OrganizationID: org.ID,
		ProjectID:      project.ID,
		Key:            "greeting",
		Name:           "greeting",
		Description:    "v1",
		IsActive:       true,
	}
	if err := repo.Create(ctx, tx, user.ID, label); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.RestoreRevision(ctx, tx, user.ID, label.ID, 42)
	if !apierr.IsCode(err, apierr.CodeRevisionNotFound) {
		t.Fatalf("RestoreRevision: expected revision_not_found, got %v", err)
	}

	got, err := repo.GetByID(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "v1" {
		t.Fatalf("failed restore must not mutate the entity: %+v", got)
	}
	revs, err := repo.Revisions(ctx, tx, label.ID)
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("failed restore must not append revisions: got %d", len(revs))
	}

	err = repo.RestoreRevision(ctx, tx, user.ID, 99999, 1)
	if !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("RestoreRevision (missing entity): expected not_found, got %v", err)
	}
}
