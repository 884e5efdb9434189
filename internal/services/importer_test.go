package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
)

const importDoc = `
labels:
  - key: greeting
    description: shown on the landing page
    translations:
      en: Hello
      tr: Merhaba
  - key: farewell
    translations:
      en: Bye
`

func TestImportService_ImportLabels(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	res, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte(importDoc))
	if err != nil {
		t.Fatalf("ImportLabels: %v", err)
	}
	if res.LabelsCreated != 2 || res.TranslationsCreated != 3 || res.TranslationsUpdated != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	greeting, err := f.labels.GetByProjectIDAndKey(ctx, nil, f.project.ID, "greeting")
	if err != nil || greeting == nil {
		t.Fatalf("greeting: %v", err)
	}
	if greeting.Description != "shown on the landing page" {
		t.Fatalf("greeting description: %q", greeting.Description)
	}
	if greeting.LabelTranslationCount != 2 {
		t.Fatalf("greeting translation count: expected 2, got %d", greeting.LabelTranslationCount)
	}
	en, err := f.translations.GetByLabelIDAndLanguage(ctx, nil, greeting.ID, "en")
	if err != nil || en == nil {
		t.Fatalf("greeting en: %v", err)
	}
	if en.Translation != "Hello" {
		t.Fatalf("greeting en: expected Hello, got %q", en.Translation)
	}

	org, err := f.orgs.GetByID(ctx, nil, f.org.ID)
	if err != nil || org == nil {
		t.Fatalf("reload org: %v", err)
	}
	if org.LabelCount != 2 || org.LabelTranslationCount != 3 {
		t.Fatalf("org counters: expected 2/3, got %d/%d", org.LabelCount, org.LabelTranslationCount)
	}
}

// Re-importing a document overwrites texts for languages that already exist
// and inserts the rest, without growing the label count.
func TestImportService_ReimportUpdatesExisting(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte(importDoc)); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := `
labels:
  - key: greeting
    translations:
      en: Hi
      de: Hallo
`
	res, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte(second))
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if res.LabelsCreated != 0 || res.TranslationsCreated != 1 || res.TranslationsUpdated != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}

	greeting, err := f.labels.GetByProjectIDAndKey(ctx, nil, f.project.ID, "greeting")
	if err != nil || greeting == nil {
		t.Fatalf("greeting: %v", err)
	}
	if greeting.LabelTranslationCount != 3 {
		t.Fatalf("greeting translation count: expected 3, got %d", greeting.LabelTranslationCount)
	}
	en, err := f.translations.GetByLabelIDAndLanguage(ctx, nil, greeting.ID, "en")
	if err != nil || en == nil {
		t.Fatalf("greeting en: %v", err)
	}
	if en.Translation != "Hi" {
		t.Fatalf("greeting en: expected Hi, got %q", en.Translation)
	}

	org, err := f.orgs.GetByID(ctx, nil, f.org.ID)
	if err != nil || org == nil {
		t.Fatalf("reload org: %v", err)
	}
	if org.LabelCount != 2 || org.LabelTranslationCount != 4 {
		t.Fatalf("org counters: expected 2/4, got %d/%d", org.LabelCount, org.LabelTranslationCount)
	}
}

func TestImportService_ImportValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	if _, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte("labels: [")); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("malformed yaml: expected invalid_argument, got %v", err)
	}
	if _, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte("labels: []")); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("empty document: expected invalid_argument, got %v", err)
	}
	if _, err := f.importSvc.ImportLabels(ctx, f.user.ID, uuid.New(), []byte(importDoc)); !apierr.IsCode(err, apierr.CodeNotFound) {
		t.Fatalf("unknown project: expected not_found, got %v", err)
	}
	noKey := `
labels:
  - description: keyless
`
	if _, err := f.importSvc.ImportLabels(ctx, f.user.ID, f.project.UID, []byte(noKey)); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("missing key: expected invalid_argument, got %v", err)
	}
}
