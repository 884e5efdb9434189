package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/domain"
)

func SeedOrganization(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Organization {
	tb.Helper()
	org := &domain.Organization{
		UID:      uuid.New(),
		Name:     name,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(org).Error; err != nil {
		tb.Fatalf("seed organization: %v", err)
	}
	return org
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, org *domain.Organization, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		UID:              uuid.New(),
		OrganizationID:   org.ID,
		OrganizationUID:  org.UID,
		OrganizationName: org.Name,
		Email:            email,
		FirstName:        "A",
		LastName:         "B",
		IsActive:         true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, org *domain.Organization, slug string) *domain.Project {
	tb.Helper()
	p := &domain.Project{
		UID:              uuid.New(),
		OrganizationID:   org.ID,
		OrganizationUID:  org.UID,
		OrganizationName: org.Name,
		Name:             slug,
		Slug:             slug,
		IsActive:         true,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedLabel(tb testing.TB, ctx context.Context, tx *gorm.DB, project *domain.Project, key string) *domain.Label {
	tb.Helper()
	l := &domain.Label{
		UID:              uuid.New(),
		OrganizationID:   project.OrganizationID,
		OrganizationUID:  project.OrganizationUID,
		OrganizationName: project.OrganizationName,
		ProjectID:        project.ID,
		ProjectUID:       project.UID,
		ProjectName:      project.Name,
		Key:              key,
		Name:             key,
		IsActive:         true,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed label: %v", err)
	}
	return l
}

func SeedTranslation(tb testing.TB, ctx context.Context, tx *gorm.DB, label *domain.Label, isoCode2, text string) *domain.LabelTranslation {
	tb.Helper()
	t := &domain.LabelTranslation{
		UID:              uuid.New(),
		OrganizationID:   label.OrganizationID,
		OrganizationUID:  label.OrganizationUID,
		OrganizationName: label.OrganizationName,
		ProjectID:        label.ProjectID,
		ProjectUID:       label.ProjectUID,
		ProjectName:      label.ProjectName,
		LabelID:          label.ID,
		LabelUID:         label.UID,
		LabelKey:         label.Key,
		LanguageIsoCode2: isoCode2,
		Translation:      text,
		IsActive:         true,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed translation: %v", err)
	}
	return t
}
