package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos"
	"github.com/lokalhub/lokalhub-backend/internal/data/uow"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

// LabelService fronts the label unit of work with the business checks the
// unit of work itself does not make: parents must exist and be active,
// unique keys are pre-checked so a conflict surfaces as a business failure
// rather than a constraint error.
type LabelService interface {
	CreateLabel(ctx context.Context, actingUserID int64, projectUID uuid.UUID, key, description string) (*domain.Label, error)
	CloneLabel(ctx context.Context, actingUserID int64, sourceLabelUID uuid.UUID, newKey, description string) (*domain.Label, error)
	DeleteLabel(ctx context.Context, actingUserID int64, labelUID uuid.UUID) error
	ChangeLabelActivation(ctx context.Context, actingUserID int64, labelUID uuid.UUID) error
	CreateTranslation(ctx context.Context, actingUserID int64, labelUID uuid.UUID, isoCode2, text string) (*domain.LabelTranslation, error)
	DeleteTranslation(ctx context.Context, actingUserID int64, translationUID uuid.UUID) error
	LabelRevisions(ctx context.Context, labelUID uuid.UUID) ([]*domain.Revision, error)
	RestoreLabelRevision(ctx context.Context, actingUserID int64, labelUID uuid.UUID, sequence int64) error
	TranslationRevisions(ctx context.Context, translationUID uuid.UUID) ([]*domain.Revision, error)
	RestoreTranslationRevision(ctx context.Context, actingUserID int64, translationUID uuid.UUID, sequence int64) error
}

type labelService struct {
	uow          *uow.LabelUOW
	projects     repos.ProjectRepo
	labels       repos.LabelRepo
	translations repos.LabelTranslationRepo
	log          *logger.Logger
}

func NewLabelService(
	labelUOW *uow.LabelUOW,
	projects repos.ProjectRepo,
	labels repos.LabelRepo,
	translations repos.LabelTranslationRepo,
	baseLog *logger.Logger,
) LabelService {
	return &labelService{
		uow:          labelUOW,
		projects:     projects,
		labels:       labels,
		translations: translations,
		log:          baseLog.With("service", "LabelService"),
	}
}

func (s *labelService) CreateLabel(ctx context.Context, actingUserID int64, projectUID uuid.UUID, key, description string) (*domain.Label, error) {
	if key == "" {
		return nil, apierr.Newf(apierr.CodeInvalidArgument, "label key must not be empty")
	}
	project, err := s.projects.GetByUID(ctx, nil, projectUID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierr.Newf(apierr.CodeNotFound, "project %s not found", projectUID)
	}
	if !project.IsActive {
		return nil, apierr.Newf(apierr.CodeParentInactive, "project %s is not active", projectUID)
	}
	exists, err := s.labels.KeyExists(ctx, nil, project.ID, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Newf(apierr.CodeAlreadyExists, "label %q already exists in project %s", key, projectUID)
	}

	label := newLabelForProject(project, key, description)
	if err := s.uow.CreateLabel(ctx, actingUserID, label); err != nil {
		return nil, err
	}
	return label, nil
}

func (s *labelService) CloneLabel(ctx context.Context, actingUserID int64, sourceLabelUID uuid.UUID, newKey, description string) (*domain.Label, error) {
	if newKey == "" {
		return nil, apierr.Newf(apierr.CodeInvalidArgument, "label key must not be empty")
	}
	source, err := s.labels.GetByUID(ctx, nil, sourceLabelUID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, apierr.Newf(apierr.CodeNotFound, "label %s not found", sourceLabelUID)
	}
	exists, err := s.labels.KeyExists(ctx, nil, source.ProjectID, newKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Newf(apierr.CodeAlreadyExists, "label %q already exists in project %d", newKey, source.ProjectID)
	}

	newLabel := &domain.Label{
		OrganizationID:   source.OrganizationID,
		OrganizationUID:  source.OrganizationUID,
		OrganizationName: source.OrganizationName,
		ProjectID:        source.ProjectID,
		ProjectUID:       source.ProjectUID,
		ProjectName:      source.ProjectName,
		Key:              newKey,
		Name:             newKey,
		Description:      description,
		IsActive:         true,
	}
	if err := s.uow.CloneLabel(ctx, actingUserID, source.ID, newLabel); err != nil {
		return nil, err
	}
	return newLabel, nil
}

func (s *labelService) DeleteLabel(ctx context.Context, actingUserID int64, labelUID uuid.UUID) error {
	label, err := s.labels.GetByUID(ctx, nil, labelUID)
	if err != nil {
		return err
	}
	if label == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %s not found", labelUID)
	}
	return s.uow.DeleteLabel(ctx, actingUserID, label)
}

func (s *labelService) ChangeLabelActivation(ctx context.Context, actingUserID int64, labelUID uuid.UUID) error {
	label, err := s.labels.GetByUID(ctx, nil, labelUID)
	if err != nil {
		return err
	}
	if label == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %s not found", labelUID)
	}
	return s.uow.SetLabelActive(ctx, actingUserID, label.ID, !label.IsActive)
}

func (s *labelService) CreateTranslation(ctx context.Context, actingUserID int64, labelUID uuid.UUID, isoCode2, text string) (*domain.LabelTranslation, error) {
	if isoCode2 == "" {
		return nil, apierr.Newf(apierr.CodeInvalidArgument, "language code must not be empty")
	}
	label, err := s.labels.GetByUID(ctx, nil, labelUID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, apierr.Newf(apierr.CodeNotFound, "label %s not found", labelUID)
	}
	if !label.IsActive {
		return nil, apierr.Newf(apierr.CodeParentInactive, "label %s is not active", labelUID)
	}
	exists, err := s.translations.LanguageExists(ctx, nil, label.ID, isoCode2)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Newf(apierr.CodeAlreadyExists, "label %s already has a %q translation", labelUID, isoCode2)
	}

	translation := newTranslationForLabel(label, isoCode2, text)
	if err := s.uow.CreateTranslation(ctx, actingUserID, translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func (s *labelService) DeleteTranslation(ctx context.Context, actingUserID int64, translationUID uuid.UUID) error {
	translation, err := s.translations.GetByUID(ctx, nil, translationUID)
	if err != nil {
		return err
	}
	if translation == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %s not found", translationUID)
	}
	return s.uow.DeleteTranslation(ctx, actingUserID, translation)
}

func (s *labelService) LabelRevisions(ctx context.Context, labelUID uuid.UUID) ([]*domain.Revision, error) {
	label, err := s.labels.GetByUID(ctx, nil, labelUID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, apierr.Newf(apierr.CodeNotFound, "label %s not found", labelUID)
	}
	return s.labels.Revisions(ctx, nil, label.ID)
}

func (s *labelService) RestoreLabelRevision(ctx context.Context, actingUserID int64, labelUID uuid.UUID, sequence int64) error {
	label, err := s.labels.GetByUID(ctx, nil, labelUID)
	if err != nil {
		return err
	}
	if label == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %s not found", labelUID)
	}
	return s.uow.RestoreLabelRevision(ctx, actingUserID, label.ID, sequence)
}

func (s *labelService) TranslationRevisions(ctx context.Context, translationUID uuid.UUID) ([]*domain.Revision, error) {
	translation, err := s.translations.GetByUID(ctx, nil, translationUID)
	if err != nil {
		return nil, err
	}
	if translation == nil {
		return nil, apierr.Newf(apierr.CodeNotFound, "label translation %s not found", translationUID)
	}
	return s.translations.Revisions(ctx, nil, translation.ID)
}

func (s *labelService) RestoreTranslationRevision(ctx context.Context, actingUserID int64, translationUID uuid.UUID, sequence int64) error {
	translation, err := s.translations.GetByUID(ctx, nil, translationUID)
	if err != nil {
		return err
	}
	if translation == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %s not found", translationUID)
	}
	return s.uow.RestoreTranslationRevision(ctx, actingUserID, translation.ID, sequence)
}

// newLabelForProject denormalizes the project's identifying fields onto the
// label at creation time.
func newLabelForProject(project *domain.Project, key, description string) *domain.Label {
	return &domain.Label{
		OrganizationID:   project.OrganizationID,
		OrganizationUID:  project.OrganizationUID,
		OrganizationName: project.OrganizationName,
		ProjectID:        project.ID,
		ProjectUID:       project.UID,
		ProjectName:      project.Name,
		Key:              key,
		Name:             key,
		Description:      description,
		IsActive:         true,
	}
}

func newTranslationForLabel(label *domain.Label, isoCode2, text string) *domain.LabelTranslation {
	return &domain.LabelTranslation{
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
}
