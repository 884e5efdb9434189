package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos"
	"github.com/lokalhub/lokalhub-backend/internal/data/uow"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

// ImportDocument is the YAML shape accepted by ImportLabels:
//
//	labels:
//	  - key: greeting
//	    description: shown on the landing page
//	    translations:
//	      en: Hello
//	      tr: Merhaba
type ImportDocument struct {
	Labels []ImportLabel `yaml:"labels"`
}

type ImportLabel struct {
	Key          string            `yaml:"key"`
	Description  string            `yaml:"description"`
	Translations map[string]string `yaml:"translations"`
}

// ImportResult reports what the bulk unit of work did.
type ImportResult struct {
	LabelsCreated       int
	TranslationsCreated int
	TranslationsUpdated int
}

type ImportService interface {
	ImportLabels(ctx context.Context, actingUserID int64, projectUID uuid.UUID, data []byte) (*ImportResult, error)
}

type importService struct {
	uow          *uow.LabelUOW
	projects     repos.ProjectRepo
	labels       repos.LabelRepo
	translations repos.LabelTranslationRepo
	log          *logger.Logger
}

func NewImportService(
	labelUOW *uow.LabelUOW,
	projects repos.ProjectRepo,
	labels repos.LabelRepo,
	translations repos.LabelTranslationRepo,
	baseLog *logger.Logger,
) ImportService {
	return &importService{
		uow:          labelUOW,
		projects:     projects,
		labels:       labels,
		translations: translations,
		log:          baseLog.With("service", "ImportService"),
	}
}

// ImportLabels parses a YAML label document and applies it as one bulk unit
// of work: unknown keys become new labels with their translations, known
// keys get missing translations inserted and existing ones overwritten.
func (s *importService) ImportLabels(ctx context.Context, actingUserID int64, projectUID uuid.UUID, data []byte) (*ImportResult, error) {
	var doc ImportDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apierr.New(apierr.CodeInvalidArgument, fmt.Errorf("parse import document: %w", err))
	}
	if len(doc.Labels) == 0 {
		return nil, apierr.Newf(apierr.CodeInvalidArgument, "import document has no labels")
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

	var (
		newLabels []*domain.Label
		toInsert  []*domain.LabelTranslation
		toUpdate  []*domain.LabelTranslation
	)

	for _, entry := range doc.Labels {
		if entry.Key == "" {
			return nil, apierr.Newf(apierr.CodeInvalidArgument, "import document has a label without a key")
		}

		existing, err := s.labels.GetByProjectIDAndKey(ctx, nil, project.ID, entry.Key)
		if err != nil {
			return nil, err
		}

		if existing == nil {
			label := newLabelForProject(project, entry.Key, entry.Description)
			newLabels = append(newLabels, label)
			for iso, text := range entry.Translations {
				t := newTranslationForLabel(label, iso, text)
				t.LabelID = 0 // assigned after the label row is inserted
				toInsert = append(toInsert, t)
			}
			continue
		}

		for iso, text := range entry.Translations {
			current, err := s.translations.GetByLabelIDAndLanguage(ctx, nil, existing.ID, iso)
			if err != nil {
				return nil, err
			}
			if current == nil {
				toInsert = append(toInsert, newTranslationForLabel(existing, iso, text))
				continue
			}
			current.Translation = text
			toUpdate = append(toUpdate, current)
		}
	}

	if err := s.uow.CreateLabelsBulk(ctx, actingUserID, newLabels, toInsert, toUpdate); err != nil {
		return nil, err
	}

	return &ImportResult{
		LabelsCreated:       len(newLabels),
		TranslationsCreated: len(toInsert),
		TranslationsUpdated: len(toUpdate),
	}, nil
}
