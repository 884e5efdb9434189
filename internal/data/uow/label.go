package uow

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos"
	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

// LabelUOW implements the label lifecycle. Every method runs all of its
// writes inside one Executor scope and leaves the rollup counters on
// organization, project, user and label equal to the live child counts at
// commit.
type LabelUOW struct {
	ex           *Executor
	orgs         repos.OrganizationRepo
	users        repos.UserRepo
	projects     repos.ProjectRepo
	labels       repos.LabelRepo
	translations repos.LabelTranslationRepo
	log          *logger.Logger
}

func NewLabelUOW(
	ex *Executor,
	orgs repos.OrganizationRepo,
	users repos.UserRepo,
	projects repos.ProjectRepo,
	labels repos.LabelRepo,
	translations repos.LabelTranslationRepo,
	baseLog *logger.Logger,
) *LabelUOW {
	return &LabelUOW{
		ex:           ex,
		orgs:         orgs,
		users:        users,
		projects:     projects,
		labels:       labels,
		translations: translations,
		log:          baseLog.With("uow", "LabelUOW"),
	}
}

func (u *LabelUOW) parents(ctx context.Context, tx *gorm.DB, organizationID, projectID, userID int64) (*domain.Organization, *domain.Project, *domain.User, error) {
	org, err := u.orgs.GetByID(ctx, tx, organizationID)
	if err != nil {
		return nil, nil, nil, err
	}
	if org == nil {
		return nil, nil, nil, apierr.Newf(apierr.CodeNotFound, "organization %d not found", organizationID)
	}
	project, err := u.projects.GetByID(ctx, tx, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	if project == nil {
		return nil, nil, nil, apierr.Newf(apierr.CodeNotFound, "project %d not found", projectID)
	}
	user, err := u.users.GetByID(ctx, tx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	if user == nil {
		return nil, nil, nil, apierr.Newf(apierr.CodeNotFound, "user %d not found", userID)
	}
	return org, project, user, nil
}

// CreateLabel inserts the label and bumps the label counters on its
// organization, project and the acting user.
func (u *LabelUOW) CreateLabel(ctx context.Context, actingUserID int64, label *domain.Label) error {
	return u.ex.Execute(ctx, "label.create", func(tx *gorm.DB) error {
		if err := u.labels.Create(ctx, tx, actingUserID, label); err != nil {
			return err
		}

		org, project, user, err := u.parents(ctx, tx, label.OrganizationID, label.ProjectID, actingUserID)
		if err != nil {
			return err
		}

		org.LabelCount++
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelCount++
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		user.LabelCount++
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// CreateLabelsBulk imports labels together with their translations.
// Translations in toInsert are matched to their label by LabelKey.
// Counter deltas are accumulated in memory and each ancestor row is
// written once, not once per child.
func (u *LabelUOW) CreateLabelsBulk(ctx context.Context, actingUserID int64, labels []*domain.Label, toInsert, toUpdate []*domain.LabelTranslation) error {
	if len(labels) == 0 && len(toInsert) == 0 && len(toUpdate) == 0 {
		return apierr.Newf(apierr.CodeInvalidArgument, "bulk create needs at least one label or translation")
	}

	var organizationID, projectID int64
	switch {
	case len(labels) > 0:
		organizationID, projectID = labels[0].OrganizationID, labels[0].ProjectID
	case len(toInsert) > 0:
		organizationID, projectID = toInsert[0].OrganizationID, toInsert[0].ProjectID
	default:
		organizationID, projectID = toUpdate[0].OrganizationID, toUpdate[0].ProjectID
	}

	return u.ex.Execute(ctx, "label.create_bulk", func(tx *gorm.DB) error {
		org, project, user, err := u.parents(ctx, tx, organizationID, projectID, actingUserID)
		if err != nil {
			return err
		}

		byKey := make(map[string][]*domain.LabelTranslation, len(labels))
		for _, t := range toInsert {
			byKey[t.LabelKey] = append(byKey[t.LabelKey], t)
		}

		newKeys := make(map[string]bool, len(labels))
		var translationDelta int64
		for _, label := range labels {
			newKeys[label.Key] = true
			own := byKey[label.Key]
			label.LabelTranslationCount = int64(len(own))
			if err := u.labels.Create(ctx, tx, actingUserID, label); err != nil {
				return err
			}
			for _, t := range own {
				t.LabelID = label.ID
				t.LabelUID = label.UID
				if err := u.translations.Create(ctx, tx, actingUserID, t); err != nil {
					return err
				}
				translationDelta++
			}
		}

		// Translations addressed at labels that already exist carry a
		// pre-set LabelID. Their label's own counter is bumped once per
		// label, not once per row.
		perLabel := make(map[int64]int64)
		for _, t := range toInsert {
			if newKeys[t.LabelKey] {
				continue
			}
			if err := u.translations.Create(ctx, tx, actingUserID, t); err != nil {
				return err
			}
			perLabel[t.LabelID]++
			translationDelta++
		}
		for labelID, n := range perLabel {
			label, err := u.labels.GetByID(ctx, tx, labelID)
			if err != nil {
				return err
			}
			if label == nil {
				return apierr.Newf(apierr.CodeNotFound, "label %d not found", labelID)
			}
			label.LabelTranslationCount += n
			if err := u.labels.Update(ctx, tx, actingUserID, label); err != nil {
				return err
			}
		}

		for _, t := range toUpdate {
			if err := u.translations.Update(ctx, tx, actingUserID, t); err != nil {
				return err
			}
		}

		labelDelta := int64(len(labels))
		if labelDelta == 0 && translationDelta == 0 {
			return nil
		}

		org.LabelCount += labelDelta
		org.LabelTranslationCount += translationDelta
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelCount += labelDelta
		project.LabelTranslationCount += translationDelta
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		user.LabelCount += labelDelta
		user.LabelTranslationCount += translationDelta
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// CloneLabel inserts newLabel and copies every translation of the source
// label onto it, regenerating external identifiers and repointing the
// denormalized label fields at the clone.
func (u *LabelUOW) CloneLabel(ctx context.Context, actingUserID int64, sourceLabelID int64, newLabel *domain.Label) error {
	return u.ex.Execute(ctx, "label.clone", func(tx *gorm.DB) error {
		if err := u.labels.Create(ctx, tx, actingUserID, newLabel); err != nil {
			return err
		}

		org, project, user, err := u.parents(ctx, tx, newLabel.OrganizationID, newLabel.ProjectID, actingUserID)
		if err != nil {
			return err
		}
		org.LabelCount++
		project.LabelCount++
		user.LabelCount++

		sourceTranslations, err := u.translations.ListByLabelID(ctx, tx, sourceLabelID, repos.ListQuery{})
		if err != nil {
			return err
		}
		for _, source := range sourceTranslations {
			dup := *source
			dup.ID = 0
			dup.UID = uuid.New()
			dup.LabelID = newLabel.ID
			dup.LabelUID = newLabel.UID
			dup.LabelKey = newLabel.Key
			if err := u.translations.Create(ctx, tx, actingUserID, &dup); err != nil {
				return err
			}
			org.LabelTranslationCount++
			project.LabelTranslationCount++
			user.LabelTranslationCount++
		}

		if n := int64(len(sourceTranslations)); n > 0 {
			newLabel.LabelTranslationCount = n
			if err := u.labels.Update(ctx, tx, actingUserID, newLabel); err != nil {
				return err
			}
		}

		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// DeleteLabel removes the label row and decrements the label counters.
// Ancestor translation counters are left to the translation delete path;
// this mirrors create, which only ever bumps the counters for the rows it
// writes itself.
func (u *LabelUOW) DeleteLabel(ctx context.Context, actingUserID int64, label *domain.Label) error {
	return u.ex.Execute(ctx, "label.delete", func(tx *gorm.DB) error {
		if err := u.labels.Delete(ctx, tx, actingUserID, label.ID); err != nil {
			return err
		}

		org, project, user, err := u.parents(ctx, tx, label.OrganizationID, label.ProjectID, actingUserID)
		if err != nil {
			return err
		}

		org.LabelCount--
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelCount--
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		user.LabelCount--
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// CreateTranslation inserts one translation and bumps the translation
// counters on its organization, project, label and the acting user.
func (u *LabelUOW) CreateTranslation(ctx context.Context, actingUserID int64, translation *domain.LabelTranslation) error {
	return u.ex.Execute(ctx, "label_translation.create", func(tx *gorm.DB) error {
		if err := u.translations.Create(ctx, tx, actingUserID, translation); err != nil {
			return err
		}

		org, project, user, err := u.parents(ctx, tx, translation.OrganizationID, translation.ProjectID, actingUserID)
		if err != nil {
			return err
		}
		label, err := u.labels.GetByID(ctx, tx, translation.LabelID)
		if err != nil {
			return err
		}
		if label == nil {
			return apierr.Newf(apierr.CodeNotFound, "label %d not found", translation.LabelID)
		}

		org.LabelTranslationCount++
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelTranslationCount++
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		label.LabelTranslationCount++
		if err := u.labels.Update(ctx, tx, actingUserID, label); err != nil {
			return err
		}
		user.LabelTranslationCount++
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// CreateTranslationsBulk inserts translations that all belong to one label
// and applies a single counter update per ancestor.
func (u *LabelUOW) CreateTranslationsBulk(ctx context.Context, actingUserID int64, translations []*domain.LabelTranslation) error {
	if len(translations) == 0 {
		return apierr.Newf(apierr.CodeInvalidArgument, "bulk translation create needs at least one translation")
	}
	first := translations[0]

	return u.ex.Execute(ctx, "label_translation.create_bulk", func(tx *gorm.DB) error {
		for _, t := range translations {
			if err := u.translations.Create(ctx, tx, actingUserID, t); err != nil {
				return err
			}
		}

		org, project, user, err := u.parents(ctx, tx, first.OrganizationID, first.ProjectID, actingUserID)
		if err != nil {
			return err
		}
		label, err := u.labels.GetByID(ctx, tx, first.LabelID)
		if err != nil {
			return err
		}
		if label == nil {
			return apierr.Newf(apierr.CodeNotFound, "label %d not found", first.LabelID)
		}

		delta := int64(len(translations))
		org.LabelTranslationCount += delta
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelTranslationCount += delta
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		label.LabelTranslationCount += delta
		if err := u.labels.Update(ctx, tx, actingUserID, label); err != nil {
			return err
		}
		user.LabelTranslationCount += delta
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// DeleteTranslation removes one translation and decrements the translation
// counters symmetrically to CreateTranslation.
func (u *LabelUOW) DeleteTranslation(ctx context.Context, actingUserID int64, translation *domain.LabelTranslation) error {
	return u.ex.Execute(ctx, "label_translation.delete", func(tx *gorm.DB) error {
		if err := u.translations.Delete(ctx, tx, actingUserID, translation.ID); err != nil {
			return err
		}

		org, project, user, err := u.parents(ctx, tx, translation.OrganizationID, translation.ProjectID, actingUserID)
		if err != nil {
			return err
		}
		label, err := u.labels.GetByID(ctx, tx, translation.LabelID)
		if err != nil {
			return err
		}
		if label == nil {
			return apierr.Newf(apierr.CodeNotFound, "label %d not found", translation.LabelID)
		}

		org.LabelTranslationCount--
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}
		project.LabelTranslationCount--
		if err := u.projects.Update(ctx, tx, actingUserID, project); err != nil {
			return err
		}
		label.LabelTranslationCount--
		if err := u.labels.Update(ctx, tx, actingUserID, label); err != nil {
			return err
		}
		user.LabelTranslationCount--
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}

// SetLabelActive flips the label's activation flag. Revision-producing,
// never touches counters.
func (u *LabelUOW) SetLabelActive(ctx context.Context, actingUserID int64, labelID int64, active bool) error {
	return u.ex.Execute(ctx, "label.set_active", func(tx *gorm.DB) error {
		return u.labels.SetActive(ctx, tx, actingUserID, labelID, active)
	})
}

// SetTranslationActive flips the translation's activation flag.
func (u *LabelUOW) SetTranslationActive(ctx context.Context, actingUserID int64, translationID int64, active bool) error {
	return u.ex.Execute(ctx, "label_translation.set_active", func(tx *gorm.DB) error {
		return u.translations.SetActive(ctx, tx, actingUserID, translationID, active)
	})
}

// RestoreLabelRevision applies a stored label revision as the current
// state, inside its own transaction so the forward revision the update
// produces commits atomically with the restore.
func (u *LabelUOW) RestoreLabelRevision(ctx context.Context, actingUserID int64, labelID int64, sequence int64) error {
	return u.ex.Execute(ctx, "label.restore_revision", func(tx *gorm.DB) error {
		return u.labels.RestoreRevision(ctx, tx, actingUserID, labelID, sequence)
	})
}

// RestoreTranslationRevision is the translation counterpart of
// RestoreLabelRevision.
func (u *LabelUOW) RestoreTranslationRevision(ctx context.Context, actingUserID int64, translationID int64, sequence int64) error {
	return u.ex.Execute(ctx, "label_translation.restore_revision", func(tx *gorm.DB) error {
		return u.translations.RestoreRevision(ctx, tx, actingUserID, translationID, sequence)
	})
}
