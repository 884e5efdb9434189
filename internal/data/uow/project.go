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

// ProjectUOW implements the project lifecycle against the same counter
// invariant as LabelUOW one level up the hierarchy.
type ProjectUOW struct {
	ex           *Executor
	orgs         repos.OrganizationRepo
	users        repos.UserRepo
	projects     repos.ProjectRepo
	labels       repos.LabelRepo
	translations repos.LabelTranslationRepo
	log          *logger.Logger
}

func NewProjectUOW(
	ex *Executor,
	orgs repos.OrganizationRepo,
	users repos.UserRepo,
	projects repos.ProjectRepo,
	labels repos.LabelRepo,
	translations repos.LabelTranslationRepo,
	baseLog *logger.Logger,
) *ProjectUOW {
	return &ProjectUOW{
		ex:           ex,
		orgs:         orgs,
		users:        users,
		projects:     projects,
		labels:       labels,
		translations: translations,
		log:          baseLog.With("uow", "ProjectUOW"),
	}
}

// CreateProject inserts the project and bumps the organization's project
// counter.
func (u *ProjectUOW) CreateProject(ctx context.Context, actingUserID int64, project *domain.Project) error {
	return u.ex.Execute(ctx, "project.create", func(tx *gorm.DB) error {
		if err := u.projects.Create(ctx, tx, actingUserID, project); err != nil {
			return err
		}

		org, err := u.orgs.GetByID(ctx, tx, project.OrganizationID)
		if err != nil {
			return err
		}
		if org == nil {
			return apierr.Newf(apierr.CodeNotFound, "organization %d not found", project.OrganizationID)
		}
		org.ProjectCount++
		return u.orgs.Update(ctx, tx, actingUserID, org)
	})
}

// DeleteProject removes the project row and decrements the organization's
// project counter. Labels under the project follow the label delete path.
func (u *ProjectUOW) DeleteProject(ctx context.Context, actingUserID int64, project *domain.Project) error {
	return u.ex.Execute(ctx, "project.delete", func(tx *gorm.DB) error {
		if err := u.projects.Delete(ctx, tx, actingUserID, project.ID); err != nil {
			return err
		}

		org, err := u.orgs.GetByID(ctx, tx, project.OrganizationID)
		if err != nil {
			return err
		}
		if org == nil {
			return apierr.Newf(apierr.CodeNotFound, "organization %d not found", project.OrganizationID)
		}
		org.ProjectCount--
		return u.orgs.Update(ctx, tx, actingUserID, org)
	})
}

// CloneProject inserts newProject and copies every label of the source
// project, with all of their translations, under it. Counter deltas are
// accumulated and each ancestor row is written once.
func (u *ProjectUOW) CloneProject(ctx context.Context, actingUserID int64, sourceProjectID int64, newProject *domain.Project) error {
	return u.ex.Execute(ctx, "project.clone", func(tx *gorm.DB) error {
		if err := u.projects.Create(ctx, tx, actingUserID, newProject); err != nil {
			return err
		}

		org, err := u.orgs.GetByID(ctx, tx, newProject.OrganizationID)
		if err != nil {
			return err
		}
		if org == nil {
			return apierr.Newf(apierr.CodeNotFound, "organization %d not found", newProject.OrganizationID)
		}
		user, err := u.users.GetByID(ctx, tx, actingUserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apierr.Newf(apierr.CodeNotFound, "user %d not found", actingUserID)
		}

		sourceLabels, err := u.labels.ListByProjectID(ctx, tx, sourceProjectID, repos.ListQuery{})
		if err != nil {
			return err
		}

		var labelDelta, translationDelta int64
		for _, source := range sourceLabels {
			label := *source
			label.ID = 0
			label.UID = uuid.New()
			label.ProjectID = newProject.ID
			label.ProjectUID = newProject.UID
			label.ProjectName = newProject.Name
			if err := u.labels.Create(ctx, tx, actingUserID, &label); err != nil {
				return err
			}
			labelDelta++

			sourceTranslations, err := u.translations.ListByLabelID(ctx, tx, source.ID, repos.ListQuery{})
			if err != nil {
				return err
			}
			for _, st := range sourceTranslations {
				dup := *st
				dup.ID = 0
				dup.UID = uuid.New()
				dup.ProjectID = newProject.ID
				dup.ProjectUID = newProject.UID
				dup.ProjectName = newProject.Name
				dup.LabelID = label.ID
				dup.LabelUID = label.UID
				dup.LabelKey = label.Key
				if err := u.translations.Create(ctx, tx, actingUserID, &dup); err != nil {
					return err
				}
				translationDelta++
			}
		}

		if labelDelta > 0 || translationDelta > 0 {
			newProject.LabelCount = labelDelta
			newProject.LabelTranslationCount = translationDelta
			if err := u.projects.Update(ctx, tx, actingUserID, newProject); err != nil {
				return err
			}
		}

		org.ProjectCount++
		org.LabelCount += labelDelta
		org.LabelTranslationCount += translationDelta
		if err := u.orgs.Update(ctx, tx, actingUserID, org); err != nil {
			return err
		}

		user.LabelCount += labelDelta
		user.LabelTranslationCount += translationDelta
		return u.users.Update(ctx, tx, actingUserID, user)
	})
}
