package app

import (
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/data/repos"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

type Repos struct {
	Organization     repos.OrganizationRepo
	User             repos.UserRepo
	Project          repos.ProjectRepo
	Label            repos.LabelRepo
	LabelTranslation repos.LabelTranslationRepo
	Revision         repos.RevisionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("wiring repos")
	return Repos{
		Organization:     repos.NewOrganizationRepo(db, log),
		User:             repos.NewUserRepo(db, log),
		Project:          repos.NewProjectRepo(db, log),
		Label:            repos.NewLabelRepo(db, log),
		LabelTranslation: repos.NewLabelTranslationRepo(db, log),
		Revision:         repos.NewRevisionRepo(db, log),
	}
}
