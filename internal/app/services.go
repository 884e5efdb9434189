package app

import (
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/data/uow"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
	"github.com/lokalhub/lokalhub-backend/internal/services"
)

type UnitsOfWork struct {
	Label   *uow.LabelUOW
	Project *uow.ProjectUOW
}

type Services struct {
	Label  services.LabelService
	Import services.ImportService
}

func wireUnitsOfWork(db *gorm.DB, log *logger.Logger, r Repos) UnitsOfWork {
	log.Info("wiring units of work")
	ex := uow.NewExecutor(db, log)
	return UnitsOfWork{
		Label:   uow.NewLabelUOW(ex, r.Organization, r.User, r.Project, r.Label, r.LabelTranslation, log),
		Project: uow.NewProjectUOW(ex, r.Organization, r.User, r.Project, r.Label, r.LabelTranslation, log),
	}
}

func wireServices(log *logger.Logger, r Repos, u UnitsOfWork) Services {
	log.Info("wiring services")
	return Services{
		Label:  services.NewLabelService(u.Label, r.Project, r.Label, r.LabelTranslation, log),
		Import: services.NewImportService(u.Label, r.Project, r.Label, r.LabelTranslation, log),
	}
}
