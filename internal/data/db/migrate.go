package db

import (
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Organization{},
		&domain.User{},
		&domain.Project{},
		&domain.Label{},
		&domain.LabelTranslation{},
		&domain.Revision{},
	)
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("auto migration failed", "error", err)
		return err
	}
	return nil
}
