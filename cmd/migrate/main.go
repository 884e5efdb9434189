package main

import (
	"fmt"
	"os"

	"github.com/lokalhub/lokalhub-backend/internal/data/db"
	"github.com/lokalhub/lokalhub-backend/internal/platform/envutil"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

// Applies the schema to the configured postgres database and exits.
func main() {
	log, err := logger.New(envutil.Str("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Error("postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("schema migrated")
}
