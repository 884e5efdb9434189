package app

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/data/db"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
	"github.com/lokalhub/lokalhub-backend/internal/platform/otelx"
)

// App wires the storage layer, units of work and services against one
// database handle. Callers embed it behind whatever surface they expose.
type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	UOW      UnitsOfWork
	Services Services

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg := LoadConfig()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := otelx.Init(ctx, log, cfg.ServiceName)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if cfg.AutoMigrate {
		if err := pg.AutoMigrateAll(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}
	theDB := pg.DB()

	reposet := wireRepos(theDB, log)
	uowset := wireUnitsOfWork(theDB, log, reposet)
	serviceset := wireServices(log, reposet, uowset)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		UOW:          uowset,
		Services:     serviceset,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
