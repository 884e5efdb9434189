// Package uow implements the unit-of-work layer: every business mutation
// that touches more than one table runs inside a single Executor scope, so
// rollup counters and revision rows commit or roll back together with the
// rows they describe.
//
// Counter read-modify-write sequences rely on the backing store's
// transaction isolation to serialize concurrent siblings; postgres
// deployments should run at REPEATABLE READ or stronger.
package uow

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
	"github.com/lokalhub/lokalhub-backend/internal/platform/otelx"
)

// Executor runs a unit of work inside one transaction: commit when fn
// returns nil, rollback and propagate otherwise. There are no savepoints;
// nested work shares the same tx handle.
type Executor struct {
	db     *gorm.DB
	log    *logger.Logger
	tracer trace.Tracer
}

func NewExecutor(db *gorm.DB, baseLog *logger.Logger) *Executor {
	return &Executor{
		db:     db,
		log:    baseLog.With("component", "uow.Executor"),
		tracer: otelx.Tracer(),
	}
}

func (e *Executor) Execute(ctx context.Context, name string, fn func(tx *gorm.DB) error) error {
	ctx, span := e.tracer.Start(ctx, name)
	defer span.End()

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
	if err != nil {
		span.RecordError(err)
		e.log.Debug("unit of work rolled back", "uow", name, "error", err)
	}
	return err
}
