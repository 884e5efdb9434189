package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

// recordRevision appends state as the next revision of the entity. Every
// store mutation calls it on the same handle the mutation runs on, so the
// revision commits or rolls back with the write it records.
func recordRevision(ctx context.Context, db *gorm.DB, actingUserID int64, entityType string, entityID int64, state interface{}) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal %s revision snapshot: %w", entityType, err)
	}

	var last int64
	if err := db.WithContext(ctx).
		Model(&domain.Revision{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&last).Error; err != nil {
		return err
	}

	rev := &domain.Revision{
		EntityType:   entityType,
		EntityID:     entityID,
		Sequence:     last + 1,
		Snapshot:     datatypes.JSON(snapshot),
		ActingUserID: actingUserID,
	}
	return db.WithContext(ctx).Create(rev).Error
}

func revisionsFor(ctx context.Context, db *gorm.DB, entityType string, entityID int64) ([]*domain.Revision, error) {
	var results []*domain.Revision
	if err := db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("sequence ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func revisionAt(ctx context.Context, db *gorm.DB, entityType string, entityID int64, sequence int64) (*domain.Revision, error) {
	var results []*domain.Revision
	if err := db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND sequence = ?", entityType, entityID, sequence).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

type RevisionRepo interface {
	ListByEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID int64) ([]*domain.Revision, error)
	GetByEntityAndSequence(ctx context.Context, tx *gorm.DB, entityType string, entityID int64, sequence int64) (*domain.Revision, error)
	CountByEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID int64) (int64, error)
}

type revisionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRevisionRepo(db *gorm.DB, baseLog *logger.Logger) RevisionRepo {
	return &revisionRepo{db: db, log: baseLog.With("repo", "RevisionRepo")}
}

func (r *revisionRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *revisionRepo) ListByEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), entityType, entityID)
}

func (r *revisionRepo) GetByEntityAndSequence(ctx context.Context, tx *gorm.DB, entityType string, entityID int64, sequence int64) (*domain.Revision, error) {
	return revisionAt(ctx, r.handle(tx), entityType, entityID, sequence)
}

func (r *revisionRepo) CountByEntity(ctx context.Context, tx *gorm.DB, entityType string, entityID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Revision{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
