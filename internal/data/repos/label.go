package repos

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lokalhub/lokalhub-backend/internal/domain"
	"github.com/lokalhub/lokalhub-backend/internal/platform/apierr"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

type LabelRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Label, error)
	GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Label, error)
	GetByProjectIDAndKey(ctx context.Context, tx *gorm.DB, projectID int64, key string) (*domain.Label, error)
	ListByProjectID(ctx context.Context, tx *gorm.DB, projectID int64, q ListQuery) ([]*domain.Label, error)
	KeyExists(ctx context.Context, tx *gorm.DB, projectID int64, key string) (bool, error)
	CountByProjectID(ctx context.Context, tx *gorm.DB, projectID int64) (int64, error)
	CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, actingUserID int64, label *domain.Label) error
	Update(ctx context.Context, tx *gorm.DB, actingUserID int64, label *domain.Label) error
	Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error
	SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error
	Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error)
	RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error
}

type labelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLabelRepo(db *gorm.DB, baseLog *logger.Logger) LabelRepo {
	return &labelRepo{db: db, log: baseLog.With("repo", "LabelRepo")}
}

func (r *labelRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *labelRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Label, error) {
	var results []*domain.Label
	if err := r.handle(tx).WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *labelRepo) GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Label, error) {
	var results []*domain.Label
	if err := r.handle(tx).WithContext(ctx).
		Where("uid = ?", uid).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *labelRepo) GetByProjectIDAndKey(ctx context.Context, tx *gorm.DB, projectID int64, key string) (*domain.Label, error) {
	var results []*domain.Label
	if err := r.handle(tx).WithContext(ctx).
		Where("project_id = ? AND key = ?", projectID, key).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *labelRepo) ListByProjectID(ctx context.Context, tx *gorm.DB, projectID int64, q ListQuery) ([]*domain.Label, error) {
	var results []*domain.Label
	if err := q.apply(r.handle(tx).WithContext(ctx).Where("project_id = ?", projectID)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *labelRepo) KeyExists(ctx context.Context, tx *gorm.DB, projectID int64, key string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Label{}).
		Where("project_id = ? AND key = ?", projectID, key).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *labelRepo) CountByProjectID(ctx context.Context, tx *gorm.DB, projectID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Label{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *labelRepo) CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Label{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *labelRepo) Create(ctx context.Context, tx *gorm.DB, actingUserID int64, label *domain.Label) error {
	if label.UID == uuid.Nil {
		label.UID = uuid.New()
	}
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(label).Error; err != nil {
		return err
	}
	return recordRevision(ctx, db, actingUserID, domain.EntityTypeLabel, label.ID, label)
}

func (r *labelRepo) Update(ctx context.Context, tx *gorm.DB, actingUserID int64, label *domain.Label) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, label.ID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %d not found", label.ID)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabel, label.ID, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Save(label).Error
}

func (r *labelRepo) Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabel, id, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Label{}, id).Error
}

func (r *labelRepo) SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error {
	db := r.handle(tx)
	label, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if label == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabel, id, label); err != nil {
		return err
	}
	label.IsActive = active
	return db.WithContext(ctx).Save(label).Error
}

func (r *labelRepo) Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), domain.EntityTypeLabel, id)
}

func (r *labelRepo) RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error {
	db := r.handle(tx)
	current, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return apierr.Newf(apierr.CodeNotFound, "label %d not found", id)
	}
	rev, err := revisionAt(ctx, db, domain.EntityTypeLabel, id, sequence)
	if err != nil {
		return err
	}
	if rev == nil {
		return apierr.Newf(apierr.CodeRevisionNotFound, "label %d has no revision %d", id, sequence)
	}

	var snap domain.Label
	if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
		return fmt.Errorf("decode label revision %d: %w", sequence, err)
	}

	// Identity and live counters are never restored.
	snap.ID = current.ID
	snap.UID = current.UID
	snap.CreatedAt = current.CreatedAt
	snap.DeletedAt = current.DeletedAt
	snap.LabelTranslationCount = current.LabelTranslationCount

	return r.Update(ctx, db, actingUserID, &snap)
}
