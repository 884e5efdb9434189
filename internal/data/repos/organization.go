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

type OrganizationRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Organization, error)
	GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Organization, error)
	List(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*domain.Organization, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, actingUserID int64, org *domain.Organization) error
	Update(ctx context.Context, tx *gorm.DB, actingUserID int64, org *domain.Organization) error
	Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error
	SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error
	Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error)
	RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error
}

type organizationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger) OrganizationRepo {
	return &organizationRepo{db: db, log: baseLog.With("repo", "OrganizationRepo")}
}

func (r *organizationRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *organizationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Organization, error) {
	var results []*domain.Organization
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

func (r *organizationRepo) GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Organization, error) {
	var results []*domain.Organization
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

func (r *organizationRepo) List(ctx context.Context, tx *gorm.DB, q ListQuery) ([]*domain.Organization, error) {
	var results []*domain.Organization
	if err := q.apply(r.handle(tx).WithContext(ctx)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *organizationRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Organization{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *organizationRepo) Create(ctx context.Context, tx *gorm.DB, actingUserID int64, org *domain.Organization) error {
	if org.UID == uuid.Nil {
		org.UID = uuid.New()
	}
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(org).Error; err != nil {
		return err
	}
	return recordRevision(ctx, db, actingUserID, domain.EntityTypeOrganization, org.ID, org)
}

func (r *organizationRepo) Update(ctx context.Context, tx *gorm.DB, actingUserID int64, org *domain.Organization) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, org.ID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "organization %d not found", org.ID)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeOrganization, org.ID, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Save(org).Error
}

func (r *organizationRepo) Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "organization %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeOrganization, id, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Organization{}, id).Error
}

func (r *organizationRepo) SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error {
	db := r.handle(tx)
	org, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if org == nil {
		return apierr.Newf(apierr.CodeNotFound, "organization %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeOrganization, id, org); err != nil {
		return err
	}
	org.IsActive = active
	return db.WithContext(ctx).Save(org).Error
}

func (r *organizationRepo) Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), domain.EntityTypeOrganization, id)
}

func (r *organizationRepo) RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error {
	db := r.handle(tx)
	current, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return apierr.Newf(apierr.CodeNotFound, "organization %d not found", id)
	}
	rev, err := revisionAt(ctx, db, domain.EntityTypeOrganization, id, sequence)
	if err != nil {
		return err
	}
	if rev == nil {
		return apierr.Newf(apierr.CodeRevisionNotFound, "organization %d has no revision %d", id, sequence)
	}

	var snap domain.Organization
	if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
		return fmt.Errorf("decode organization revision %d: %w", sequence, err)
	}

	// Identity and live counters are never restored.
	snap.ID = current.ID
	snap.UID = current.UID
	snap.CreatedAt = current.CreatedAt
	snap.DeletedAt = current.DeletedAt
	snap.UserCount = current.UserCount
	snap.ProjectCount = current.ProjectCount
	snap.LabelCount = current.LabelCount
	snap.LabelTranslationCount = current.LabelTranslationCount

	return r.Update(ctx, db, actingUserID, &snap)
}
