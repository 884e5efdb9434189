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

type UserRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.User, error)
	GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.User, error)
	ListByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64, q ListQuery) ([]*domain.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, actingUserID int64, user *domain.User) error
	Update(ctx context.Context, tx *gorm.DB, actingUserID int64, user *domain.User) error
	Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error
	SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error
	Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error)
	RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.User, error) {
	var results []*domain.User
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

func (r *userRepo) GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.User, error) {
	var results []*domain.User
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

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*domain.User, error) {
	var results []*domain.User
	if err := r.handle(tx).WithContext(ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *userRepo) ListByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64, q ListQuery) ([]*domain.User, error) {
	var results []*domain.User
	if err := q.apply(r.handle(tx).WithContext(ctx).Where("organization_id = ?", organizationID)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, actingUserID int64, user *domain.User) error {
	if user.UID == uuid.Nil {
		user.UID = uuid.New()
	}
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return recordRevision(ctx, db, actingUserID, domain.EntityTypeUser, user.ID, user)
}

func (r *userRepo) Update(ctx context.Context, tx *gorm.DB, actingUserID int64, user *domain.User) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, user.ID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "user %d not found", user.ID)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeUser, user.ID, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "user %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeUser, id, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.User{}, id).Error
}

func (r *userRepo) SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error {
	db := r.handle(tx)
	user, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apierr.Newf(apierr.CodeNotFound, "user %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeUser, id, user); err != nil {
		return err
	}
	user.IsActive = active
	return db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), domain.EntityTypeUser, id)
}

func (r *userRepo) RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error {
	db := r.handle(tx)
	current, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return apierr.Newf(apierr.CodeNotFound, "user %d not found", id)
	}
	rev, err := revisionAt(ctx, db, domain.EntityTypeUser, id, sequence)
	if err != nil {
		return err
	}
	if rev == nil {
		return apierr.Newf(apierr.CodeRevisionNotFound, "user %d has no revision %d", id, sequence)
	}

	var snap domain.User
	if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
		return fmt.Errorf("decode user revision %d: %w", sequence, err)
	}

	snap.ID = current.ID
	snap.UID = current.UID
	snap.CreatedAt = current.CreatedAt
	snap.DeletedAt = current.DeletedAt
	snap.LabelCount = current.LabelCount
	snap.LabelTranslationCount = current.LabelTranslationCount

	return r.Update(ctx, db, actingUserID, &snap)
}
