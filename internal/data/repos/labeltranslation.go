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

type LabelTranslationRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.LabelTranslation, error)
	GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.LabelTranslation, error)
	GetByLabelIDAndLanguage(ctx context.Context, tx *gorm.DB, labelID int64, isoCode2 string) (*domain.LabelTranslation, error)
	ListByLabelID(ctx context.Context, tx *gorm.DB, labelID int64, q ListQuery) ([]*domain.LabelTranslation, error)
	LanguageExists(ctx context.Context, tx *gorm.DB, labelID int64, isoCode2 string) (bool, error)
	CountByLabelID(ctx context.Context, tx *gorm.DB, labelID int64) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, actingUserID int64, translation *domain.LabelTranslation) error
	Update(ctx context.Context, tx *gorm.DB, actingUserID int64, translation *domain.LabelTranslation) error
	Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error
	SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error
	Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error)
	RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error
}

type labelTranslationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLabelTranslationRepo(db *gorm.DB, baseLog *logger.Logger) LabelTranslationRepo {
	return &labelTranslationRepo{db: db, log: baseLog.With("repo", "LabelTranslationRepo")}
}

func (r *labelTranslationRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *labelTranslationRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.LabelTranslation, error) {
	var results []*domain.LabelTranslation
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

func (r *labelTranslationRepo) GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.LabelTranslation, error) {
	var results []*domain.LabelTranslation
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

func (r *labelTranslationRepo) GetByLabelIDAndLanguage(ctx context.Context, tx *gorm.DB, labelID int64, isoCode2 string) (*domain.LabelTranslation, error) {
	var results []*domain.LabelTranslation
	if err := r.handle(tx).WithContext(ctx).
		Where("label_id = ? AND language_iso_code_2 = ?", labelID, isoCode2).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *labelTranslationRepo) ListByLabelID(ctx context.Context, tx *gorm.DB, labelID int64, q ListQuery) ([]*domain.LabelTranslation, error) {
	var results []*domain.LabelTranslation
	if err := q.apply(r.handle(tx).WithContext(ctx).Where("label_id = ?", labelID)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *labelTranslationRepo) LanguageExists(ctx context.Context, tx *gorm.DB, labelID int64, isoCode2 string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.LabelTranslation{}).
		Where("label_id = ? AND language_iso_code_2 = ?", labelID, isoCode2).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *labelTranslationRepo) CountByLabelID(ctx context.Context, tx *gorm.DB, labelID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.LabelTranslation{}).
		Where("label_id = ?", labelID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *labelTranslationRepo) Create(ctx context.Context, tx *gorm.DB, actingUserID int64, translation *domain.LabelTranslation) error {
	if translation.UID == uuid.Nil {
		translation.UID = uuid.New()
	}
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(translation).Error; err != nil {
		return err
	}
	return recordRevision(ctx, db, actingUserID, domain.EntityTypeLabelTranslation, translation.ID, translation)
}

func (r *labelTranslationRepo) Update(ctx context.Context, tx *gorm.DB, actingUserID int64, translation *domain.LabelTranslation) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, translation.ID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %d not found", translation.ID)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabelTranslation, translation.ID, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Save(translation).Error
}

func (r *labelTranslationRepo) Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabelTranslation, id, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.LabelTranslation{}, id).Error
}

func (r *labelTranslationRepo) SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error {
	db := r.handle(tx)
	translation, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if translation == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeLabelTranslation, id, translation); err != nil {
		return err
	}
	translation.IsActive = active
	return db.WithContext(ctx).Save(translation).Error
}

func (r *labelTranslationRepo) Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), domain.EntityTypeLabelTranslation, id)
}

func (r *labelTranslationRepo) RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error {
	db := r.handle(tx)
	current, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return apierr.Newf(apierr.CodeNotFound, "label translation %d not found", id)
	}
	rev, err := revisionAt(ctx, db, domain.EntityTypeLabelTranslation, id, sequence)
	if err != nil {
		return err
	}
	if rev == nil {
		return apierr.Newf(apierr.CodeRevisionNotFound, "label translation %d has no revision %d", id, sequence)
	}

	var snap domain.LabelTranslation
	if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
		return fmt.Errorf("decode label translation revision %d: %w", sequence, err)
	}

	snap.ID = current.ID
	snap.UID = current.UID
	snap.CreatedAt = current.CreatedAt
	snap.DeletedAt = current.DeletedAt

	return r.Update(ctx, db, actingUserID, &snap)
}
