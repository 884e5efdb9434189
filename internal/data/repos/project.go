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

type ProjectRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Project, error)
	GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Project, error)
	GetByOrganizationIDAndSlug(ctx context.Context, tx *gorm.DB, organizationID int64, slug string) (*domain.Project, error)
	ListByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64, q ListQuery) ([]*domain.Project, error)
	SlugExists(ctx context.Context, tx *gorm.DB, organizationID int64, slug string) (bool, error)
	CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, actingUserID int64, project *domain.Project) error
	Update(ctx context.Context, tx *gorm.DB, actingUserID int64, project *domain.Project) error
	Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error
	SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error
	Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error)
	RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Project, error) {
	var results []*domain.Project
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

func (r *projectRepo) GetByUID(ctx context.Context, tx *gorm.DB, uid uuid.UUID) (*domain.Project, error) {
	var results []*domain.Project
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

func (r *projectRepo) GetByOrganizationIDAndSlug(ctx context.Context, tx *gorm.DB, organizationID int64, slug string) (*domain.Project, error) {
	var results []*domain.Project
	if err := r.handle(tx).WithContext(ctx).
		Where("organization_id = ? AND slug = ?", organizationID, slug).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *projectRepo) ListByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64, q ListQuery) ([]*domain.Project, error) {
	var results []*domain.Project
	if err := q.apply(r.handle(tx).WithContext(ctx).Where("organization_id = ?", organizationID)).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *projectRepo) SlugExists(ctx context.Context, tx *gorm.DB, organizationID int64, slug string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Where("organization_id = ? AND slug = ?", organizationID, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *projectRepo) CountByOrganizationID(ctx context.Context, tx *gorm.DB, organizationID int64) (int64, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&domain.Project{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, actingUserID int64, project *domain.Project) error {
	if project.UID == uuid.Nil {
		project.UID = uuid.New()
	}
	db := r.handle(tx)
	if err := db.WithContext(ctx).Create(project).Error; err != nil {
		return err
	}
	return recordRevision(ctx, db, actingUserID, domain.EntityTypeProject, project.ID, project)
}

func (r *projectRepo) Update(ctx context.Context, tx *gorm.DB, actingUserID int64, project *domain.Project) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, project.ID)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "project %d not found", project.ID)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeProject, project.ID, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Save(project).Error
}

func (r *projectRepo) Delete(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64) error {
	db := r.handle(tx)
	prior, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if prior == nil {
		return apierr.Newf(apierr.CodeNotFound, "project %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeProject, id, prior); err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Project{}, id).Error
}

func (r *projectRepo) SetActive(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, active bool) error {
	db := r.handle(tx)
	project, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if project == nil {
		return apierr.Newf(apierr.CodeNotFound, "project %d not found", id)
	}
	if err := recordRevision(ctx, db, actingUserID, domain.EntityTypeProject, id, project); err != nil {
		return err
	}
	project.IsActive = active
	return db.WithContext(ctx).Save(project).Error
}

func (r *projectRepo) Revisions(ctx context.Context, tx *gorm.DB, id int64) ([]*domain.Revision, error) {
	return revisionsFor(ctx, r.handle(tx), domain.EntityTypeProject, id)
}

func (r *projectRepo) RestoreRevision(ctx context.Context, tx *gorm.DB, actingUserID int64, id int64, sequence int64) error {
	db := r.handle(tx)
	current, err := r.GetByID(ctx, db, id)
	if err != nil {
		return err
	}
	if current == nil {
		return apierr.Newf(apierr.CodeNotFound, "project %d not found", id)
	}
	rev, err := revisionAt(ctx, db, domain.EntityTypeProject, id, sequence)
	if err != nil {
		return err
	}
	if rev == nil {
		return apierr.Newf(apierr.CodeRevisionNotFound, "project %d has no revision %d", id, sequence)
	}

	var snap domain.Project
	if err := json.Unmarshal(rev.Snapshot, &snap); err != nil {
		return fmt.Errorf("decode project revision %d: %w", sequence, err)
	}

	snap.ID = current.ID
	snap.UID = current.UID
	snap.CreatedAt = current.CreatedAt
	snap.DeletedAt = current.DeletedAt
	snap.LabelCount = current.LabelCount
	snap.LabelTranslationCount = current.LabelTranslationCount

	return r.Update(ctx, db, actingUserID, &snap)
}
