package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label carries denormalized copies of its parents' identifying fields so
// read paths never join. They reflect the parents as of the label's last
// mutation; a parent rename does not rewrite them.
type Label struct {
	ID  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:uid" json:"uid"`

	OrganizationID   int64     `gorm:"not null;index;column:organization_id" json:"organization_id"`
	OrganizationUID  uuid.UUID `gorm:"type:uuid;not null;column:organization_uid" json:"organization_uid"`
	OrganizationName string    `gorm:"not null;column:organization_name" json:"organization_name"`

	ProjectID   int64     `gorm:"not null;index;uniqueIndex:ux_label_project_key;column:project_id" json:"project_id"`
	ProjectUID  uuid.UUID `gorm:"type:uuid;not null;column:project_uid" json:"project_uid"`
	ProjectName string    `gorm:"not null;column:project_name" json:"project_name"`

	Key         string `gorm:"not null;uniqueIndex:ux_label_project_key;column:key" json:"key"`
	Name        string `gorm:"not null;column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	LabelTranslationCount int64 `gorm:"not null;default:0;column:label_translation_count" json:"label_translation_count"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Label) TableName() string { return "label" }
