package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:uid" json:"uid"`

	OrganizationID   int64     `gorm:"not null;index;uniqueIndex:ux_project_org_slug;column:organization_id" json:"organization_id"`
	OrganizationUID  uuid.UUID `gorm:"type:uuid;not null;column:organization_uid" json:"organization_uid"`
	OrganizationName string    `gorm:"not null;column:organization_name" json:"organization_name"`

	Name     string `gorm:"not null;column:name" json:"name"`
	Slug     string `gorm:"not null;uniqueIndex:ux_project_org_slug;column:slug" json:"slug"`
	Url      string `gorm:"column:url" json:"url"`
	IsActive bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	LabelCount            int64 `gorm:"not null;default:0;column:label_count" json:"label_count"`
	LabelTranslationCount int64 `gorm:"not null;default:0;column:label_translation_count" json:"label_translation_count"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Project) TableName() string { return "project" }
