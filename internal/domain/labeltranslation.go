package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabelTranslation struct {
	ID  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:uid" json:"uid"`

	OrganizationID   int64     `gorm:"not null;index;column:organization_id" json:"organization_id"`
	OrganizationUID  uuid.UUID `gorm:"type:uuid;not null;column:organization_uid" json:"organization_uid"`
	OrganizationName string    `gorm:"not null;column:organization_name" json:"organization_name"`

	ProjectID   int64     `gorm:"not null;index;column:project_id" json:"project_id"`
	ProjectUID  uuid.UUID `gorm:"type:uuid;not null;column:project_uid" json:"project_uid"`
	ProjectName string    `gorm:"not null;column:project_name" json:"project_name"`

	LabelID  int64     `gorm:"not null;index;uniqueIndex:ux_translation_label_language;column:label_id" json:"label_id"`
	LabelUID uuid.UUID `gorm:"type:uuid;not null;column:label_uid" json:"label_uid"`
	LabelKey string    `gorm:"not null;column:label_key" json:"label_key"`

	LanguageIsoCode2 string `gorm:"not null;uniqueIndex:ux_translation_label_language;column:language_iso_code_2" json:"language_iso_code_2"`
	Translation      string `gorm:"not null;column:translation" json:"translation"`
	IsActive         bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LabelTranslation) TableName() string { return "label_translation" }
