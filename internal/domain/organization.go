package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:uid" json:"uid"`

	Name           string `gorm:"not null;column:name" json:"name"`
	Description    string `gorm:"column:description" json:"description"`
	ObfuscationKey string `gorm:"column:obfuscation_key" json:"-"`
	IsActive       bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	UserCount             int64 `gorm:"not null;default:0;column:user_count" json:"user_count"`
	ProjectCount          int64 `gorm:"not null;default:0;column:project_count" json:"project_count"`
	LabelCount            int64 `gorm:"not null;default:0;column:label_count" json:"label_count"`
	LabelTranslationCount int64 `gorm:"not null;default:0;column:label_translation_count" json:"label_translation_count"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Organization) TableName() string { return "organization" }
