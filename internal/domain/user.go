package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null;column:uid" json:"uid"`

	OrganizationID   int64     `gorm:"not null;index;column:organization_id" json:"organization_id"`
	OrganizationUID  uuid.UUID `gorm:"type:uuid;not null;column:organization_uid" json:"organization_uid"`
	OrganizationName string    `gorm:"not null;column:organization_name" json:"organization_name"`

	Email     string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`
	IsActive  bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsAdmin   bool   `gorm:"not null;default:false;column:is_admin" json:"is_admin"`

	LabelCount            int64 `gorm:"not null;default:0;column:label_count" json:"label_count"`
	LabelTranslationCount int64 `gorm:"not null;default:0;column:label_translation_count" json:"label_translation_count"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }
