package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Entity type tags used in the revision table. They match the entities'
// table names.
const (
	EntityTypeOrganization     = "organization"
	EntityTypeUser             = "user"
	EntityTypeProject          = "project"
	EntityTypeLabel            = "label"
	EntityTypeLabelTranslation = "label_translation"
)

// Revision is an append-only snapshot of an entity's state taken by the
// store layer on every mutation. Sequence is monotonic per
// (EntityType, EntityID), starting at 1 with the state the entity was
// created in. Rows are never updated or deleted.
type Revision struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	EntityType string `gorm:"not null;uniqueIndex:ux_revision_entity_sequence;column:entity_type" json:"entity_type"`
	EntityID   int64  `gorm:"not null;uniqueIndex:ux_revision_entity_sequence;column:entity_id" json:"entity_id"`
	Sequence   int64  `gorm:"not null;uniqueIndex:ux_revision_entity_sequence;column:sequence" json:"sequence"`

	Snapshot     datatypes.JSON `gorm:"not null;column:snapshot" json:"snapshot"`
	ActingUserID int64          `gorm:"not null;column:acting_user_id" json:"acting_user_id"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Revision) TableName() string { return "revision" }
