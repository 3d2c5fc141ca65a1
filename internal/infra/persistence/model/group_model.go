package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupModel mirrors the 'groups' table. The ambassador set is a JSONB list;
// the authoritative membership mirror lives on users.group_id.
type GroupModel struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AdminID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	CoordinatorID uuid.UUID   `gorm:"type:uuid;not null;index"`
	AmbassadorIDs []uuid.UUID `gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (GroupModel) TableName() string {
	return "groups"
}
