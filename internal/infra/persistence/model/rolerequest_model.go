package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleRequestModel mirrors the 'role_requests' table.
type RoleRequestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Message   string    `gorm:"type:text;not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RoleRequestModel) TableName() string {
	return "role_requests"
}
