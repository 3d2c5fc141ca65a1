package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Addresses are a JSONB list; they are small and always loaded with the user.
type UserModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email                string     `gorm:"type:varchar(255);unique;not null"`
	Name                 string     `gorm:"type:varchar(100);not null"`
	Phone                string     `gorm:"type:varchar(30)"`
	Gender               string     `gorm:"type:varchar(10)"`
	Role                 string     `gorm:"type:varchar(20);not null;default:'user';index"`
	Addresses            []string   `gorm:"type:jsonb;serializer:json"`
	Avatar               string     `gorm:"type:text"`
	DateOfBirth          time.Time  `gorm:"not null"`
	CoinsEarned          float64    `gorm:"type:decimal(14,2);not null;default:0"`
	GroupDiscountPercent float64    `gorm:"type:decimal(5,2);not null;default:0"`
	GroupID              *uuid.UUID `gorm:"type:uuid;index"`
	Validated            bool       `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
