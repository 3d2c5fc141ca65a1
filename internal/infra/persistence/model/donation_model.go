package model

import (
	"time"

	"github.com/google/uuid"
)

// HelpAndHopeModel mirrors the 'help_and_hope_items' table of coin-purchasable
// charitable catalog entries.
type HelpAndHopeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Coins     float64   `gorm:"type:decimal(14,2);not null"`
	Theme     string    `gorm:"type:varchar(20);not null;index"`
	Image     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (HelpAndHopeModel) TableName() string {
	return "help_and_hope_items"
}

// DonationHistoryModel mirrors the 'donation_histories' table.
type DonationHistoryModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CoinsDonated float64   `gorm:"type:decimal(14,2);not null"`
	CreatedAt    time.Time `gorm:"index"`

	Lines []DonationLineModel `gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (DonationHistoryModel) TableName() string {
	return "donation_histories"
}

// DonationLineModel mirrors the 'donation_lines' table.
type DonationLineModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DonationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null"`
	TotalCoins float64   `gorm:"type:decimal(14,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (DonationLineModel) TableName() string {
	return "donation_lines"
}
