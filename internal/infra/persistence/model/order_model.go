package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. Line items live in their own table so
// sales reports can aggregate per product without unpacking documents.
type OrderModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Address         string    `gorm:"type:text;not null"`
	PaymentMode     string    `gorm:"type:varchar(20);not null"`
	PaymentTotal    float64   `gorm:"type:decimal(12,2);not null"`
	DiscountApplied float64   `gorm:"type:decimal(5,2);not null;default:0"`
	Status          string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time

	Lines []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel mirrors the 'order_lines' table. Prices are captured at order
// time and never recomputed from the product row.
type OrderLineModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity   int       `gorm:"not null"`
	Unit       string    `gorm:"type:varchar(10)"`
	UnitPrice  float64   `gorm:"type:decimal(12,2);not null"`
	TotalPrice float64   `gorm:"type:decimal(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderLineModel) TableName() string {
	return "order_lines"
}
