// Package model contains the GORM persistence structs mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel mirrors the 'products' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Variant stock (sizes, shoe sizes) and the category-specific attribute sets are stored
// as JSONB documents rather than association tables; they are always read and written
// as a whole alongside the product row.
type ProductModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Title           string              `gorm:"type:varchar(255);not null;index"`
	Description     string              `gorm:"type:text"`
	Category        string              `gorm:"type:varchar(50);not null;index"`
	Price           float64             `gorm:"type:decimal(12,2);not null"`
	OldPrice        float64             `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountPercent float64             `gorm:"type:decimal(5,2);not null;default:0"`
	Coins           int                 `gorm:"not null;default:0"`
	CountInStock    int                 `gorm:"not null;default:0"`
	InStock         bool                `gorm:"not null;default:true"`
	SaleCount       int                 `gorm:"not null;default:0;index"`
	RatingRate      float64             `gorm:"not null;default:0"`
	RatingCount     int                 `gorm:"not null;default:0"`
	Image           string              `gorm:"type:text"`
	Sizes           []SizeStockJSON     `gorm:"type:jsonb;serializer:json"`
	ShoeSizes       []ShoeSizeStockJSON `gorm:"type:jsonb;serializer:json"`
	Specifications  map[string]string   `gorm:"type:jsonb;serializer:json"`
	Ingredients     []string            `gorm:"type:jsonb;serializer:json"`
	ExpiryDate      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SizeStockJSON is one element of the JSONB clothing size array.
type SizeStockJSON struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// ShoeSizeStockJSON is one element of the JSONB shoe size array.
type ShoeSizeStockJSON struct {
	ShoeSize string `json:"shoe_size"`
	Quantity int    `json:"quantity"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
