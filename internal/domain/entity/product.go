// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Category classifies a product listing. Each category carries exactly one
// set of category-specific attributes.
type Category string

const (
	CategoryFashion     Category = "fashion"
	CategoryBags        Category = "bags"
	CategoryFootwear    Category = "footwear"
	CategoryJewellery   Category = "jewellery"
	CategoryBeauty      Category = "beauty"
	CategoryElectronics Category = "electronics"
	CategoryGroceries   Category = "groceries"
)

// Categories lists every valid product category.
var Categories = []Category{
	CategoryFashion,
	CategoryBags,
	CategoryFootwear,
	CategoryJewellery,
	CategoryBeauty,
	CategoryElectronics,
	CategoryGroceries,
}

// IsValid checks if the Category is a valid value.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// SizeStock tracks the remaining quantity of one clothing size of a fashion product.
type SizeStock struct {
	Size     string `json:"size"` // XS, S, M, L, XL, XXL
	Quantity int    `json:"quantity"`
}

// ShoeSizeStock tracks the remaining quantity of one shoe size of a footwear product.
type ShoeSizeStock struct {
	ShoeSize string `json:"shoe_size"` // "20" .. "50"
	Quantity int    `json:"quantity"`
}

// Rating is a running aggregate of customer ratings.
type Rating struct {
	Rating      float64 `json:"rating"` // running mean, 0..5
	RatingCount int     `json:"rating_count"`
}

// Add folds a new rating value into the running mean.
func (r *Rating) Add(value int) {
	total := r.Rating*float64(r.RatingCount) + float64(value)
	r.RatingCount++
	r.Rating = total / float64(r.RatingCount)
}

// Product is a catalog listing. Price, Coins and CountInStock are derived
// fields: they are recomputed by Normalize on every mutation and are never
// independently settable.
type Product struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Category        Category          `json:"category"`
	Price           float64           `json:"price"`
	OldPrice        float64           `json:"old_price,omitempty"`
	DiscountPercent float64           `json:"discount,omitempty"` // 0..100
	Coins           int               `json:"coins"`
	CountInStock    int               `json:"count_in_stock"`
	InStock         bool              `json:"in_stock"`
	SaleCount       int               `json:"sale_count"`
	Rate            Rating            `json:"rate"`
	Image           string            `json:"image"`
	Sizes           []SizeStock       `json:"size,omitempty"`           // fashion only
	ShoeSizes       []ShoeSizeStock   `json:"shoe_size,omitempty"`      // footwear only
	Specifications  map[string]string `json:"specifications,omitempty"` // electronics only
	Ingredients     []string          `json:"ingredients,omitempty"`    // beauty only
	ExpiryDate      *time.Time        `json:"expiry_date,omitempty"`    // groceries only
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Normalize recomputes every derived field from its source fields:
// price from oldPrice and discount, coins from price, and the aggregate
// stock count from the per-variant quantities for variant-tracked categories.
func (p *Product) Normalize() {
	if p.OldPrice > 0 && p.DiscountPercent > 0 {
		p.Price = p.OldPrice * (1 - p.DiscountPercent/100)
	}

	if p.Price > 0 {
		p.Coins = int(math.Floor(p.Price * 3 / 2))
	}

	switch p.Category {
	case CategoryFashion:
		total := 0
		for _, s := range p.Sizes {
			total += s.Quantity
		}
		p.CountInStock = total
	case CategoryFootwear:
		total := 0
		for _, s := range p.ShoeSizes {
			total += s.Quantity
		}
		p.CountInStock = total
	}

	p.InStock = p.CountInStock > 0
}

// HasVariants reports whether stock is tracked per size variant.
func (p *Product) HasVariants() bool {
	return p.Category == CategoryFashion || p.Category == CategoryFootwear
}

// VariantQuantity returns the remaining stock of the named variant.
// For non-variant categories the aggregate count is returned.
func (p *Product) VariantQuantity(unit string) int {
	switch p.Category {
	case CategoryFashion:
		for _, s := range p.Sizes {
			if s.Size == unit {
				return s.Quantity
			}
		}

		return 0
	case CategoryFootwear:
		for _, s := range p.ShoeSizes {
			if s.ShoeSize == unit {
				return s.Quantity
			}
		}

		return 0
	default:
		return p.CountInStock
	}
}

// DecrementVariant reduces the named variant's quantity and the aggregate
// count. Callers must have verified availability first.
func (p *Product) DecrementVariant(unit string, qty int) {
	switch p.Category {
	case CategoryFashion:
		for i := range p.Sizes {
			if p.Sizes[i].Size == unit {
				p.Sizes[i].Quantity -= qty

				break
			}
		}
	case CategoryFootwear:
		for i := range p.ShoeSizes {
			if p.ShoeSizes[i].ShoeSize == unit {
				p.ShoeSizes[i].Quantity -= qty

				break
			}
		}
	}

	p.CountInStock -= qty
	p.InStock = p.CountInStock > 0
}
