package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a customer review left on a product. Its rating is folded into
// the product's running rating aggregate when the comment is posted.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"comment"`
	Rating    int       `json:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
