package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a unique account.
// CoinsEarned is the loyalty balance accrued from orders; GroupDiscountPercent
// is a percentage balance granted by winning the monthly group competition,
// consumed in full by at most one order.
type User struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	Gender               string     `json:"gender"`
	Role                 Role       `json:"role"`
	Addresses            []string   `json:"address"`
	Avatar               string     `json:"avatar"`
	DateOfBirth          time.Time  `json:"date_of_birth"`
	CoinsEarned          float64    `json:"coins_earned"`
	GroupDiscountPercent float64    `json:"discount_earned_with_group"`
	GroupID              *uuid.UUID `json:"group_id,omitempty"`
	Validated            bool       `json:"validated"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// BirthdayThisMonth reports whether the user's birth month matches now's month.
func (u *User) BirthdayThisMonth(now time.Time) bool {
	return u.DateOfBirth.Month() == now.Month()
}
