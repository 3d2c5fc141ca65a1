package entity

import (
	"time"

	"github.com/google/uuid"
)

// HelpAndHopeTheme classifies a charitable catalog entry.
type HelpAndHopeTheme string

const (
	ThemeMedicine HelpAndHopeTheme = "medicine"
	ThemeSchool   HelpAndHopeTheme = "school"
	ThemeWedding  HelpAndHopeTheme = "wedding"
	ThemeEid      HelpAndHopeTheme = "eid"
	ThemeRamadan  HelpAndHopeTheme = "ramadan"
	ThemeWinter   HelpAndHopeTheme = "winter"
)

// IsValid checks if the HelpAndHopeTheme is a valid value.
func (t HelpAndHopeTheme) IsValid() bool {
	switch t {
	case ThemeMedicine, ThemeSchool, ThemeWedding, ThemeEid, ThemeRamadan, ThemeWinter:
		return true
	default:
		return false
	}
}

// Image returns the catalog illustration for the theme.
func (t HelpAndHopeTheme) Image() string {
	switch t {
	case ThemeMedicine:
		return "medicine.gif"
	case ThemeSchool:
		return "school.gif"
	case ThemeWedding:
		return "wedding.gif"
	case ThemeRamadan:
		return "ramadan.gif"
	case ThemeWinter:
		return "winter.gif"
	default:
		return "eid.png"
	}
}

// HelpAndHopeItem is a themed charitable catalog entry purchasable only with coins.
type HelpAndHopeItem struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Coins     float64          `json:"coins"`
	Theme     HelpAndHopeTheme `json:"theme"`
	Image     string           `json:"image"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DonationLine is one donated catalog item with its coin total.
type DonationLine struct {
	ItemID     uuid.UUID `json:"item_id"`
	Quantity   int       `json:"quantity"`
	TotalCoins float64   `json:"total_coins"`
}

// DonationHistory records one completed donation: the donated lines and the
// total coin spend debited from the user.
type DonationHistory struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Lines        []DonationLine `json:"order_donation"`
	CoinsDonated float64        `json:"coins_donated"`
	CreatedAt    time.Time      `json:"created_at"`
}
