package repository

import (
	"context"
	"errors"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for donation persistence.
var (
	// ErrHelpAndHopeNotFound is returned when a catalog item is not found.
	ErrHelpAndHopeNotFound = errors.New("help and hope item not found")
	// ErrDonationNotFound is returned when a donation history is not found.
	ErrDonationNotFound = errors.New("donation history not found")
)

// UserDonationTotals aggregates one user's donations for leaderboard queries.
type UserDonationTotals struct {
	UserID        uuid.UUID `json:"user_id"`
	DonationCount int       `json:"donation_count"`
	CoinsDonated  float64   `json:"coins_donated"`
}

// HelpAndHopeRepository defines operations for the charitable catalog.
type HelpAndHopeRepository interface {
	// Create persists a new catalog item.
	Create(ctx context.Context, item *entity.HelpAndHopeItem) error

	// FindByID retrieves a single catalog item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HelpAndHopeItem, error)

	// FindMany retrieves the catalog items with the given IDs.
	FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.HelpAndHopeItem, error)

	// FindAll retrieves the whole catalog.
	FindAll(ctx context.Context) ([]*entity.HelpAndHopeItem, error)

	// Update modifies an existing catalog item.
	Update(ctx context.Context, item *entity.HelpAndHopeItem) error

	// Delete removes a catalog item.
	Delete(ctx context.Context, id uuid.UUID) error
}

// DonationRepository defines operations for donation history persistence.
type DonationRepository interface {
	// Create persists a new donation history with its lines.
	Create(ctx context.Context, history *entity.DonationHistory) error

	// FindByID retrieves a single donation history by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DonationHistory, error)

	// FindByUser retrieves all donation histories of the user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.DonationHistory, error)

	// FindAll retrieves every donation history, newest first.
	FindAll(ctx context.Context) ([]*entity.DonationHistory, error)

	// FindBetween retrieves donation histories created in [from, to).
	FindBetween(ctx context.Context, from, to time.Time) ([]*entity.DonationHistory, error)

	// Delete removes a donation history.
	Delete(ctx context.Context, id uuid.UUID) error

	// TopUsersByDonationCount ranks users by number of donations, descending.
	TopUsersByDonationCount(ctx context.Context) ([]UserDonationTotals, error)

	// TopUsersByCoinsDonated ranks users by summed coins donated, descending.
	TopUsersByCoinsDonated(ctx context.Context) ([]UserDonationTotals, error)
}
