package usecase

import (
	"context"
	"time"

	"smarket/internal/domain/entity"
	"smarket/internal/domain/repository"

	"github.com/google/uuid"
)

// HelpAndHopeUsecase defines the interface for the charitable catalog.
type HelpAndHopeUsecase interface {
	CreateItem(ctx context.Context, input *HelpAndHopeInput) (*entity.HelpAndHopeItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, input *HelpAndHopeInput) (*entity.HelpAndHopeItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*entity.HelpAndHopeItem, error)
	ListItems(ctx context.Context) ([]*entity.HelpAndHopeItem, error)
}

// DonationUsecase defines the interface for coin-funded donations.
type DonationUsecase interface {
	// Donate debits the user's coin balance and records the donation in one
	// transaction. A balance short of the total fails with no debit.
	Donate(ctx context.Context, userID uuid.UUID, input *DonateInput) (*entity.DonationHistory, error)
	GetDonation(ctx context.Context, id uuid.UUID) (*entity.DonationHistory, error)
	ListUserDonations(ctx context.Context, userID uuid.UUID) ([]*entity.DonationHistory, error)
	ListAllDonations(ctx context.Context) ([]*entity.DonationHistory, error)
	MonthlyDonations(ctx context.Context, year int, month time.Month) ([]*entity.DonationHistory, error)
	DeleteDonation(ctx context.Context, id uuid.UUID) error
	TopDonorsByCount(ctx context.Context) ([]repository.UserDonationTotals, error)
	TopDonorsByCoins(ctx context.Context) ([]repository.UserDonationTotals, error)
}

// --- Input DTOs ---

// HelpAndHopeInput defines the data required to create or update a catalog
// item. The image is derived from the theme when left empty.
type HelpAndHopeInput struct {
	Title string                  `json:"title" validate:"required"`
	Coins float64                 `json:"coins" validate:"required,gt=0"`
	Theme entity.HelpAndHopeTheme `json:"theme" validate:"required"`
	Image string                  `json:"image"`
}

// DonationLineInput is one requested catalog item in a donation.
type DonationLineInput struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
}

// DonateInput defines the data required to donate.
type DonateInput struct {
	Lines []DonationLineInput `json:"order_donation" validate:"required,min=1,dive"`
}
