package usecase

import (
	"context"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// UserUsecase defines the interface for account-related business operations.
type UserUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	// ListUnassignedByRole lists users of the role that belong to no group,
	// the candidate pool for group composition.
	ListUnassignedByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
	ListByBirthMonth(ctx context.Context, month time.Month) ([]*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// AdjustCoins changes a user's coin balance by delta, admin only.
	AdjustCoins(ctx context.Context, id uuid.UUID, delta float64) (*entity.User, error)
}

// --- Input DTOs ---

// UpdateProfileInput defines the profile fields a user may change. Role,
// coins and group membership are never settable here.
type UpdateProfileInput struct {
	Name        *string    `json:"name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Addresses   []string   `json:"address,omitempty"`
	Avatar      *string    `json:"avatar,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}
