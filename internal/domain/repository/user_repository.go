package repository

import (
	"context"
	"errors"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrInsufficientCoins is returned by DebitCoins when the balance guard fails.
var ErrInsufficientCoins = errors.New("insufficient coins")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll retrieves every user account.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindByRole retrieves all users holding the given role.
	FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// FindUnassignedByRole retrieves users of the role that belong to no group.
	FindUnassignedByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// FindByBirthMonth retrieves users whose birthday falls in the month.
	FindByBirthMonth(ctx context.Context, month time.Month) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user from the storage.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddCoins credits the user's coin balance by delta in a single write.
	AddCoins(ctx context.Context, id uuid.UUID, delta float64) error

	// DebitCoins subtracts amount from the balance in one conditional write
	// guarded by coins_earned >= amount, so concurrent debits cannot drive
	// the balance negative. Returns ErrInsufficientCoins when the guard
	// fails; callers verify the user exists beforehand.
	DebitCoins(ctx context.Context, id uuid.UUID, amount float64) error

	// SetGroup points each user's group back-reference at groupID
	// (nil clears it). Keeps User.GroupID in sync with group membership.
	SetGroup(ctx context.Context, userIDs []uuid.UUID, groupID *uuid.UUID) error

	// CreditGroupDiscount grants each user the given percentage balance,
	// replacing whatever balance was there before.
	CreditGroupDiscount(ctx context.Context, userIDs []uuid.UUID, percent float64) error
}
