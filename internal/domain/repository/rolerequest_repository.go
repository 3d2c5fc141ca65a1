package repository

import (
	"context"
	"errors"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleRequestNotFound is returned when a role request is not found.
var ErrRoleRequestNotFound = errors.New("role request not found")

// RoleRequestRepository defines operations for role request persistence.
type RoleRequestRepository interface {
	// Create persists a new role request.
	Create(ctx context.Context, request *entity.RoleRequest) error

	// FindByID retrieves a single role request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RoleRequest, error)

	// FindAll retrieves every role request, newest first.
	FindAll(ctx context.Context) ([]*entity.RoleRequest, error)

	// FindByStatus retrieves all role requests in the given status.
	FindByStatus(ctx context.Context, status entity.RoleRequestStatus) ([]*entity.RoleRequest, error)

	// FindPendingByUser retrieves the user's pending request, if any.
	FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.RoleRequest, error)

	// Update modifies an existing role request.
	Update(ctx context.Context, request *entity.RoleRequest) error

	// Delete removes a role request.
	Delete(ctx context.Context, id uuid.UUID) error
}
