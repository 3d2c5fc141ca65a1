package repository

import (
	"context"
	"errors"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGroupNotFound is returned when a group is not found.
var ErrGroupNotFound = errors.New("group not found")

// GroupRepository defines the standard operations for group persistence.
type GroupRepository interface {
	// Create persists a new group.
	Create(ctx context.Context, group *entity.Group) error

	// FindByID retrieves a single group by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)

	// FindAll retrieves every group.
	FindAll(ctx context.Context) ([]*entity.Group, error)

	// Update modifies an existing group (coordinator, ambassador set).
	Update(ctx context.Context, group *entity.Group) error

	// Delete removes a group from the storage.
	Delete(ctx context.Context, id uuid.UUID) error
}
