package usecase

import (
	"context"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// GroupUsecase defines the interface for referral group operations.
type GroupUsecase interface {
	CreateGroup(ctx context.Context, adminID uuid.UUID, input *CreateGroupInput) (*entity.Group, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	ListGroups(ctx context.Context) ([]*entity.Group, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	// ListMembers returns the member users of the caller's group. Only
	// members of the group may see the listing.
	ListMembers(ctx context.Context, callerID, groupID uuid.UUID) ([]*entity.User, error)
	// MoveAmbassador transfers an ambassador from one group to another,
	// keeping both ambassador sets and the user's back-reference in sync.
	MoveAmbassador(ctx context.Context, ambassadorID, fromGroupID, toGroupID uuid.UUID) error
	// ReplaceCoordinator swaps the group's coordinator. The outgoing
	// coordinator loses the group back-reference.
	ReplaceCoordinator(ctx context.Context, groupID, newCoordinatorID uuid.UUID) (*entity.Group, error)
	// RemoveAmbassador drops an ambassador from the group.
	RemoveAmbassador(ctx context.Context, groupID, ambassadorID uuid.UUID) (*entity.Group, error)
	// ComputeMonthlyTopSales ranks groups by their members' order value over
	// one calendar month, rewards the winning group and returns the ranking.
	ComputeMonthlyTopSales(ctx context.Context, year int, month time.Month) ([]entity.GroupSales, error)
}

// --- Input DTOs ---

// CreateGroupInput defines the data required to assemble a new group.
type CreateGroupInput struct {
	CoordinatorID uuid.UUID   `json:"coordinator_id" validate:"required"`
	AmbassadorIDs []uuid.UUID `json:"ambassador_ids" validate:"required,min=1"`
}
