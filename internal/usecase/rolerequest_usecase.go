package usecase

import (
	"context"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleRequestUsecase defines the interface for role escalation operations.
type RoleRequestUsecase interface {
	// Submit files a role escalation request. Only users and ambassadors may
	// request, one pending request at a time; an ambassador must have spent
	// at least the coordinator threshold over done orders.
	Submit(ctx context.Context, userID uuid.UUID, message string) (*entity.RoleRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (*entity.RoleRequest, error)
	ListRequests(ctx context.Context) ([]*entity.RoleRequest, error)
	ListByStatus(ctx context.Context, status entity.RoleRequestStatus) ([]*entity.RoleRequest, error)
	// Resolve approves or rejects a pending request. Approval promotes the
	// user to the role the request message targets.
	Resolve(ctx context.Context, id uuid.UUID, status entity.RoleRequestStatus) (*entity.RoleRequest, error)
	// DeleteRequest removes a resolved request; pending requests stay.
	DeleteRequest(ctx context.Context, id uuid.UUID) error
}
