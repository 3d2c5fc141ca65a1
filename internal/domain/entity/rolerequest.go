package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RoleRequestStatus is the review state of a role escalation request.
// pending -> approved | rejected, both terminal.
type RoleRequestStatus string

const (
	RoleRequestPending  RoleRequestStatus = "pending"
	RoleRequestApproved RoleRequestStatus = "approved"
	RoleRequestRejected RoleRequestStatus = "rejected"
)

// IsValid checks if the RoleRequestStatus is a valid value.
func (s RoleRequestStatus) IsValid() bool {
	switch s {
	case RoleRequestPending, RoleRequestApproved, RoleRequestRejected:
		return true
	default:
		return false
	}
}

// Resolved reports whether the request has reached a terminal state.
func (s RoleRequestStatus) Resolved() bool {
	return s == RoleRequestApproved || s == RoleRequestRejected
}

// RoleRequest is a user's application for a higher role. Admin approval is
// the only path that mutates User.Role upward.
type RoleRequest struct {
	ID        uuid.UUID         `json:"id"`
	UserID    uuid.UUID         `json:"user_id"`
	Message   string            `json:"message"`
	Status    RoleRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TargetRole derives the requested role from the request message: a mention
// of "ambassador" targets that role, anything else targets coordinator.
func (r *RoleRequest) TargetRole() Role {
	if strings.Contains(strings.ToLower(r.Message), string(RoleAmbassador)) {
		return RoleAmbassador
	}

	return RoleCoordinator
}
