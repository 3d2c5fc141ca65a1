package usecase

import (
	"context"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase defines the interface for the ephemeral notification
// feed and the admin campaign blasts.
type NotificationUsecase interface {
	ListUserNotifications(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// NotifyAmbassadorEligibility invites every plain user to apply for the
	// ambassador role. Returns the number of notifications sent.
	NotifyAmbassadorEligibility(ctx context.Context) (int, error)
	// NotifyCoordinatorEligibility congratulates every ambassador whose done
	// order spend crossed the coordinator threshold.
	NotifyCoordinatorEligibility(ctx context.Context) (int, error)
	// NotifyFirstOrderDiscount reminds users with no orders of the first
	// order discount.
	NotifyFirstOrderDiscount(ctx context.Context) (int, error)
}
