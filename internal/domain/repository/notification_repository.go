package repository

import (
	"context"
	"errors"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotificationNotFound is returned when a notification is not found or has
// already expired.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the interface for the ephemeral notification
// store. Entries auto-expire after entity.NotificationTTL; the store is not
// an audit log.
type NotificationRepository interface {
	// Create persists a notification for its TTL window.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByUser retrieves the user's live notifications, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)

	// ExistsByMessage reports whether a live notification with this exact
	// message string exists for the user. De-duplication is by message
	// string, not by subject identifier; see the low-stock alert notes.
	ExistsByMessage(ctx context.Context, userID uuid.UUID, message string) (bool, error)

	// MarkRead flags one of the user's notifications as read.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}
