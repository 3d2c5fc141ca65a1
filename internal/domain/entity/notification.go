package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTTL is how long a notification stays visible. Notifications are
// ephemeral UX signals, not an audit log.
const NotificationTTL = 24 * time.Hour

// Notification is a short-lived message addressed to one user.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
