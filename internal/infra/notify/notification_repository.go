package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"smarket/internal/domain/entity"
	"smarket/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// notificationRepository implements repository.NotificationRepository on Redis.
// Each notification lives under its own key with a TTL; a per-user ZSET holds
// the index, scored by creation time. Index members may outlive their expired
// documents, so reads drop and prune dangling members.
type notificationRepository struct {
	client *redis.Client
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(client *redis.Client) repository.NotificationRepository {
	return &notificationRepository{
		client: client,
	}
}

// Create persists a notification for its TTL window.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification")
	}

	key := fmt.Sprintf(keyNotification, notification.UserID, notification.ID)
	indexKey := fmt.Sprintf(keyUserIndex, notification.UserID)

	pipe := repo.client.TxPipeline()
	pipe.Set(ctx, key, payload, entity.NotificationTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(notification.CreatedAt.UnixNano()),
		Member: notification.ID.String(),
	})
	// The index only needs to survive as long as its newest entry.
	pipe.Expire(ctx, indexKey, entity.NotificationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store notification")
	}

	return nil
}

// FindByUser retrieves the user's live notifications, newest first.
func (repo *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	indexKey := fmt.Sprintf(keyUserIndex, userID)

	ids, err := repo.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read notification index")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(keyNotification, userID, id))
	}

	values, err := repo.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load notifications")
	}

	notifications := make([]*entity.Notification, 0, len(values))
	var stale []any
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Document expired before its index member; prune it.
			stale = append(stale, ids[i])

			continue
		}

		var notification entity.Notification
		if err := json.Unmarshal([]byte(raw), &notification); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal notification")
		}
		notifications = append(notifications, &notification)
	}

	if len(stale) > 0 {
		if err := repo.client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			return nil, errors.Wrap(err, "failed to prune notification index")
		}
	}

	return notifications, nil
}

// ExistsByMessage reports whether a live notification with this exact message
// string exists for the user.
func (repo *notificationRepository) ExistsByMessage(ctx context.Context, userID uuid.UUID, message string) (bool, error) {
	notifications, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, notification := range notifications {
		if notification.Message == message {
			return true, nil
		}
	}

	return false, nil
}

// MarkRead flags one of the user's notifications as read, keeping its TTL.
func (repo *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	key := fmt.Sprintf(keyNotification, userID, notificationID)

	raw, err := repo.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return repository.ErrNotificationNotFound
		}

		return errors.Wrap(err, "failed to load notification")
	}

	var notification entity.Notification
	if err := json.Unmarshal([]byte(raw), &notification); err != nil {
		return errors.Wrap(err, "failed to unmarshal notification")
	}
	if notification.IsRead {
		return nil
	}
	notification.IsRead = true

	payload, err := json.Marshal(&notification)
	if err != nil {
		return errors.Wrap(err, "failed to marshal notification")
	}

	// KeepTTL preserves the remaining expiry window of the original write.
	if err := repo.client.Set(ctx, key, payload, redis.KeepTTL).Err(); err != nil {
		return errors.Wrap(err, "failed to update notification")
	}

	return nil
}
