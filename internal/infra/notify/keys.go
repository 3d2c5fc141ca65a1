package notify

const (
	// One notification document: notif:{user_id}:{notification_id} -> JSON
	keyNotification = "notif:%s:%s"

	// Per-user index of live notification IDs: notif:user:{user_id} (ZSET scored by created-at)
	keyUserIndex = "notif:user:%s"
)
