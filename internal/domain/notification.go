package domain

// NotificationType identifica el evento que origina la notificación.
type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationUnlike  NotificationType = "UNLIKE"
	NotificationComment NotificationType = "COMMENT"
)

type Notification struct {
	SenderID   string           `json:"sender_id"`
	ReceiverID string           `json:"receiver_id"`
	Type       NotificationType `json:"type"`
}
