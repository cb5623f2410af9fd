package notifRepo

import "smatching/models"

// NotificationRepository defines data access for the append-only
// notification log.
type NotificationRepository interface {
	// Create appends a notification record.
	Create(n *models.Notification) error
	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(userID string) ([]models.Notification, error)
	// CountUnchecked reports how many of the user's notifications are unread.
	CountUnchecked(userID string) (int, error)
	// MarkAllChecked marks every notification of the user as read.
	MarkAllChecked(userID string) error
}
