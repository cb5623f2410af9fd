package models

import "time"

// AlertType distinguishes the two alert events the system emits.
type AlertType string

const (
	AlertNewNotice     AlertType = "NewNotice"
	AlertThreeDaysLeft AlertType = "ThreeDaysLeft"
)

// Notification is one alert event, appended when a scan or a
// notice-creation fan-out fires. Message carries the notice title at
// the time of firing. Records are write-once; Checked flips when the
// user opens the notification tab.
type Notification struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"userId" bson:"userId"`
	NoticeID  string    `json:"noticeId" bson:"noticeId"`
	Type      AlertType `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	Checked   bool      `json:"checked" bson:"checked"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// PushPayload is the asynq task body for one push delivery.
type PushPayload struct {
	UserID   string `json:"userId"`
	NoticeID string `json:"noticeId"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}
