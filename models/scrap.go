package models

import "time"

// Scrap records that a user bookmarked a notice. The (UserID, NoticeID)
// pair is the identity; existence is the whole state.
type Scrap struct {
	UserID    string    `json:"userId" bson:"userId"`
	NoticeID  string    `json:"noticeId" bson:"noticeId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
