package models

import "time"

// User is an account holder. TalkAlert is a plain user-scoped flag with
// no interaction with the per-condition alert exclusivity rule.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	Nickname     string    `json:"nickname" bson:"nickname"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	ProfileURL   string    `json:"profileUrl" bson:"profileUrl"`
	FCMToken     string    `json:"-" bson:"fcmToken"`
	TalkAlert    bool      `json:"talkAlert" bson:"talkAlert"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AlertSettings is the aggregate alert state shown on the settings
// screen: condAlert is true when any of the user's conditions has its
// alert flag on.
type AlertSettings struct {
	CondAlert bool `json:"condAlert"`
	TalkAlert bool `json:"talkAlert"`
}
