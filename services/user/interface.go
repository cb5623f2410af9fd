package user

import (
	"context"
	"io"

	"smatching/models"
)

// SignUpInput is the registration payload.
type SignUpInput struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthSession is the result of a successful sign-in.
type AuthSession struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService manages accounts, sessions, and the per-user
// notification tab.
type UserService interface {
	// SignUp registers a new account and opens a session for it.
	SignUp(input SignUpInput) (*AuthSession, error)
	// SignIn checks the credentials and opens a session.
	SignIn(email, password string) (*AuthSession, error)
	// SignOut revokes the user's cached session token.
	SignOut(userID string) error
	// GetByID loads an account.
	GetByID(userID string) (*models.User, error)
	// Delete removes the account and revokes its session.
	Delete(userID string) error
	// UpdateFCMToken stores the device push token.
	UpdateFCMToken(userID, token string) error
	// Notifications returns the user's notification log, newest first,
	// and marks everything read as a side effect of opening the tab.
	Notifications(userID string) ([]models.Notification, error)
	// UncheckedCount reports how many notifications are unread, for the
	// badge.
	UncheckedCount(userID string) (int, error)
	// UpdateProfileImage stores a new profile picture and returns its URL.
	UpdateProfileImage(ctx context.Context, userID string, file io.Reader) (string, error)
	// RemoveProfileImage deletes the profile picture.
	RemoveProfileImage(ctx context.Context, userID string) error
}
