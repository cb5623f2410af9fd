package userRepo

import (
	"errors"

	"smatching/models"
)

// ErrNotFound is returned by write operations whose target user does
// not exist.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by id, or nil when absent.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email address, or nil when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its id.
	Delete(id string) error
	// SetTalkAlert flips the user's talk-alert flag.
	SetTalkAlert(id string, on bool) error
	// SetProfileURL stores the user's profile picture URL.
	SetProfileURL(id, url string) error
	// SetFCMToken stores the user's push token.
	SetFCMToken(id, token string) error
}
