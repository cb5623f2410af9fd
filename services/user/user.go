package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	condRepo "smatching/database/repository/condition"
	notifRepo "smatching/database/repository/notification"
	userRepo "smatching/database/repository/user"
	"smatching/models"
	"smatching/services/storage"
	"smatching/utils"
)

const sessionTTL = 72 * time.Hour

// DefaultUserService is the production implementation. Sessions are
// JWTs whose hash is pinned in the auth cache, so sign-out and account
// deletion can revoke them before expiry.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	CondRepo  condRepo.ConditionRepository
	NotifRepo notifRepo.NotificationRepository
	Storage   storage.StorageService
}

// SignUp registers a new account and opens a session for it.
func (s *DefaultUserService) SignUp(input SignUpInput) (*AuthSession, error) {
	existing, err := s.Repo.GetByEmail(input.Email)
	if err != nil {
		return nil, utils.StorageErr("failed to check email", err)
	}
	if existing != nil {
		return nil, utils.InvalidStateErr("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	usr := &models.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, utils.StorageErr("failed to create user", err)
	}

	return s.openSession(usr)
}

// SignIn checks the credentials and opens a session.
func (s *DefaultUserService) SignIn(email, password string) (*AuthSession, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, utils.StorageErr("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.UnauthorizedErr("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, utils.UnauthorizedErr("invalid email or password")
	}
	return s.openSession(usr)
}

// openSession issues the JWT and pins its hash in the auth cache so the
// middleware can reject superseded tokens.
func (s *DefaultUserService) openSession(usr *models.User) (*AuthSession, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(ctx, key, utils.HashToken(token), sessionTTL).Err(); err != nil {
		utils.GetLogger().Sugar().Warnw("failed to cache session token", "userId", usr.ID, "error", err)
	}

	return &AuthSession{User: usr, Token: token}, nil
}

// SignOut revokes the user's cached session token.
func (s *DefaultUserService) SignOut(userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return utils.StorageErr("failed to revoke session", err)
	}
	return nil
}

// GetByID loads an account.
func (s *DefaultUserService) GetByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to load user", err)
	}
	if usr == nil {
		return nil, utils.NotFoundErr("user not found")
	}
	return usr, nil
}

// Delete removes the account, its conditions, and its session.
func (s *DefaultUserService) Delete(userID string) error {
	conds, err := s.CondRepo.ListByUser(userID)
	if err != nil {
		return utils.StorageErr("failed to list conditions", err)
	}
	for _, c := range conds {
		if err := s.CondRepo.Delete(userID, c.ID); err != nil {
			return utils.StorageErr("failed to delete condition", err)
		}
	}

	if err := s.Repo.Delete(userID); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return utils.NotFoundErr("user not found")
		}
		return utils.StorageErr("failed to delete user", err)
	}

	if err := s.SignOut(userID); err != nil {
		utils.GetLogger().Sugar().Warnw("failed to revoke session of deleted user",
			"userId", userID, "error", err)
	}
	return nil
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(userID, token string) error {
	if err := s.Repo.SetFCMToken(userID, token); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return utils.NotFoundErr("user not found")
		}
		return utils.StorageErr("failed to store push token", err)
	}
	return nil
}

// Notifications returns the log newest first. Opening the tab marks
// everything read; a failed mark is logged and the list still returns.
func (s *DefaultUserService) Notifications(userID string) ([]models.Notification, error) {
	list, err := s.NotifRepo.ListByUser(userID)
	if err != nil {
		return nil, utils.StorageErr("failed to list notifications", err)
	}
	if err := s.NotifRepo.MarkAllChecked(userID); err != nil {
		utils.GetLogger().Sugar().Warnw("failed to mark notifications read",
			"userId", userID, "error", err)
	}
	return list, nil
}

// UncheckedCount reports how many notifications are unread.
func (s *DefaultUserService) UncheckedCount(userID string) (int, error) {
	cnt, err := s.NotifRepo.CountUnchecked(userID)
	if err != nil {
		return 0, utils.StorageErr("failed to count notifications", err)
	}
	return cnt, nil
}

// UpdateProfileImage stores a new profile picture and records its URL.
func (s *DefaultUserService) UpdateProfileImage(ctx context.Context, userID string, file io.Reader) (string, error) {
	if _, err := s.GetByID(userID); err != nil {
		return "", err
	}

	url, err := s.Storage.UploadProfileImage(ctx, userID, file)
	if err != nil {
		return "", utils.StorageErr("failed to upload profile image", err)
	}
	if err := s.Repo.SetProfileURL(userID, url); err != nil {
		return "", utils.StorageErr("failed to store profile url", err)
	}
	return url, nil
}

// RemoveProfileImage deletes the profile picture and clears its URL.
func (s *DefaultUserService) RemoveProfileImage(ctx context.Context, userID string) error {
	if err := s.Storage.DeleteProfileImage(ctx, userID); err != nil {
		return utils.StorageErr("failed to delete profile image", err)
	}
	if err := s.Repo.SetProfileURL(userID, ""); err != nil {
		return utils.StorageErr("failed to clear profile url", err)
	}
	return nil
}
