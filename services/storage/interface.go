package storage

import (
	"context"
	"io"
)

// StorageService stores user profile images in an external media store.
type StorageService interface {
	// UploadProfileImage stores the image under a stable per-user key
	// and returns its public URL. A second upload for the same user
	// overwrites the first.
	UploadProfileImage(ctx context.Context, userID string, file io.Reader) (string, error)
	// DeleteProfileImage removes the user's stored image, if any.
	DeleteProfileImage(ctx context.Context, userID string) error
}
