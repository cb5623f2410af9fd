package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService against
// Cloudinary. Profile images live under a fixed folder keyed by user
// id, so re-uploads replace in place and the URL stays stable.
type CloudinaryStorageService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorageService builds the service from a
// CLOUDINARY_URL-style connection string.
func NewCloudinaryStorageService(cloudinaryURL string) (*CloudinaryStorageService, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld}, nil
}

func profilePublicID(userID string) string {
	return "profiles/" + userID
}

// UploadProfileImage stores the image and returns its delivery URL.
func (s *CloudinaryStorageService) UploadProfileImage(ctx context.Context, userID string, file io.Reader) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  profilePublicID(userID),
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload profile image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload returned no url for user %s", userID)
	}
	return result.SecureURL, nil
}

// DeleteProfileImage removes the user's stored image.
func (s *CloudinaryStorageService) DeleteProfileImage(ctx context.Context, userID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: profilePublicID(userID)}); err != nil {
		return fmt.Errorf("failed to delete profile image: %w", err)
	}
	return nil
}
