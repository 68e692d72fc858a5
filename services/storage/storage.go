package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores uploaded images (book covers, profile photos).
type StorageService interface {
	UploadImage(ctx context.Context, file multipart.File, destFolder, publicID string) (string, error)
	DeleteImage(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	client    *cloudinary.Cloudinary
	cloudName string
}

// NewStorageService constructs the Cloudinary-backed service.
func NewStorageService(client *cloudinary.Cloudinary, cloudName string) StorageService {
	return &CloudinaryStorageService{client: client, cloudName: cloudName}
}

// UploadImage uploads the file and returns its public HTTPS URL.
func (s *CloudinaryStorageService) UploadImage(ctx context.Context, file multipart.File, destFolder, publicID string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   destFolder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return resp.SecureURL, nil
}

// DeleteImage removes a previously uploaded image.
func (s *CloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
