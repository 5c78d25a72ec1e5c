package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryService implements Service using Cloudinary.
type CloudinaryService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryService creates a Cloudinary-backed storage service.
func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld, cloudName: cloudName}, nil
}

// Upload stores the blob in the given folder and returns its public ID and URL.
func (s *CloudinaryService) Upload(ctx context.Context, folder, fileName, contentType string, data []byte) (*ObjectRef, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   folder,
		PublicID: fileName,
	})
	if err != nil {
		return nil, fmt.Errorf("CloudinaryService: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryService: no public ID returned")
	}
	return &ObjectRef{ID: result.PublicID, URL: result.SecureURL}, nil
}

// Delete removes a stored object given its public ID.
func (s *CloudinaryService) Delete(ctx context.Context, id string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: id})
	if err != nil {
		return fmt.Errorf("CloudinaryService: failed to delete file: %w", err)
	}
	return nil
}

// DownloadURL constructs a public URL for a stored object.
func (s *CloudinaryService) DownloadURL(ctx context.Context, id string) (string, error) {
	a, err := s.cld.Image(id)
	if err != nil {
		return "", fmt.Errorf("CloudinaryService: failed to get asset: %w", err)
	}
	url, err := a.String()
	if err != nil {
		return "", fmt.Errorf("CloudinaryService: failed to get URL string: %w", err)
	}
	return url, nil
}
