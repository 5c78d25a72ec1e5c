package storage

import "context"

// ObjectRef identifies a stored object and its public URL.
type ObjectRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Service defines the interface for storage operations. The wizard uses it to
// acquire and release attachment preview resources; the registration services
// use it to persist submitted documents.
type Service interface {
	Upload(ctx context.Context, folder, fileName, contentType string, data []byte) (*ObjectRef, error)
	Delete(ctx context.Context, id string) error
	DownloadURL(ctx context.Context, id string) (string, error)
}
