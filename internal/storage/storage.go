package storage

import (
	"context"
)

// Client abstracts the subset of object store operations publishing needs.
type Client interface {
	UploadFile(ctx context.Context, key, filePath string, contentType string) error
	ObjectURL(key string) string
}

var (
	defaultClient Client
)

// SetDefaultClient sets the global storage client used by the application.
func SetDefaultClient(c Client) {
	defaultClient = c
}

// DefaultClient returns the global storage client if one has been configured.
func DefaultClient() Client {
	return defaultClient
}
