package media

import (
	"context"
	"io"
	"time"
)

// URLPrefix is the public path hosted images are served from.
const URLPrefix = "/api/media/"

// BlobStore keeps the raw image bytes.
type BlobStore interface {
	Put(ctx context.Context, id, name, contentType string, data []byte) error
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

// Object is the metadata row of a hosted image.
type Object struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	URL         string    `json:"url"`
	Kind        string    `json:"kind"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}
