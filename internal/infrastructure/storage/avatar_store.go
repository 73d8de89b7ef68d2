package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/oksasatya/go-travel-assistant/internal/domain/gateway"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
)

// GCSAvatarStore writes avatars into a publicly readable bucket.
type GCSAvatarStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSAvatarStore(client *gcs.Client, bucket string) *GCSAvatarStore {
	return &GCSAvatarStore{client: client, bucket: bucket}
}

func (s *GCSAvatarStore) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if s == nil || s.client == nil || s.bucket == "" {
		return "", errors.New("gcs not configured")
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, objectPath, contentType, r)
}

var _ gateway.AvatarStore = (*GCSAvatarStore)(nil)
