package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"dampit-rental/pkg/utils"
)

// MaxUploadSize caps avatar/KTP uploads at 5MB.
const MaxUploadSize = 5 << 20

// ObjectStorage uploads user documents and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, folder, objectName, contentType string, r io.Reader) (string, error)
}

type gcsStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage connects to Google Cloud Storage using a service
// account key file.
func NewGCSStorage(ctx context.Context, config utils.StorageConfig) (ObjectStorage, error) {
	client, err := gcs.NewClient(ctx, option.WithCredentialsFile(config.KeyFile))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &gcsStorage{
		client: client,
		bucket: config.Bucket,
	}, nil
}

func (g *gcsStorage) Upload(ctx context.Context, folder, objectName, contentType string, r io.Reader) (string, error) {
	object := fmt.Sprintf("%s/%s", folder, objectName)
	writer := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("upload object %s: %w", object, err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finish upload %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, object), nil
}
