package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"gamecatalog/pkg/logger"
)

const signedURLTTL = time.Hour

// CloudStorageClient resolves game image references stored as bucket paths.
type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	signed     bool
}

// NewCloudStorageClient opens the bucket. When signed is true image links are
// V4 signed URLs, which private buckets need; otherwise public object URLs.
func NewCloudStorageClient(ctx context.Context, bucketName string, signed bool, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		signed:     signed,
	}, nil
}

// ResolveImageURL returns ref unchanged when it is already an absolute URL.
func (c *CloudStorageClient) ResolveImageURL(ref string) string {
	object, ok := ObjectPath(ref)
	if !ok {
		return ref
	}
	if !c.signed {
		return PublicObjectURL(c.bucketName, object)
	}

	url, err := c.client.Bucket(c.bucketName).SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(signedURLTTL),
	})
	if err != nil {
		logger.Warn("Failed to sign image URL for %s: %v", object, err)
		return PublicObjectURL(c.bucketName, object)
	}
	return url
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

// ObjectPath extracts the object name from a stored image reference. Paths
// under "public/images/" are stored without the "public/" segment.
func ObjectPath(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return "", false
	}
	ref = strings.TrimPrefix(ref, "/")
	ref = strings.TrimPrefix(ref, "public/")
	return ref, ref != ""
}

func PublicObjectURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}
