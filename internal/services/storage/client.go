package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"lectern/internal/config"
)

// Client wraps an S3-compatible object store holding raw newsletter
// messages, episode audio, and feed XML.
type Client struct {
	api    *minio.Client
	bucket string
}

// NewClient connects to the object store described by the storage
// configuration section.
func NewClient(cfg *config.Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Storage.Endpoint)
	if endpoint == "" {
		return nil, errors.New("storage: endpoint required")
	}
	api, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
		Region: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("storage: connect %s: %w", endpoint, err)
	}
	return &Client{api: api, bucket: cfg.Storage.Bucket}, nil
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

// GetBytes downloads an object into memory.
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

// PutBytes uploads an in-memory object under the given key.
func (c *Client) PutBytes(ctx context.Context, key string, data []byte, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.api.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

// UploadFile streams a local file into the bucket under the given key.
func (c *Client) UploadFile(ctx context.Context, localPath, key, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.api.FPutObject(ctx, c.bucket, key, localPath, opts); err != nil {
		return fmt.Errorf("storage: upload %s to %s: %w", localPath, key, err)
	}
	return nil
}

// ObjectSize returns the stored size of an object in bytes.
func (c *Client) ObjectSize(ctx context.Context, key string) (int64, error) {
	info, err := c.api.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("storage: stat %s: %w", key, err)
	}
	return info.Size, nil
}
