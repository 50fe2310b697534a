package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// UploadImage stores a product image publicly and returns its URL.
func (c *CloudStorageClient) UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	filename := fmt.Sprintf("products/%s-%s", uuid.New().String(), time.Now().Format("20060102150405"))

	switch contentType {
	case "image/jpeg", "image/jpg":
		filename += ".jpg"
	case "image/png":
		filename += ".png"
	case "image/gif":
		filename += ".gif"
	case "image/webp":
		filename += ".webp"
	default:
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}

	obj := c.client.Bucket(c.bucketName).Object(filename)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to storage: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, filename), nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
