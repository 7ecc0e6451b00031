package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, bucketName string) (*StorageBucket, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		client.Bucket(bucketName),
		bucketName,
	}, nil
}

// Put writes the bytes under a fresh object name below prefix and returns the
// public URL. The core only passes bytes through; it never interprets them.
func (sb *StorageBucket) Put(ctx context.Context, data []byte, contentType, prefix string) (string, error) {
	blobName := fmt.Sprintf("%s/%s", prefix, uuid.NewString())
	writer := sb.Object(blobName).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", sb.name, blobName), nil
}
