// Package storage archives evidence clips in object storage so resolved
// identities can be audited after the scratch workspace is gone.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"meetscribe/internal/config"
)

// ClipStore persists evidence audio clips keyed by job.
type ClipStore interface {
	UploadClip(ctx context.Context, jobID string, localPath string) (*ClipRef, error)
	PresignClip(ctx context.Context, key string) (string, error)
	DeleteClip(ctx context.Context, key string) error
}

// ClipRef identifies an archived clip.
type ClipRef struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MinioClipStore implements ClipStore backed by MinIO.
type MinioClipStore struct {
	client *minio.Client
	bucket string
}

// NewMinioClipStore connects to MinIO using the process environment and
// ensures the clip bucket exists.
func NewMinioClipStore(env *config.Env) (*MinioClipStore, error) {
	client, err := minio.New(env.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(env.MinioAccess, env.MinioSecret, ""),
		Secure: env.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinioClipStore{
		client: client,
		bucket: env.MinioBucket,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, store.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// UploadClip stores a local WAV file under clips/<jobID>/<uuid>.wav.
func (s *MinioClipStore) UploadClip(ctx context.Context, jobID string, localPath string) (*ClipRef, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat clip: %w", err)
	}

	key := fmt.Sprintf("clips/%s/%s%s", jobID, uuid.New().String(), filepath.Ext(localPath))

	_, err = s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "audio/wav",
		UserMetadata: map[string]string{
			"job-id":      jobID,
			"uploaded-at": time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload clip: %w", err)
	}

	return &ClipRef{
		Key:        key,
		Size:       info.Size(),
		UploadedAt: time.Now(),
	}, nil
}

// PresignClip returns a time-limited download URL for an archived clip.
func (s *MinioClipStore) PresignClip(ctx context.Context, key string) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, time.Hour, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presigned.String(), nil
}

// DeleteClip removes an archived clip.
func (s *MinioClipStore) DeleteClip(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}
	return nil
}

// NopClipStore discards clips, for deployments without object storage.
type NopClipStore struct{}

func NewNopClipStore() *NopClipStore {
	return &NopClipStore{}
}

func (s *NopClipStore) UploadClip(ctx context.Context, jobID string, localPath string) (*ClipRef, error) {
	return &ClipRef{
		Key:        fmt.Sprintf("clips/%s/%s", jobID, filepath.Base(localPath)),
		UploadedAt: time.Now(),
	}, nil
}

func (s *NopClipStore) PresignClip(ctx context.Context, key string) (string, error) {
	return "/storage/" + key, nil
}

func (s *NopClipStore) DeleteClip(ctx context.Context, key string) error {
	return nil
}
