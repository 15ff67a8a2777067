package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopClipStore(t *testing.T) {
	store := NewNopClipStore()
	ctx := context.Background()

	ref, err := store.UploadClip(ctx, "job-1", "/tmp/abc.wav")
	require.NoError(t, err)
	assert.Equal(t, "clips/job-1/abc.wav", ref.Key)

	url, err := store.PresignClip(ctx, ref.Key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/storage/clips/job-1/"))

	assert.NoError(t, store.DeleteClip(ctx, ref.Key))
}

// Presigning signs locally, so no MinIO server is needed.
func TestMinioClipStore_PresignClip(t *testing.T) {
	client, err := minio.New("minio.local:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)

	store := &MinioClipStore{client: client, bucket: "evidence"}

	presigned, err := store.PresignClip(context.Background(), "clips/job-1/abc.wav")
	require.NoError(t, err)
	assert.Contains(t, presigned, "minio.local:9000/evidence/clips/job-1/abc.wav")
	assert.Contains(t, presigned, "X-Amz-Expires=3600")
}
