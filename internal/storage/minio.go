package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"homeboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

// Gateway wraps the external object store behind the four operations the
// board needs. Object addressing and authentication stay in here.
type Gateway struct {
	client *minio.Client
	bucket string
}

// Options configures the gateway connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// publicReadPolicy grants anonymous read on every object in the bucket. The
// original board makes each uploaded file publicly readable.
const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/*"]
    }
  ]
}`

// New builds the gateway, ensuring the target bucket exists with a
// public-read policy.
func New(ctx context.Context, opts Options) (*Gateway, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client for %s: %w", opts.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errExists := client.BucketExists(ctx, opts.Bucket)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", opts.Bucket, err)
		}
	}
	if err := client.SetBucketPolicy(ctx, opts.Bucket, fmt.Sprintf(publicReadPolicy, opts.Bucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy on %s: %w", opts.Bucket, err)
	}

	log.Info().Str("endpoint", opts.Endpoint).Str("bucket", opts.Bucket).Msg("Object store connected")
	return &Gateway{client: client, bucket: opts.Bucket}, nil
}

// Upload stores the payload under a fresh uuid-based key, keeping the
// original filename in user metadata so Metadata can return a display name.
// Returns the opaque object id.
func (g *Gateway) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	objectID := uuid.New().String() + filepath.Ext(originalName)

	_, err := g.client.PutObject(ctx, g.bucket, objectID, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"Filename": originalName},
	})
	if err != nil {
		return "", fmt.Errorf("upload object %s: %w", objectID, err)
	}
	return objectID, nil
}

// Metadata returns the display name and MIME type of a stored object.
func (g *Gateway) Metadata(ctx context.Context, id string) (domain.FileInfo, error) {
	info, err := g.client.StatObject(ctx, g.bucket, id, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return domain.FileInfo{}, domain.ErrFileNotFound
		}
		return domain.FileInfo{}, fmt.Errorf("stat object %s: %w", id, err)
	}

	name := info.UserMetadata["Filename"]
	if name == "" {
		name = id
	}
	return domain.FileInfo{Name: name, MimeType: info.ContentType}, nil
}

// Stream opens a lazy byte stream for the object. The store is not contacted
// until the first Read, so transport errors can surface mid-stream; callers
// that need an early not-found must check Metadata first.
func (g *Gateway) Stream(ctx context.Context, id string) (io.ReadCloser, error) {
	obj, err := g.client.GetObject(ctx, g.bucket, id, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", id, err)
	}
	return obj, nil
}

// Delete removes the object. Deleting an already-absent object is success.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	err := g.client.RemoveObject(ctx, g.bucket, id, minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete object %s: %w", id, err)
	}
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
