// Package mirror copies published article records and images to an S3
// bucket so the blog content survives independently of the web host.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"os"
	"path"

	"courtside/blog"
	"courtside/types"
)

// Mirror writes copies of published records into an S3 bucket under a
// configurable key prefix.
type Mirror struct {
	store  *S3
	bucket string
	prefix string
}

// NewFromEnv builds a Mirror from S3_BUCKET / S3_PREFIX / AWS_REGION.
// Returns nil (no mirroring) when S3_BUCKET is unset.
func NewFromEnv(ctx context.Context) (*Mirror, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	store, err := NewS3(ctx, S3Config{Region: os.Getenv("AWS_REGION")})
	if err != nil {
		return nil, err
	}

	return &Mirror{
		store:  store,
		bucket: bucket,
		prefix: os.Getenv("S3_PREFIX"),
	}, nil
}

// Hook returns a publish hook that mirrors the record JSON to S3.
// Mirror failures are logged, never propagated: the publish already succeeded.
func (m *Mirror) Hook() blog.Hook {
	return func(record types.ArticleRecord, info types.UploadInfo) {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			log.Printf("mirror: marshal record %s: %v", record.Slug, err)
			return
		}

		key := path.Join(m.prefix, info.Filename)
		if err := m.store.Put(context.Background(), m.bucket, key, bytes.NewReader(data), "application/json"); err != nil {
			log.Printf("mirror: put %s: %v", key, err)
			return
		}
		log.Printf("mirror: copied record to s3://%s/%s", m.bucket, key)
	}
}

// PutImage copies an image file's bytes to the bucket under images/<name>.
// A name already mirrored is skipped; header images are keyed by slug, so
// the copy from the first successful publish stands.
func (m *Mirror) PutImage(ctx context.Context, name string, data []byte) error {
	key := path.Join(m.prefix, "images", name)
	if exists, err := m.store.Exists(ctx, m.bucket, key); err == nil && exists {
		return nil
	}
	return m.store.Put(ctx, m.bucket, key, bytes.NewReader(data), "image/png")
}
