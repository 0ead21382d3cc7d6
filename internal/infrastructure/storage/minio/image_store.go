package minio

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

const pngContentType = "image/png"

var ErrUploadFailed = errors.New(errors.ErrCodeExternalService, "image upload failed")

// ImageStore uploads rendered depictions into the configured bucket.
type ImageStore struct {
	client *Client
	logger logging.Logger
}

func NewImageStore(client *Client, log logging.Logger) *ImageStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ImageStore{client: client, logger: log.Named("image_store")}
}

var _ molgen.ImageStore = (*ImageStore)(nil)

// Put stores png under key and returns the "<bucket>/<key>" location.
func (s *ImageStore) Put(ctx context.Context, key string, png []byte) (string, error) {
	if s.client.isClosed() {
		return "", ErrClientClosed
	}
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", errors.InvalidParam("image key is required")
	}
	if len(png) == 0 {
		return "", errors.InvalidParam("image payload is empty")
	}

	bucket := s.client.Bucket()
	info, err := s.client.api.PutObject(ctx, bucket, key, bytes.NewReader(png), int64(len(png)), minio.PutObjectOptions{
		ContentType:  pngContentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", ErrUploadFailed.WithCause(err).WithDetail(key)
	}

	s.logger.Debug("Uploaded image",
		logging.String("bucket", bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size))
	return bucket + "/" + key, nil
}

// PresignedURL returns a time-limited download link for a location
// previously returned by Put. Locations in other buckets are rejected.
func (s *ImageStore) PresignedURL(ctx context.Context, location string, expiry time.Duration) (string, error) {
	bucket := s.client.Bucket()
	key, ok := strings.CutPrefix(location, bucket+"/")
	if !ok || key == "" {
		return "", errors.InvalidParam("image location is not in bucket " + bucket)
	}
	if expiry <= 0 {
		expiry = s.client.cfg.PresignExpiry
	}
	u, err := s.client.api.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to presign image url")
	}
	return u.String(), nil
}

//Personal.AI order the ending
