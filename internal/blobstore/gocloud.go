package blobstore

import (
	"context"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// BucketStore serves blobs from any gocloud bucket URL (file://, mem://, s3://).
type BucketStore struct {
	bk *blob.Bucket
}

func OpenBucket(ctx context.Context, url string) (*BucketStore, error) {
	bk, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, err
	}
	return &BucketStore{bk: bk}, nil
}

// NewBucketStore wraps an already opened bucket. The store takes ownership.
func NewBucketStore(bk *blob.Bucket) *BucketStore {
	return &BucketStore{bk: bk}
}

func (s *BucketStore) Get(ctx context.Context, key string) (*Object, error) {
	key = sanitizeKey(key)
	if key == "" {
		return nil, ErrNotFound
	}
	r, err := s.bk.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &Object{Body: r, ContentType: contentTypeOr(r.ContentType()), Size: r.Size()}, nil
}

func (s *BucketStore) Exists(ctx context.Context, key string) (bool, error) {
	key = sanitizeKey(key)
	if key == "" {
		return false, nil
	}
	return s.bk.Exists(ctx, key)
}

func (s *BucketStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.bk.SignedURL(ctx, sanitizeKey(key), &blob.SignedURLOptions{Method: "GET", Expiry: ttl})
	if err != nil {
		if gcerrors.Code(err) == gcerrors.Unimplemented {
			return "", ErrSigningUnsupported
		}
		return "", err
	}
	return u, nil
}

func (s *BucketStore) Close() error {
	return s.bk.Close()
}
