// Package blobstore reads replay blobs from object storage.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("blob not found")
	ErrSigningUnsupported = errors.New("signed urls not supported")
)

const DefaultContentType = "application/octet-stream"

// Object is an open blob. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Store interface {
	Get(ctx context.Context, key string) (*Object, error)
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}

// Signer is implemented by backends that can mint time-limited GET URLs.
// ErrSigningUnsupported means the caller should fall back to proxying.
type Signer interface {
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Config struct {
	Driver       string
	URL          string
	Bucket       string
	Region       string
	Endpoint     string
	UsePathStyle bool
}

func Open(ctx context.Context, c Config) (Store, error) {
	switch strings.ToLower(c.Driver) {
	case "", "gocloud":
		if c.URL == "" {
			return nil, errors.New("blob url required for gocloud driver")
		}
		return OpenBucket(ctx, c.URL)
	case "s3":
		if c.Bucket == "" {
			return nil, errors.New("bucket required for s3 driver")
		}
		return NewS3Store(ctx, c)
	default:
		return nil, fmt.Errorf("unknown blob driver: %s", c.Driver)
	}
}

// sanitizeKey strips leading slashes and dot segments so keys cannot escape the bucket root.
func sanitizeKey(key string) string {
	key = filepath.ToSlash(key)
	key = strings.TrimLeft(key, "/")
	parts := strings.Split(key, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, "/")
}

func contentTypeOr(ct string) string {
	if ct == "" {
		return DefaultContentType
	}
	return ct
}
