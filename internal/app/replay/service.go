package replay

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"game-telemetry/internal/blobstore"
	"game-telemetry/internal/store"

	"github.com/rs/zerolog/log"
)

// LinkTTL is the validity window advertised for download references.
const LinkTTL = time.Hour

type Store interface {
	GetReplay(ctx context.Context, id string) (*store.Replay, error)
}

type Service struct {
	store Store
	blobs blobstore.Store
	ttl   time.Duration
}

func NewService(st Store, blobs blobstore.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = LinkTTL
	}
	return &Service{store: st, blobs: blobs, ttl: ttl}
}

// Resolve returns replay metadata with a download reference. A row whose blob
// is gone reports ErrReplayFileMissing rather than ErrReplayNotFound.
func (s *Service) Resolve(ctx context.Context, replayID string) (*Metadata, error) {
	r, err := s.lookup(ctx, replayID)
	if err != nil {
		return nil, err
	}
	ok, err := s.blobs.Exists(ctx, r.StorageURL)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn().Str("replay_id", r.ID).Str("storage_url", r.StorageURL).Msg("replay blob missing")
		return nil, ErrReplayFileMissing
	}
	link, err := s.link(ctx, r)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		ID:            r.ID,
		SessionID:     r.SessionID,
		FramesCount:   r.FramesCount,
		DurationMS:    r.DurationMS,
		Compression:   optionalString(r.Compression),
		SchemaVersion: optionalString(r.SchemaVersion),
		GeneratedBy:   optionalString(r.GeneratedBy),
		Checksum:      optionalString(r.Checksum),
		CreatedAt:     r.CreatedAt,
		URL:           link,
		ExpiresIn:     int(s.ttl / time.Second),
	}, nil
}

// Download opens the replay blob. The caller closes the returned body.
func (s *Service) Download(ctx context.Context, replayID string) (*blobstore.Object, error) {
	r, err := s.lookup(ctx, replayID)
	if err != nil {
		return nil, err
	}
	obj, err := s.blobs.Get(ctx, r.StorageURL)
	if errors.Is(err, blobstore.ErrNotFound) {
		log.Warn().Str("replay_id", r.ID).Str("storage_url", r.StorageURL).Msg("replay blob missing")
		return nil, ErrReplayFileMissing
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *Service) lookup(ctx context.Context, replayID string) (*store.Replay, error) {
	if strings.TrimSpace(replayID) == "" {
		return nil, ErrInvalidRequest
	}
	r, err := s.store.GetReplay(ctx, replayID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrReplayNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) link(ctx context.Context, r *store.Replay) (string, error) {
	if signer, ok := s.blobs.(blobstore.Signer); ok {
		u, err := signer.SignedURL(ctx, r.StorageURL, s.ttl)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, blobstore.ErrSigningUnsupported) {
			return "", fmt.Errorf("sign replay url: %w", err)
		}
	}
	return DownloadPath(r.ID), nil
}

func DownloadPath(replayID string) string {
	return "/api/replays/" + url.PathEscape(replayID) + "/download"
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
