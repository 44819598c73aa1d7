package gameplay

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"game-telemetry/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Store interface {
	CreateGamePlay(ctx context.Context, g store.GamePlay) (string, error)
	CountGamePlays(ctx context.Context, modelID string) (int, error)
	ListGamePlayRankings(ctx context.Context, modelID string, limit, offset int) ([]store.GamePlay, error)
}

type Service struct {
	store    Store
	reserved NicknameSet
}

func NewService(st Store, reserved NicknameSet) *Service {
	return &Service{store: st, reserved: reserved}
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResponse, error) {
	if s.reserved.Contains(in.Nickname) {
		log.Debug().Str("nickname", in.Nickname).Msg("agent gameplay not recorded")
		return &SubmitResponse{
			ID:      SkippedID,
			Message: fmt.Sprintf("gameplay for AI agent %q was not stored", in.Nickname),
		}, nil
	}
	if strings.TrimSpace(in.Nickname) == "" {
		return nil, ErrInvalidRequest
	}
	frames, err := encodeFrames(in.Frames)
	if err != nil {
		return nil, err
	}
	id, err := s.store.CreateGamePlay(ctx, store.GamePlay{
		Nickname:   in.Nickname,
		Score:      in.Score,
		FinalStage: in.FinalStage,
		ModelID:    in.ModelID,
		Stats: store.GamePlayStats{
			TotalFrames:      in.Statistics.TotalFrames,
			PlayDuration:     in.Statistics.PlayDuration,
			EnemiesDestroyed: in.Statistics.EnemiesDestroyed,
			ShotsFired:       in.Statistics.ShotsFired,
			Hits:             in.Statistics.Hits,
			Deaths:           in.Statistics.Deaths,
		},
		Frames: frames,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return &SubmitResponse{ID: id, Message: "gameplay stored"}, nil
}

// Rank returns one page of the leaderboard. Ranks are global positions, so
// page 2 of size 10 starts at rank 11.
func (s *Service) Rank(ctx context.Context, q RankQuery) (*RankingResponse, error) {
	if q.Page < 1 || q.PageSize < 1 {
		return nil, ErrInvalidRequest
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	offset, inRange := pageOffset(q.Page, q.PageSize)

	var (
		total int
		rows  []store.GamePlay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.CountGamePlays(gctx, q.ModelID)
		total = n
		return err
	})
	if inRange {
		g.Go(func() error {
			r, err := s.store.ListGamePlayRankings(gctx, q.ModelID, q.PageSize, offset)
			rows = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	items := make([]RankingItem, 0, len(rows))
	for i, row := range rows {
		items = append(items, RankingItem{
			ID:           row.ID,
			Nickname:     row.Nickname,
			Score:        row.Score,
			FinalStage:   row.FinalStage,
			ModelID:      optionalString(row.ModelID),
			TotalFrames:  row.Stats.TotalFrames,
			PlayDuration: row.Stats.PlayDuration,
			CreatedAt:    row.CreatedAt,
			Rank:         offset + i + 1,
		})
	}
	return &RankingResponse{Rankings: items, Total: total, Page: q.Page, PageSize: q.PageSize}, nil
}

// pageOffset returns the row offset of a page. ok is false when the offset
// does not fit in an int; such a page is past any real table and is empty.
func pageOffset(page, pageSize int) (offset int, ok bool) {
	if page-1 > (math.MaxInt-MaxPageSize)/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

func encodeFrames(frames []json.RawMessage) (json.RawMessage, error) {
	for _, f := range frames {
		var m map[string]json.RawMessage
		if json.Unmarshal(f, &m) != nil || m == nil {
			return nil, ErrInvalidRequest
		}
	}
	if frames == nil {
		frames = []json.RawMessage{}
	}
	b, err := json.Marshal(frames)
	if err != nil {
		return nil, ErrInvalidRequest
	}
	return b, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
