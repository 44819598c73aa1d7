package gameplay

import (
	"context"
	"testing"
	"time"

	"game-telemetry/internal/store"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func seededService(scores []int64, stamps []int64) *Service {
	st := &memStore{}
	base := time.Unix(1_700_000_000, 0)
	for i, s := range scores {
		var ts int64
		if i < len(stamps) {
			ts = stamps[i]
		}
		_, _ = st.CreateGamePlay(context.Background(), store.GamePlay{
			Nickname:  "p",
			Score:     s,
			CreatedAt: base.Add(time.Duration(ts) * time.Second),
		})
	}
	return NewService(st, NewNicknameSet())
}

func collectPages(svc *Service, pageSize int) ([]RankingItem, int, bool) {
	var all []RankingItem
	total := -1
	for page := 1; ; page++ {
		resp, err := svc.Rank(context.Background(), RankQuery{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, 0, false
		}
		total = resp.Total
		all = append(all, resp.Rankings...)
		if len(resp.Rankings) < pageSize {
			return all, total, true
		}
	}
}

func TestProperty_RanksContiguousFromOne(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("walking every page yields ranks 1..total in order", prop.ForAll(
		func(scores []int64, stamps []int64, pageSize int) bool {
			items, total, ok := collectPages(seededService(scores, stamps), pageSize)
			if !ok || total != len(scores) || len(items) != total {
				return false
			}
			for i, it := range items {
				if it.Rank != i+1 {
					return false
				}
				if i > 0 {
					prev := items[i-1]
					if prev.Score < it.Score {
						return false
					}
					if prev.Score == it.Score && prev.CreatedAt.After(it.CreatedAt) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 20)),
		gen.SliceOf(gen.Int64Range(0, 5)),
		gen.IntRange(1, 7),
	))

	properties.TestingRun(t)
}

func TestProperty_PageSizesAgree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a smaller page is a prefix-consistent slice of a larger one", prop.ForAll(
		func(scores []int64, stamps []int64, small int) bool {
			svc := seededService(scores, stamps)
			big, err := svc.Rank(context.Background(), RankQuery{Page: 1, PageSize: MaxPageSize})
			if err != nil {
				return false
			}
			for page := 1; (page-1)*small < len(big.Rankings); page++ {
				resp, err := svc.Rank(context.Background(), RankQuery{Page: page, PageSize: small})
				if err != nil {
					return false
				}
				for _, it := range resp.Rankings {
					ref := big.Rankings[it.Rank-1]
					if ref.ID != it.ID || ref.Rank != it.Rank {
						return false
					}
				}
			}
			again, err := svc.Rank(context.Background(), RankQuery{Page: 1, PageSize: MaxPageSize})
			if err != nil || len(again.Rankings) != len(big.Rankings) {
				return false
			}
			for i := range again.Rankings {
				if again.Rankings[i].ID != big.Rankings[i].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(60, gen.Int64Range(0, 10)),
		gen.SliceOf(gen.Int64Range(0, 3)),
		gen.IntRange(1, 9),
	))

	properties.TestingRun(t)
}
