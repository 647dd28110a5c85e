package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/laliga-stats/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[int64]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	r := &FixtureRepository{fixtures: make(map[int64]fixture.Fixture)}
	_ = r.UpsertFixtures(context.Background(), fixtures)
	return r
}

// List orders fixtures by date, then match id.
func (r *FixtureRepository) List(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func (r *FixtureRepository) UpsertFixtures(_ context.Context, items []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.MatchID <= 0 {
			continue
		}
		r.fixtures[item.MatchID] = item
	}
	return nil
}
