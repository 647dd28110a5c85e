package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/laliga-stats/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu      sync.RWMutex
	byMatch map[int64][]playerstats.MatchStat
}

func NewPlayerStatsRepository() *PlayerStatsRepository {
	return &PlayerStatsRepository{byMatch: make(map[int64][]playerstats.MatchStat)}
}

func (r *PlayerStatsRepository) UpsertMatchStats(_ context.Context, items []playerstats.MatchStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		rows := r.byMatch[item.MatchID]
		updated := false
		for idx := range rows {
			if rows[idx].PlayerID == item.PlayerID {
				rows[idx] = cloneMatchStat(item)
				updated = true
				break
			}
		}
		if !updated {
			rows = append(rows, cloneMatchStat(item))
		}
		r.byMatch[item.MatchID] = rows
	}
	return nil
}

func (r *PlayerStatsRepository) ListByMatch(_ context.Context, matchID int64) ([]playerstats.MatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byMatch[matchID]
	out := make([]playerstats.MatchStat, 0, len(rows))
	for _, item := range rows {
		out = append(out, cloneMatchStat(item))
	}
	return out, nil
}

func cloneMatchStat(item playerstats.MatchStat) playerstats.MatchStat {
	stats := make(map[string]string, len(item.Stats))
	for k, v := range item.Stats {
		stats[k] = v
	}
	item.Stats = stats
	return item
}
