package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
)

type teamStatKey struct {
	matchID int64
	side    teamstats.Side
}

type TeamStatsRepository struct {
	mu    sync.RWMutex
	stats map[teamStatKey]teamstats.SideStat
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{stats: make(map[teamStatKey]teamstats.SideStat)}
}

func (r *TeamStatsRepository) UpsertMatchStats(_ context.Context, items []teamstats.SideStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.stats[teamStatKey{matchID: item.MatchID, side: item.Side}] = item
	}
	return nil
}

// ListByMatch returns the home side first.
func (r *TeamStatsRepository) ListByMatch(_ context.Context, matchID int64) ([]teamstats.SideStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamstats.SideStat, 0, 2)
	for _, side := range []teamstats.Side{teamstats.SideHome, teamstats.SideAway} {
		if item, ok := r.stats[teamStatKey{matchID: matchID, side: side}]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}
