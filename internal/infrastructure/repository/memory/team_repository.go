package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/laliga-stats/internal/domain/team"
)

// TeamRepository keeps teams in insertion order. Seed teams may come
// without an id; upserts are keyed by id when present, by name otherwise.
type TeamRepository struct {
	mu    sync.RWMutex
	teams []team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{}
	_ = r.UpsertTeams(context.Background(), teams)
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	out = append(out, r.teams...)
	return out, nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}

		updated := false
		for idx := range r.teams {
			if sameTeam(r.teams[idx], item) {
				r.teams[idx] = item
				updated = true
				break
			}
		}
		if !updated {
			r.teams = append(r.teams, item)
		}
	}

	return nil
}

func sameTeam(a, b team.Team) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(b.Name))
}
