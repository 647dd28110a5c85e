package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/laliga-stats/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
	index   map[string]int
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{index: make(map[string]int)}
	_ = r.UpsertPlayers(context.Background(), players)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	out = append(out, r.players...)
	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		playerID := strings.TrimSpace(item.ID)
		if playerID == "" {
			continue
		}
		if idx, ok := r.index[playerID]; ok {
			r.players[idx] = item
			continue
		}
		r.index[playerID] = len(r.players)
		r.players = append(r.players, item)
	}

	return nil
}
