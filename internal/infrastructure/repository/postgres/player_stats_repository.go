package postgres

import (
	"context"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/laliga-stats/internal/domain/playerstats"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

const playerMatchStatsTable = "player_match_stats"

type playerMatchStatsTableModel struct {
	MatchID  int64  `db:"match_id"`
	PlayerID string `db:"player_id"`
	Stats    string `db:"stats"`
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) UpsertMatchStats(ctx context.Context, items []playerstats.MatchStat) error {
	models := make([]playerMatchStatsTableModel, 0, len(items))
	for _, item := range items {
		stats, err := encodeStats(item.Stats)
		if err != nil {
			return fmt.Errorf("encode stats of %s in match %d: %w", item.PlayerID, item.MatchID, err)
		}
		models = append(models, playerMatchStatsTableModel{
			MatchID:  item.MatchID,
			PlayerID: item.PlayerID,
			Stats:    stats,
		})
	}
	return upsertModels(ctx, r.db, playerMatchStatsTable, models,
		qb.OnConflictUpdate([]string{"match_id", "player_id"}, "stats"))
}

func (r *PlayerStatsRepository) ListByMatch(ctx context.Context, matchID int64) ([]playerstats.MatchStat, error) {
	query, args, err := qb.Select("match_id", "player_id", "stats::text AS stats").
		From(playerMatchStatsTable).
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player match stats query: %w", err)
	}

	var rows []playerMatchStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player match stats: %w", err)
	}

	out := make([]playerstats.MatchStat, 0, len(rows))
	for _, row := range rows {
		stats, err := decodeStats(row.Stats)
		if err != nil {
			return nil, fmt.Errorf("decode stats of %s in match %d: %w", row.PlayerID, row.MatchID, err)
		}
		out = append(out, playerstats.MatchStat{MatchID: row.MatchID, PlayerID: row.PlayerID, Stats: stats})
	}
	return out, nil
}

func encodeStats(value map[string]string) (string, error) {
	if len(value) == 0 {
		return "{}", nil
	}
	encoded, err := sonic.MarshalString(value)
	if err != nil {
		return "", err
	}
	return encoded, nil
}

func decodeStats(raw string) (map[string]string, error) {
	out := make(map[string]string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
