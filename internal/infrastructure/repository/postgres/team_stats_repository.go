package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

const teamMatchStatsTable = "team_match_stats"

type TeamStatsRepository struct {
	db *sqlx.DB
}

func NewTeamStatsRepository(db *sqlx.DB) *TeamStatsRepository {
	return &TeamStatsRepository{db: db}
}

func (r *TeamStatsRepository) UpsertMatchStats(ctx context.Context, items []teamstats.SideStat) error {
	models := make([]teamMatchStatsTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamMatchStatsModelFromDomain(item))
	}
	return upsertModels(ctx, r.db, teamMatchStatsTable, models,
		qb.OnConflictUpdate([]string{"match_id", "side"},
			"team_id", "possession", "shots_on_target", "shots_total", "saves", "cards"))
}

func (r *TeamStatsRepository) ListByMatch(ctx context.Context, matchID int64) ([]teamstats.SideStat, error) {
	query, args, err := qb.Select("match_id", "team_id", "side", "possession", "shots_on_target", "shots_total", "saves", "cards").
		From(teamMatchStatsTable).
		Where(qb.Eq("match_id", matchID)).
		OrderBy("CASE side WHEN 'HOME' THEN 0 ELSE 1 END").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team match stats query: %w", err)
	}

	var rows []teamMatchStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team match stats: %w", err)
	}

	out := make([]teamstats.SideStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
