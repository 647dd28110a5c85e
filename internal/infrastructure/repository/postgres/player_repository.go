package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/laliga-stats/internal/domain/player"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

const playersTable = "players"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("player_id", "team_id", "name", "nation", "position", "squad", "age").
		From(playersTable).
		OrderBy("team_id", "name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) error {
	models := make([]playerTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, playerModelFromDomain(item))
	}
	return upsertModels(ctx, r.db, playersTable, models,
		qb.OnConflictUpdate([]string{"player_id"}, "team_id", "name", "nation", "position", "squad", "age"))
}
