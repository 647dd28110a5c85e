package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

const teamsTable = "teams"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("team_id", "name", "stadium", "city", "capacity").
		From(teamsTable).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	models := make([]teamTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamModelFromDomain(item))
	}
	return upsertModels(ctx, r.db, teamsTable, models,
		qb.OnConflictUpdate([]string{"team_id"}, "name", "stadium", "city", "capacity"))
}
