package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/laliga-stats/internal/domain/fixture"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

const matchesTable = "matches"

var fixtureColumns = []string{
	"match_id", "match_date", "week", "home_team", "away_team",
	"home_team_id", "away_team_id", "score", "venue", "match_url",
}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).
		From(matchesTable).
		OrderBy("match_date", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *FixtureRepository) UpsertFixtures(ctx context.Context, items []fixture.Fixture) error {
	models := make([]fixtureTableModel, 0, len(items))
	for _, item := range items {
		model, err := fixtureModelFromDomain(item)
		if err != nil {
			return fmt.Errorf("fixture %d date %q: %w", item.MatchID, item.Date, err)
		}
		models = append(models, model)
	}
	return upsertModels(ctx, r.db, matchesTable, models,
		qb.OnConflictUpdate([]string{"match_id"}, fixtureColumns[1:]...))
}
