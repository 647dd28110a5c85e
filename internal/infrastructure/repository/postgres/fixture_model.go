package postgres

import (
	"time"

	"github.com/riskibarqy/laliga-stats/internal/domain/fixture"
)

type fixtureTableModel struct {
	MatchID    int64     `db:"match_id"`
	MatchDate  time.Time `db:"match_date"`
	Week       string    `db:"week"`
	HomeTeam   string    `db:"home_team"`
	AwayTeam   string    `db:"away_team"`
	HomeTeamID *string   `db:"home_team_id"`
	AwayTeamID *string   `db:"away_team_id"`
	Score      string    `db:"score"`
	Venue      string    `db:"venue"`
	MatchURL   string    `db:"match_url"`
}

func fixtureModelFromDomain(f fixture.Fixture) (fixtureTableModel, error) {
	date, err := time.Parse(time.DateOnly, f.Date)
	if err != nil {
		return fixtureTableModel{}, err
	}
	return fixtureTableModel{
		MatchID:    f.MatchID,
		MatchDate:  date,
		Week:       f.Week,
		HomeTeam:   f.HomeTeam,
		AwayTeam:   f.AwayTeam,
		HomeTeamID: nullableString(f.HomeTeamID),
		AwayTeamID: nullableString(f.AwayTeamID),
		Score:      f.Score,
		Venue:      f.Venue,
		MatchURL:   f.MatchURL,
	}, nil
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		MatchID:    m.MatchID,
		Date:       m.MatchDate.Format(time.DateOnly),
		Week:       m.Week,
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		HomeTeamID: stringOrEmpty(m.HomeTeamID),
		AwayTeamID: stringOrEmpty(m.AwayTeamID),
		Score:      m.Score,
		Venue:      m.Venue,
		MatchURL:   m.MatchURL,
	}
}
