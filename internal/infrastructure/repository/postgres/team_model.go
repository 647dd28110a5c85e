package postgres

import "github.com/riskibarqy/laliga-stats/internal/domain/team"

type teamTableModel struct {
	TeamID   string `db:"team_id"`
	Name     string `db:"name"`
	Stadium  string `db:"stadium"`
	City     string `db:"city"`
	Capacity int    `db:"capacity"`
}

func teamModelFromDomain(t team.Team) teamTableModel {
	return teamTableModel{
		TeamID:   t.ID,
		Name:     t.Name,
		Stadium:  t.Stadium,
		City:     t.City,
		Capacity: t.Capacity,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:       m.TeamID,
		Name:     m.Name,
		Stadium:  m.Stadium,
		City:     m.City,
		Capacity: m.Capacity,
	}
}
