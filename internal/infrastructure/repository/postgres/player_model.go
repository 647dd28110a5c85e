package postgres

import "github.com/riskibarqy/laliga-stats/internal/domain/player"

type playerTableModel struct {
	PlayerID string `db:"player_id"`
	TeamID   string `db:"team_id"`
	Name     string `db:"name"`
	Nation   string `db:"nation"`
	Position string `db:"position"`
	Squad    string `db:"squad"`
	Age      string `db:"age"`
}

func playerModelFromDomain(p player.Player) playerTableModel {
	return playerTableModel{
		PlayerID: p.ID,
		TeamID:   p.TeamID,
		Name:     p.Name,
		Nation:   p.Nation,
		Position: p.Position,
		Squad:    p.Squad,
		Age:      p.Age,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.PlayerID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Nation:   m.Nation,
		Position: m.Position,
		Squad:    m.Squad,
		Age:      m.Age,
	}
}
