package postgres

import "github.com/riskibarqy/laliga-stats/internal/domain/teamstats"

type teamMatchStatsTableModel struct {
	MatchID       int64  `db:"match_id"`
	TeamID        string `db:"team_id"`
	Side          string `db:"side"`
	Possession    *int   `db:"possession"`
	ShotsOnTarget *int   `db:"shots_on_target"`
	ShotsTotal    *int   `db:"shots_total"`
	Saves         *int   `db:"saves"`
	Cards         *int   `db:"cards"`
}

func teamMatchStatsModelFromDomain(s teamstats.SideStat) teamMatchStatsTableModel {
	return teamMatchStatsTableModel{
		MatchID:       s.MatchID,
		TeamID:        s.TeamID,
		Side:          string(s.Side),
		Possession:    s.Possession,
		ShotsOnTarget: s.ShotsOnTarget,
		ShotsTotal:    s.ShotsTotal,
		Saves:         s.Saves,
		Cards:         s.Cards,
	}
}

func (m teamMatchStatsTableModel) toDomain() teamstats.SideStat {
	return teamstats.SideStat{
		MatchID:       m.MatchID,
		TeamID:        m.TeamID,
		Side:          teamstats.Side(m.Side),
		Possession:    m.Possession,
		ShotsOnTarget: m.ShotsOnTarget,
		ShotsTotal:    m.ShotsTotal,
		Saves:         m.Saves,
		Cards:         m.Cards,
	}
}
