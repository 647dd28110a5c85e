package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// Team match stats columns.
const (
	colMatchID       = "match_id"
	colSide          = "side"
	colPossession    = "possession"
	colShotsOnTarget = "shots_on_target"
	colShotsTotal    = "shots_total"
	colSaves         = "saves"
	colCards         = "cards"
)

var teamMatchStatsColumns = []string{colMatchID, colTeamID, colSide, colPossession, colShotsOnTarget, colShotsTotal, colSaves, colCards}

// FinalizeReport counts rows written and dropped by the final tables.
type FinalizeReport struct {
	Matches               int `json:"matches"`
	MatchesWithoutTeamID  int `json:"matches_without_team_id"`
	TeamStats             int `json:"team_stats"`
	TeamStatsDropped      int `json:"team_stats_dropped"`
	TeamMatchStats        int `json:"team_match_stats"`
	TeamMatchHomeDropped  int `json:"team_match_home_dropped"`
	TeamMatchAwayDropped  int `json:"team_match_away_dropped"`
	TeamMatchBadID        int `json:"team_match_bad_id"`
	PlayerStats           int `json:"player_stats"`
	PlayerStatsNoPlayerID int `json:"player_stats_no_player_id"`
}

// FinalizeService builds the load-ready tables keyed by match, team and
// player ids.
type FinalizeService struct {
	store  TableStore
	logger *logging.Logger
}

func NewFinalizeService(store TableStore, logger *logging.Logger) *FinalizeService {
	return &FinalizeService{store: store, logger: logger.Named("finalize")}
}

func teamIDOf(roster team.Roster, name string) string {
	if e, ok := roster.Lookup(name); ok {
		return e.ID
	}
	return ""
}

// FinalMatches swaps team names for team ids: id, home_team_id,
// away_team_id, then the remaining fixture columns.
func (s *FinalizeService) FinalMatches(fixtures *table.Table, roster team.Roster) (*table.Table, int, error) {
	if err := fixtures.Require(colID, fbref.ColHome, fbref.ColAway); err != nil {
		return nil, 0, err
	}
	missing := 0
	fixtures.AddColumn(colHomeTeamID, func(row int) string { return teamIDOf(roster, fixtures.Value(row, fbref.ColHome)) })
	fixtures.AddColumn(colAwayTeamID, func(row int) string { return teamIDOf(roster, fixtures.Value(row, fbref.ColAway)) })
	for i := 0; i < fixtures.Len(); i++ {
		if fixtures.Value(i, colHomeTeamID) == "" || fixtures.Value(i, colAwayTeamID) == "" {
			missing++
		}
	}
	return fixtures.Drop(fbref.ColHome, fbref.ColAway).Front(colID, colHomeTeamID, colAwayTeamID), missing, nil
}

// FinalTeamStats swaps team names for team ids and drops rows where
// neither team resolves.
func (s *FinalizeService) FinalTeamStats(stats *table.Table, roster team.Roster) (*table.Table, int, error) {
	if err := stats.Require(colID, teamstats.ColHomeTeam, teamstats.ColAwayTeam); err != nil {
		return nil, 0, err
	}
	stats.AddColumn(colHomeTeamID, func(row int) string { return teamIDOf(roster, stats.Value(row, teamstats.ColHomeTeam)) })
	stats.AddColumn(colAwayTeamID, func(row int) string { return teamIDOf(roster, stats.Value(row, teamstats.ColAwayTeam)) })

	kept := stats.Filter(func(row int) bool {
		return stats.Value(row, colHomeTeamID) != "" || stats.Value(row, colAwayTeamID) != ""
	})
	dropped := stats.Len() - kept.Len()
	out := kept.Drop(teamstats.ColHomeTeam, teamstats.ColAwayTeam).Front(colID, colHomeTeamID, colAwayTeamID)
	return out, dropped, nil
}

// SplitTeamStats writes one row per side. A side without a team id is
// dropped and counted.
func (s *FinalizeService) SplitTeamStats(stats *table.Table) (*table.Table, FinalizeReport, error) {
	required := append([]string{colID, colHomeTeamID, colAwayTeamID}, teamstats.StatColumns...)
	if err := stats.Require(required...); err != nil {
		return nil, FinalizeReport{}, err
	}

	out := table.New("team_match_stats", teamMatchStatsColumns...)
	var report FinalizeReport
	for i := 0; i < stats.Len(); i++ {
		matchID, ok := idgen.ParseMatchID(stats.Value(i, colID))
		if !ok {
			report.TeamMatchBadID++
			continue
		}
		rec := teamstats.RecordFromValues(func(col string) string { return stats.Value(i, col) })
		split := teamstats.Split(matchID, stats.Value(i, colHomeTeamID), stats.Value(i, colAwayTeamID), rec)
		if split.DroppedHome {
			report.TeamMatchHomeDropped++
		}
		if split.DroppedAway {
			report.TeamMatchAwayDropped++
		}
		for _, side := range split.Rows {
			out.Append(
				idgen.FormatMatchID(side.MatchID),
				side.TeamID,
				string(side.Side),
				teamstats.FormatInt(side.Possession),
				teamstats.FormatInt(side.ShotsOnTarget),
				teamstats.FormatInt(side.ShotsTotal),
				teamstats.FormatInt(side.Saves),
				teamstats.FormatInt(side.Cards),
			)
		}
	}
	report.TeamMatchStats = out.Len()
	return out, report, nil
}

// FinalPlayerStats cleans the linked player rows and keys them by player:
// bookkeeping, summary and all-empty columns go, empty rows go, player_id
// is joined on the normalized name and rows without one (team totals)
// are dropped. A player's rows from the several stat tables of one match
// are merged into one row per (id, player_id).
func (s *FinalizeService) FinalPlayerStats(rows, players *table.Table) (*table.Table, int, error) {
	if err := rows.Require(colID, colPlayer); err != nil {
		return nil, 0, err
	}
	if err := players.Require(colPlayer, colPlayerID); err != nil {
		return nil, 0, err
	}

	cleaned := rows.DropFunc(func(col string) bool {
		switch col {
		case fbref.ColRawMatchURL, fbref.ColStatType, fbref.ColTeam:
			return true
		}
		return strings.HasSuffix(col, "_summary")
	})
	cleaned = cleaned.Drop(cleaned.EmptyColumns()...)
	cleaned = cleaned.Filter(func(row int) bool { return !cleaned.RowEmpty(row) })

	byName := make(map[string]string, players.Len())
	for i := 0; i < players.Len(); i++ {
		key := textnorm.Normalize(players.Value(i, colPlayer))
		if _, dup := byName[key]; !dup {
			byName[key] = players.Value(i, colPlayerID)
		}
	}

	cleaned.AddColumn(colPlayerID, func(row int) string {
		return byName[textnorm.Normalize(cleaned.Value(row, colPlayer))]
	})
	kept := cleaned.Filter(func(row int) bool { return cleaned.Value(row, colPlayerID) != "" })
	dropped := cleaned.Len() - kept.Len()
	merged := kept.Coalesce(colID, colPlayerID)
	return merged.Drop(colPlayer).Front(colID, colPlayerID), dropped, nil
}

// Finalize writes the four final tables.
func (s *FinalizeService) Finalize(ctx context.Context, roster team.Roster) (FinalizeReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinalizeService.Finalize")
	defer span.End()

	fixtures, err := s.store.Read(ctx, FileFixturesWithID)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("read fixtures with id: %w", err)
	}
	matches, missingIDs, err := s.FinalMatches(fixtures, roster)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("final matches: %w", err)
	}
	if err := s.store.Write(ctx, FileMatchesFinal, matches); err != nil {
		return FinalizeReport{}, fmt.Errorf("write final matches: %w", err)
	}

	stats, err := s.store.Read(ctx, FileStatsWithID)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("read stats with id: %w", err)
	}
	teamStats, statsDropped, err := s.FinalTeamStats(stats, roster)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("final team stats: %w", err)
	}
	if err := s.store.Write(ctx, FileTeamStatsFinal, teamStats); err != nil {
		return FinalizeReport{}, fmt.Errorf("write final team stats: %w", err)
	}

	split, report, err := s.SplitTeamStats(teamStats)
	if err != nil {
		return FinalizeReport{}, fmt.Errorf("split team stats: %w", err)
	}
	if err := s.store.Write(ctx, FileTeamMatchStatsFinal, split); err != nil {
		return FinalizeReport{}, fmt.Errorf("write team match stats: %w", err)
	}
	report.Matches = matches.Len()
	report.MatchesWithoutTeamID = missingIDs
	report.TeamStats = teamStats.Len()
	report.TeamStatsDropped = statsDropped

	switch {
	case !s.store.Exists(ctx, FilePlayerRawWithID):
	case !s.store.Exists(ctx, FilePlayersWithIDs):
		s.logger.WarnContext(ctx, "no player catalog, player stats skipped", "file", FilePlayersWithIDs)
	default:
		rows, err := s.store.Read(ctx, FilePlayerRawWithID)
		if err != nil {
			return FinalizeReport{}, fmt.Errorf("read player rows with id: %w", err)
		}
		players, err := s.store.Read(ctx, FilePlayersWithIDs)
		if err != nil {
			return FinalizeReport{}, fmt.Errorf("read players with ids: %w", err)
		}
		playerStats, noPlayer, err := s.FinalPlayerStats(rows, players)
		if err != nil {
			return FinalizeReport{}, fmt.Errorf("final player stats: %w", err)
		}
		if err := s.store.Write(ctx, FilePlayerStatsFinal, playerStats); err != nil {
			return FinalizeReport{}, fmt.Errorf("write final player stats: %w", err)
		}
		report.PlayerStats = playerStats.Len()
		report.PlayerStatsNoPlayerID = noPlayer
	}

	if report.TeamMatchHomeDropped+report.TeamMatchAwayDropped > 0 {
		s.logger.WarnContext(ctx, "team match sides without team id dropped",
			"home", report.TeamMatchHomeDropped, "away", report.TeamMatchAwayDropped)
	}
	s.logger.InfoContext(ctx, "final tables written",
		"matches", report.Matches,
		"team_stats", report.TeamStats,
		"team_match_stats", report.TeamMatchStats,
		"player_stats", report.PlayerStats,
	)
	return report, nil
}
