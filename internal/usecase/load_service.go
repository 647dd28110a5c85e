package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/fixture"
	"github.com/riskibarqy/laliga-stats/internal/domain/player"
	"github.com/riskibarqy/laliga-stats/internal/domain/playerstats"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// LoadReport counts entities written and rows rejected by validation.
type LoadReport struct {
	Teams           int `json:"teams"`
	Players         int `json:"players"`
	PlayersSkipped  int `json:"players_skipped"`
	Matches         int `json:"matches"`
	MatchesSkipped  int `json:"matches_skipped"`
	TeamStats       int `json:"team_stats"`
	TeamStatsSkip   int `json:"team_stats_skipped"`
	PlayerStats     int `json:"player_stats"`
	PlayerStatsSkip int `json:"player_stats_skipped"`
}

// LoadRepositories are the sinks the final tables are upserted into.
type LoadRepositories struct {
	Teams       team.Repository
	Players     player.Repository
	Fixtures    fixture.Repository
	TeamStats   teamstats.Repository
	PlayerStats playerstats.Repository
}

// LoadService validates the final tables and upserts them. Every write is
// an upsert so a re-run over the same files converges.
type LoadService struct {
	store    TableStore
	repos    LoadRepositories
	validate *validator.Validate
	logger   *logging.Logger
}

func NewLoadService(store TableStore, repos LoadRepositories, logger *logging.Logger) *LoadService {
	return &LoadService{
		store:    store,
		repos:    repos,
		validate: validator.New(),
		logger:   logger.Named("load"),
	}
}

func (s *LoadService) Load(ctx context.Context) (LoadReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LoadService.Load")
	defer span.End()

	if s.repos.Teams == nil || s.repos.Players == nil || s.repos.Fixtures == nil ||
		s.repos.TeamStats == nil || s.repos.PlayerStats == nil {
		return LoadReport{}, fmt.Errorf("%w: load repositories are not configured", ErrDependencyUnavailable)
	}

	var report LoadReport

	catalog, err := readRequired(ctx, s.store, FileTeamsCatalog, colEquipo, colTeamID)
	if err != nil {
		return LoadReport{}, fmt.Errorf("read team catalog: %w", err)
	}
	teams := s.Teams(catalog)
	if err := s.repos.Teams.UpsertTeams(ctx, teams); err != nil {
		return LoadReport{}, fmt.Errorf("upsert teams: %w", err)
	}
	report.Teams = len(teams)
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	if s.store.Exists(ctx, FilePlayersWithIDs) {
		rows, err := readRequired(ctx, s.store, FilePlayersWithIDs, colPlayerID, colPlayer)
		if err != nil {
			return LoadReport{}, fmt.Errorf("read players with ids: %w", err)
		}
		players, skipped := s.Players(rows)
		if err := s.repos.Players.UpsertPlayers(ctx, players); err != nil {
			return LoadReport{}, fmt.Errorf("upsert players: %w", err)
		}
		report.Players, report.PlayersSkipped = len(players), skipped
	}

	matchRows, err := readRequired(ctx, s.store, FileMatchesFinal, colID, colHomeTeamID, colAwayTeamID)
	if err != nil {
		return LoadReport{}, fmt.Errorf("read final matches: %w", err)
	}
	fixtures, skipped := s.Fixtures(matchRows, names)
	if err := s.repos.Fixtures.UpsertFixtures(ctx, fixtures); err != nil {
		return LoadReport{}, fmt.Errorf("upsert fixtures: %w", err)
	}
	report.Matches, report.MatchesSkipped = len(fixtures), skipped

	sideRows, err := readRequired(ctx, s.store, FileTeamMatchStatsFinal, teamMatchStatsColumns...)
	if err != nil {
		return LoadReport{}, fmt.Errorf("read team match stats: %w", err)
	}
	sides, skipped := s.TeamStats(sideRows)
	if err := s.repos.TeamStats.UpsertMatchStats(ctx, sides); err != nil {
		return LoadReport{}, fmt.Errorf("upsert team match stats: %w", err)
	}
	report.TeamStats, report.TeamStatsSkip = len(sides), skipped

	if s.store.Exists(ctx, FilePlayerStatsFinal) {
		rows, err := readRequired(ctx, s.store, FilePlayerStatsFinal, colID, colPlayerID)
		if err != nil {
			return LoadReport{}, fmt.Errorf("read final player stats: %w", err)
		}
		stats, skipped := s.PlayerStats(rows)
		if err := s.repos.PlayerStats.UpsertMatchStats(ctx, stats); err != nil {
			return LoadReport{}, fmt.Errorf("upsert player match stats: %w", err)
		}
		report.PlayerStats, report.PlayerStatsSkip = len(stats), skipped
	}

	recordCounts(span, map[string]int{
		"teams":        report.Teams,
		"players":      report.Players,
		"matches":      report.Matches,
		"team_stats":   report.TeamStats,
		"player_stats": report.PlayerStats,
	})
	if skippedTotal := report.PlayersSkipped + report.MatchesSkipped + report.TeamStatsSkip + report.PlayerStatsSkip; skippedTotal > 0 {
		s.logger.WarnContext(ctx, "invalid rows skipped",
			"players", report.PlayersSkipped,
			"matches", report.MatchesSkipped,
			"team_stats", report.TeamStatsSkip,
			"player_stats", report.PlayerStatsSkip,
		)
	}
	s.logger.InfoContext(ctx, "final tables loaded",
		"teams", report.Teams,
		"players", report.Players,
		"matches", report.Matches,
		"team_stats", report.TeamStats,
		"player_stats", report.PlayerStats,
	)
	return report, nil
}

// Teams maps the catalog table to teams. Catalog rows are trusted, they
// were written by BuildTeams.
func (s *LoadService) Teams(catalog *table.Table) []team.Team {
	out := make([]team.Team, 0, catalog.Len())
	for i := 0; i < catalog.Len(); i++ {
		capacity, _ := strconv.Atoi(catalog.Value(i, colCapacidad))
		out = append(out, team.Team{
			ID:       catalog.Value(i, colTeamID),
			Name:     catalog.Value(i, colEquipo),
			Stadium:  catalog.Value(i, colEstadio),
			City:     catalog.Value(i, colCiudad),
			Capacity: capacity,
		})
	}
	return out
}

// Players keeps the first row of every player id.
func (s *LoadService) Players(rows *table.Table) ([]player.Player, int) {
	out := make([]player.Player, 0, rows.Len())
	seen := make(map[string]struct{}, rows.Len())
	skipped := 0
	for i := 0; i < rows.Len(); i++ {
		p := player.Player{
			ID:       rows.Value(i, colPlayerID),
			TeamID:   rows.Value(i, colTeamID),
			Name:     rows.Value(i, colPlayer),
			Nation:   rows.Value(i, fbref.ColNation),
			Position: rows.Value(i, fbref.ColPosition),
			Squad:    rows.Value(i, colSquad),
			Age:      rows.Value(i, fbref.ColAge),
		}
		if err := s.validate.Struct(p); err != nil {
			skipped++
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, skipped
}

// Fixtures builds matches from PARTIDOS_FINAL. Team names come back from
// the catalog through the team ids.
func (s *LoadService) Fixtures(rows *table.Table, teamNames map[string]string) ([]fixture.Fixture, int) {
	out := make([]fixture.Fixture, 0, rows.Len())
	skipped := 0
	for i := 0; i < rows.Len(); i++ {
		matchID, ok := idgen.ParseMatchID(rows.Value(i, colID))
		if !ok {
			skipped++
			continue
		}
		homeID, awayID := rows.Value(i, colHomeTeamID), rows.Value(i, colAwayTeamID)
		f := fixture.Fixture{
			MatchID:    matchID,
			Date:       rows.Value(i, fbref.ColDate),
			Week:       rows.Value(i, fbref.ColWeek),
			HomeTeam:   teamNames[homeID],
			AwayTeam:   teamNames[awayID],
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			Score:      rows.Value(i, fbref.ColScore),
			Venue:      rows.Value(i, fbref.ColVenue),
			MatchURL:   rows.Value(i, fbref.ColMatchURL),
		}
		if err := s.validate.Struct(f); err != nil {
			skipped++
			continue
		}
		out = append(out, f)
	}
	return out, skipped
}

func (s *LoadService) TeamStats(rows *table.Table) ([]teamstats.SideStat, int) {
	out := make([]teamstats.SideStat, 0, rows.Len())
	skipped := 0
	for i := 0; i < rows.Len(); i++ {
		matchID, ok := idgen.ParseMatchID(rows.Value(i, colMatchID))
		if !ok {
			skipped++
			continue
		}
		side := teamstats.SideStat{
			MatchID:       matchID,
			TeamID:        rows.Value(i, colTeamID),
			Side:          teamstats.Side(rows.Value(i, colSide)),
			Possession:    teamstats.ParseInt(rows.Value(i, colPossession)),
			ShotsOnTarget: teamstats.ParseInt(rows.Value(i, colShotsOnTarget)),
			ShotsTotal:    teamstats.ParseInt(rows.Value(i, colShotsTotal)),
			Saves:         teamstats.ParseInt(rows.Value(i, colSaves)),
			Cards:         teamstats.ParseInt(rows.Value(i, colCards)),
		}
		if err := s.validate.Struct(side); err != nil {
			skipped++
			continue
		}
		out = append(out, side)
	}
	return out, skipped
}

// PlayerStats keeps every non-key column of a row as its stat map; empty
// cells are left out. Rows repeating a (match, player) pair are merged into
// the first, whose values win.
func (s *LoadService) PlayerStats(rows *table.Table) ([]playerstats.MatchStat, int) {
	statCols := make([]string, 0, len(rows.Columns))
	for _, col := range rows.Columns {
		if col != colID && col != colPlayerID {
			statCols = append(statCols, col)
		}
	}

	out := make([]playerstats.MatchStat, 0, rows.Len())
	seen := make(map[playerstats.Key]int, rows.Len())
	skipped := 0
	for i := 0; i < rows.Len(); i++ {
		matchID, ok := idgen.ParseMatchID(rows.Value(i, colID))
		if !ok {
			skipped++
			continue
		}
		stats := make(map[string]string, len(statCols))
		for _, col := range statCols {
			if v := rows.Value(i, col); v != "" {
				stats[col] = v
			}
		}
		ms := playerstats.MatchStat{MatchID: matchID, PlayerID: rows.Value(i, colPlayerID), Stats: stats}
		if err := s.validate.Struct(ms); err != nil {
			skipped++
			continue
		}
		if at, dup := seen[ms.Key()]; dup {
			for k, v := range ms.Stats {
				if _, set := out[at].Stats[k]; !set {
					out[at].Stats[k] = v
				}
			}
			continue
		}
		seen[ms.Key()] = len(out)
		out = append(out, ms)
	}
	return out, skipped
}
