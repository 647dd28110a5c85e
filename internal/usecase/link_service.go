package usecase

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/fixture"
	"github.com/riskibarqy/laliga-stats/internal/domain/slug"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// LinkReport counts rows kept and dropped while attaching match ids.
type LinkReport struct {
	Fixtures             int `json:"fixtures"`
	FixturesDropped      int `json:"fixtures_dropped"`
	Stats                int `json:"stats"`
	StatsRepaired        int `json:"stats_repaired"`
	StatsUnresolved      int `json:"stats_unresolved"`
	StatsUnmatched       int `json:"stats_unmatched"`
	PlayerRows           int `json:"player_rows"`
	PlayerRowsUnresolved int `json:"player_rows_unresolved"`
}

// FixtureIndex finds a fixture's date by (home, away, month).
type FixtureIndex struct {
	dates map[fixture.JoinKey]string
}

func (ix FixtureIndex) Lookup(k fixture.JoinKey) (string, bool) {
	d, ok := ix.dates[k]
	return d, ok
}

func (ix FixtureIndex) Len() int {
	return len(ix.dates)
}

// LinkService attaches match ids to fixtures, team stats and player rows.
type LinkService struct {
	store         TableStore
	reclaimer     team.Reclaimer
	noisePrefixes []string
	logger        *logging.Logger
}

func NewLinkService(store TableStore, reclaimer team.Reclaimer, noisePrefixes []string, logger *logging.Logger) *LinkService {
	if len(noisePrefixes) == 0 {
		noisePrefixes = slug.DefaultNoisePrefixes
	}
	return &LinkService{
		store:         store,
		reclaimer:     reclaimer,
		noisePrefixes: noisePrefixes,
		logger:        logger.Named("link"),
	}
}

// LinkFixtures keeps fixtures with an ISO date and both teams, prepends
// their id and indexes them for the stats join. Two fixtures sharing a
// join key make the join ambiguous and fail the stage.
func (s *LinkService) LinkFixtures(fixtures *table.Table) (*table.Table, FixtureIndex, int, error) {
	if err := fixtures.Require(fbref.ColHome, fbref.ColAway, fbref.ColDate); err != nil {
		return nil, FixtureIndex{}, 0, err
	}

	kept := fixtures.Filter(func(row int) bool {
		return idgen.IsISODate(fixtures.Value(row, fbref.ColDate)) &&
			fixtures.Value(row, fbref.ColHome) != "" &&
			fixtures.Value(row, fbref.ColAway) != ""
	})
	dropped := fixtures.Len() - kept.Len()

	ix := FixtureIndex{dates: make(map[fixture.JoinKey]string, kept.Len())}
	ids := make([]string, kept.Len())
	for i := 0; i < kept.Len(); i++ {
		key := fixture.NewMatchKey(kept.Value(i, fbref.ColHome), kept.Value(i, fbref.ColAway), kept.Value(i, fbref.ColDate))
		id, _ := key.ID()
		ids[i] = idgen.FormatMatchID(id)

		jk := key.JoinKey()
		if prev, dup := ix.dates[jk]; dup {
			return nil, FixtureIndex{}, 0, fmt.Errorf("%w: %s vs %s in %s on %s and %s",
				ErrAmbiguousJoin, kept.Value(i, fbref.ColHome), kept.Value(i, fbref.ColAway), jk.MonthText, prev, key.Date)
		}
		ix.dates[jk] = key.Date
	}

	kept.AddColumn(colID, func(row int) string { return ids[row] })
	return kept.Front(colID), ix, dropped, nil
}

// LinkStats resolves both team cells against roster, repairing split
// names, and joins each row to its fixture. Rows without a fixture are
// dropped.
func (s *LinkService) LinkStats(stats *table.Table, ix FixtureIndex, roster team.Roster) (*table.Table, LinkReport, error) {
	if err := stats.Require(teamstats.ColHomeTeam, teamstats.ColAwayTeam, teamstats.ColMonth); err != nil {
		return nil, LinkReport{}, err
	}

	cols := append([]string{colID, teamstats.ColHomeTeam, teamstats.ColAwayTeam}, teamstats.StatColumns...)
	out := table.New("stats_with_id", cols...)
	report := LinkReport{Stats: stats.Len()}

	for i := 0; i < stats.Len(); i++ {
		home := stats.Value(i, teamstats.ColHomeTeam)
		away := stats.Value(i, teamstats.ColAwayTeam)
		month := stats.Value(i, teamstats.ColMonth)
		if home == "" || away == "" {
			report.StatsUnmatched++
			continue
		}

		fixed := s.reclaimer.Repair(home, away)
		if month == "" {
			month = fixed.Month
		}
		if he, ae, ok := roster.ResolvePair(home, away, s.reclaimer); ok {
			if he.Name != home || ae.Name != away {
				report.StatsRepaired++
			}
			home, away = he.Name, ae.Name
		} else {
			report.StatsUnresolved++
			home, away = fixed.Home, fixed.Away
		}

		homeNorm, awayNorm := textnorm.Normalize(home), textnorm.Normalize(away)
		date, ok := ix.Lookup(fixture.JoinKey{HomeNorm: homeNorm, AwayNorm: awayNorm, MonthText: month})
		if !ok {
			report.StatsUnmatched++
			continue
		}
		id, ok := idgen.MatchID(homeNorm, awayNorm, date)
		if !ok {
			report.StatsUnmatched++
			continue
		}

		values := make(map[string]string, len(cols))
		for _, c := range teamstats.StatColumns {
			values[c] = stats.Value(i, c)
		}
		values[colID] = idgen.FormatMatchID(id)
		values[teamstats.ColHomeTeam] = home
		values[teamstats.ColAwayTeam] = away
		out.AppendMap(values)
	}
	return out, report, nil
}

// MatchIDFromURL derives a match id from a match URL: the date comes from
// the slug, the teams from the roster. A URL whose team words the roster
// cannot split yields no id.
func (s *LinkService) MatchIDFromURL(url string, roster team.Roster) (int64, bool) {
	parsed, err := slug.Parse(slug.FromURL(url))
	if err != nil {
		return 0, false
	}
	home, away, found := roster.MatchTeams(slug.TeamWords(url, s.noisePrefixes))
	if !found {
		return 0, false
	}
	return idgen.MatchID(textnorm.Normalize(home.Name), textnorm.Normalize(away.Name), parsed.Date())
}

// LinkPlayers prepends a match id to each player row; rows whose URL
// yields none are dropped.
func (s *LinkService) LinkPlayers(players *table.Table, roster team.Roster) (*table.Table, LinkReport, error) {
	if err := players.Require(fbref.ColRawMatchURL); err != nil {
		return nil, LinkReport{}, err
	}

	report := LinkReport{PlayerRows: players.Len()}
	ids := make(map[string]string)
	for _, u := range players.Distinct(fbref.ColRawMatchURL) {
		id, ok := s.MatchIDFromURL(u, roster)
		if !ok {
			continue
		}
		ids[u] = idgen.FormatMatchID(id)
	}

	players.AddColumn(colID, func(row int) string {
		return ids[players.Value(row, fbref.ColRawMatchURL)]
	})
	kept := players.Filter(func(row int) bool { return players.Value(row, colID) != "" })
	report.PlayerRowsUnresolved = players.Len() - kept.Len()
	return kept.Front(colID), report, nil
}

// Link runs the three joins over the stage tables.
func (s *LinkService) Link(ctx context.Context, roster team.Roster) (LinkReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LinkService.Link")
	defer span.End()

	fixtures, err := s.store.Read(ctx, FileFixtures)
	if err != nil {
		return LinkReport{}, fmt.Errorf("read fixtures: %w", err)
	}
	fixturesOut, ix, dropped, err := s.LinkFixtures(fixtures)
	if err != nil {
		return LinkReport{}, fmt.Errorf("link fixtures: %w", err)
	}
	if err := s.store.Write(ctx, FileFixturesWithID, fixturesOut); err != nil {
		return LinkReport{}, fmt.Errorf("write fixtures with id: %w", err)
	}

	stats, err := s.store.Read(ctx, FileNormalizedStats)
	if err != nil {
		return LinkReport{}, fmt.Errorf("read normalized stats: %w", err)
	}
	statsOut, report, err := s.LinkStats(stats, ix, roster)
	if err != nil {
		return LinkReport{}, fmt.Errorf("link team stats: %w", err)
	}
	if err := s.store.Write(ctx, FileStatsWithID, statsOut); err != nil {
		return LinkReport{}, fmt.Errorf("write stats with id: %w", err)
	}
	report.Fixtures = fixturesOut.Len()
	report.FixturesDropped = dropped

	players, err := s.store.Read(ctx, FilePlayerRaw)
	switch {
	case crerr.Is(err, table.ErrNotFound):
		s.logger.WarnContext(ctx, "no player raw rows to link", "file", FilePlayerRaw)
	case err != nil:
		return LinkReport{}, fmt.Errorf("read player raw rows: %w", err)
	default:
		playersOut, playerReport, err := s.LinkPlayers(players, roster)
		if err != nil {
			return LinkReport{}, fmt.Errorf("link player rows: %w", err)
		}
		if err := s.store.Write(ctx, FilePlayerRawWithID, playersOut); err != nil {
			return LinkReport{}, fmt.Errorf("write player rows with id: %w", err)
		}
		report.PlayerRows = playerReport.PlayerRows
		report.PlayerRowsUnresolved = playerReport.PlayerRowsUnresolved
	}

	recordCounts(span, map[string]int{"fixtures": report.Fixtures, "stats_unmatched": report.StatsUnmatched})
	if report.StatsUnmatched > 0 {
		s.logger.WarnContext(ctx, "team stat rows without fixture dropped", "count", report.StatsUnmatched)
	}
	s.logger.InfoContext(ctx, "match ids linked",
		"fixtures", report.Fixtures,
		"fixtures_dropped", report.FixturesDropped,
		"stats", report.Stats-report.StatsUnmatched,
		"player_rows", report.PlayerRows-report.PlayerRowsUnresolved,
	)
	return report, nil
}
