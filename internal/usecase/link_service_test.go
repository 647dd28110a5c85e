package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/laliga-stats/external/fbref"
	"github.com/riskibarqy/laliga-stats/internal/domain/team"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
)

func newTestLink(store TableStore) *LinkService {
	return NewLinkService(store, team.NewReclaimer(team.DefaultReclaimMap()), nil, logging.NewNop())
}

func fixtureRow(home, away, date, url string) []string {
	return []string{"1", "Fri", date, "19:00", home, "", away, "", url}
}

func mustMatchID(t *testing.T, home, away, date string) string {
	t.Helper()
	id, ok := idgen.MatchID(home, away, date)
	if !ok {
		t.Fatalf("match id for %s %s %s", home, away, date)
	}
	return idgen.FormatMatchID(id)
}

func TestLinkService_LinkFixtures(t *testing.T) {
	t.Parallel()

	service := newTestLink(newTestStore(t))
	fixtures := tableOf("fixtures", fbref.FixtureColumns,
		fixtureRow("Girona", "Rayo Vallecano", "2025-08-15", urlGironaRayo),
		fixtureRow("Mallorca", "Barcelona", "", ""),
		fixtureRow("", "Barcelona", "2025-08-16", ""),
		fixtureRow("Atlético Madrid", "Elche", "2025-08-18", ""),
	)

	out, ix, dropped, err := service.LinkFixtures(fixtures)
	if err != nil {
		t.Fatalf("link fixtures: %v", err)
	}
	if out.Len() != 2 || dropped != 2 {
		t.Fatalf("expected 2 kept and 2 dropped, got %d/%d", out.Len(), dropped)
	}
	if out.Columns[0] != colID {
		t.Fatalf("id must come first, got %v", out.Columns)
	}
	if out.Value(0, colID) != mustMatchID(t, "girona", "rayo vallecano", "2025-08-15") {
		t.Fatalf("unexpected match id %q", out.Value(0, colID))
	}
	if out.Value(1, colID) != mustMatchID(t, "atletico madrid", "elche", "2025-08-18") {
		t.Fatalf("match id must hash normalized names, got %q", out.Value(1, colID))
	}
	if ix.Len() != 2 {
		t.Fatalf("unexpected index size %d", ix.Len())
	}
}

func TestLinkService_LinkFixturesAmbiguous(t *testing.T) {
	t.Parallel()

	service := newTestLink(newTestStore(t))
	fixtures := tableOf("fixtures", fbref.FixtureColumns,
		fixtureRow("Girona", "Rayo Vallecano", "2025-08-15", ""),
		fixtureRow("Girona", "Rayo Vallecano", "2025-08-29", ""),
	)

	_, _, _, err := service.LinkFixtures(fixtures)
	if !errors.Is(err, ErrAmbiguousJoin) {
		t.Fatalf("expected ErrAmbiguousJoin, got %v", err)
	}
}

func TestLinkService_LinkStats(t *testing.T) {
	t.Parallel()

	service := newTestLink(newTestStore(t))
	_, ix, _, err := service.LinkFixtures(tableOf("fixtures", fbref.FixtureColumns,
		fixtureRow("Girona", "Rayo Vallecano", "2025-08-15", ""),
		fixtureRow("Real Sociedad", "Real Betis", "2025-09-20", ""),
	))
	if err != nil {
		t.Fatalf("link fixtures: %v", err)
	}

	stats := tableOf("normalized", teamstats.RecordColumns,
		[]string{"Girona", "Rayo Vallecano", "August", "61", "39", "3", "12", "4", "10", "", "", "0", "0"},
		[]string{"Real", "Sociedad Real Betis", "September", "55", "45", "", "", "", "", "", "", "", ""},
		[]string{"Girona", "Rayo Vallecano", "May", "50", "50", "", "", "", "", "", "", "", ""},
		[]string{"", "Rayo Vallecano", "August", "", "", "", "", "", "", "", "", "", ""},
	)

	out, report, err := service.LinkStats(stats, ix, seededRoster())
	if err != nil {
		t.Fatalf("link stats: %v", err)
	}
	if out.Len() != 2 || report.StatsUnmatched != 2 || report.StatsRepaired != 1 {
		t.Fatalf("unexpected result rows=%d report=%+v", out.Len(), report)
	}
	if out.Columns[0] != colID || out.Has(teamstats.ColMonth) {
		t.Fatalf("unexpected columns %v", out.Columns)
	}
	if out.Value(0, colID) != mustMatchID(t, "girona", "rayo vallecano", "2025-08-15") || out.Value(0, teamstats.ColShotsTotalHome) != "12" {
		t.Fatalf("unexpected first row %v", out.Rows[0])
	}
	if out.Value(1, teamstats.ColHomeTeam) != "Real Sociedad" || out.Value(1, teamstats.ColAwayTeam) != "Real Betis" {
		t.Fatalf("split names must be repaired, got %v", out.Rows[1])
	}
	if out.Value(1, colID) != mustMatchID(t, "real sociedad", "real betis", "2025-09-20") {
		t.Fatalf("unexpected repaired match id %q", out.Value(1, colID))
	}
}

func TestLinkService_MatchIDFromURL(t *testing.T) {
	t.Parallel()

	service := newTestLink(newTestStore(t))
	roster := seededRoster()

	id, ok := service.MatchIDFromURL(urlClasico, roster)
	if !ok {
		t.Fatalf("expected roster match")
	}
	if idgen.FormatMatchID(id) != mustMatchID(t, "real madrid", "barcelona", "2025-10-26") {
		t.Fatalf("unexpected id %d", id)
	}

	if _, ok := service.MatchIDFromURL("https://fbref.com/en/matches/x/Leganes-Real-Oviedo-May-1-2025-La-Liga", roster); ok {
		t.Fatalf("teams outside the roster must not produce an id")
	}

	if _, ok := service.MatchIDFromURL("https://fbref.com/en/matches/x/Girona-Rayo-Vallecano-February-30-2025", roster); ok {
		t.Fatalf("invalid date must not produce an id")
	}
}

func TestLinkService_Link(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	if err := store.Write(ctx, FileFixtures, tableOf("fixtures", fbref.FixtureColumns,
		fixtureRow("Girona", "Rayo Vallecano", "2025-08-15", urlGironaRayo),
	)); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}
	if err := store.Write(ctx, FileNormalizedStats, tableOf("normalized", teamstats.RecordColumns,
		[]string{"Girona", "Rayo Vallecano", "August", "61", "39", "", "", "", "", "", "", "", ""},
	)); err != nil {
		t.Fatalf("write stats: %v", err)
	}
	players := tableOf("players_raw", []string{"Player", "Gls", fbref.ColStatType, fbref.ColTeam, fbref.ColRawMatchURL},
		[]string{"Viktor Tsyhankov", "1", "a_summary", "a", urlGironaRayo},
		[]string{"Nobody", "0", "b_summary", "b", "https://fbref.com/en/matches/x/not-a-slug"},
		[]string{"Outsider", "0", "c_summary", "c", "https://fbref.com/en/matches/x/Leganes-Real-Oviedo-May-1-2025-La-Liga"},
	)
	if err := store.Write(ctx, FilePlayerRaw, players); err != nil {
		t.Fatalf("write players: %v", err)
	}

	report, err := newTestLink(store).Link(ctx, seededRoster())
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if report.Fixtures != 1 || report.Stats != 1 || report.StatsUnmatched != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.PlayerRows != 3 || report.PlayerRowsUnresolved != 2 {
		t.Fatalf("unexpected player report %+v", report)
	}

	linked, err := store.Read(ctx, FilePlayerRawWithID)
	if err != nil {
		t.Fatalf("read linked players: %v", err)
	}
	want := mustMatchID(t, "girona", "rayo vallecano", "2025-08-15")
	if linked.Len() != 1 || linked.Columns[0] != colID || linked.Value(0, colID) != want {
		t.Fatalf("unexpected linked players %v %v", linked.Columns, linked.Rows)
	}
	for _, name := range []string{FileFixturesWithID, FileStatsWithID} {
		if !store.Exists(ctx, name) {
			t.Fatalf("%s not written", name)
		}
	}
}

func TestLinkService_LinkWithoutPlayerRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	_ = store.Write(ctx, FileFixtures, tableOf("fixtures", fbref.FixtureColumns))
	_ = store.Write(ctx, FileNormalizedStats, tableOf("normalized", teamstats.RecordColumns))

	report, err := newTestLink(store).Link(ctx, seededRoster())
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if report.PlayerRows != 0 || store.Exists(ctx, FilePlayerRawWithID) {
		t.Fatalf("no player rows expected, got %+v", report)
	}
}
