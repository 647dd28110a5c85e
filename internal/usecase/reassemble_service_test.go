package usecase

import (
	"context"
	"errors"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

func TestReassembleService_Resolver(t *testing.T) {
	t.Parallel()

	service := NewReassembleService(newTestStore(t), nil, logging.NewNop())
	resolve := service.Resolver(seededRoster())

	tests := []struct {
		name     string
		url      string
		wantHome string
		wantAway string
		wantOK   bool
	}{
		{name: "plain", url: urlGironaRayo, wantHome: "Girona", wantAway: "Rayo Vallecano", wantOK: true},
		{name: "noise prefix", url: urlClasico, wantHome: "Real Madrid", wantAway: "Barcelona", wantOK: true},
		{name: "unknown teams", url: "https://fbref.com/en/matches/x/Leganes-Eibar-May-1-2025-La-Liga"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			home, away, _, ok := resolve(tc.url)
			if ok != tc.wantOK || home != tc.wantHome || away != tc.wantAway {
				t.Fatalf("got (%q, %q, %t)", home, away, ok)
			}
		})
	}
}

func TestReassembleService_Reassemble(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStore(t)
	unknown := "https://fbref.com/en/matches/x/Leganes-Eibar-May-1-2025-La-Liga"
	raw := tableOf("team_raw", teamstats.RawColumns,
		[]string{"Possession", "Possession", urlGironaRayo, "Girona", "Rayo Vallecano", "1-3", ""},
		[]string{"61%", "39%", urlGironaRayo, "", "", "", ""},
		[]string{"Shots on Target", "Shots on Target", urlGironaRayo, "", "", "", ""},
		[]string{"3 of 12 — 25%", "40% — 4 of 10", urlGironaRayo, "", "", "", ""},
		[]string{"50%", "50%", unknown, "", "", "", ""},
		[]string{"Cards", "Cards", urlGironaRayo, "", "", "", ""},
		[]string{"48%", "52%", urlClasico, "", "", "", ""},
		[]string{"Saves", "Saves", urlClasico, "", "", "", ""},
		[]string{"2 of 3", "4", urlClasico, "", "", "", ""},
	)
	if err := store.Write(ctx, FileTeamRaw, raw); err != nil {
		t.Fatalf("write raw: %v", err)
	}

	service := NewReassembleService(store, nil, logging.NewNop())
	stats, err := service.Reassemble(ctx, seededRoster())
	if err != nil {
		t.Fatalf("reassemble: %v", err)
	}
	if stats.Rows != 9 || stats.MatchStarts != 3 || stats.UnresolvedStarts != 1 || stats.Emitted != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	out, err := store.Read(ctx, FileNormalizedStats)
	if err != nil {
		t.Fatalf("read normalized stats: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", out.Len())
	}
	checks := map[string]string{
		teamstats.ColHomeTeam:       "Girona",
		teamstats.ColAwayTeam:       "Rayo Vallecano",
		teamstats.ColMonth:          "August",
		teamstats.ColPossHome:       "61",
		teamstats.ColShotsTotalAway: "10",
		teamstats.ColCardsHome:      "0",
		teamstats.ColSavesHome:      "",
	}
	for col, want := range checks {
		if got := out.Value(0, col); got != want {
			t.Fatalf("%s: got %q want %q", col, got, want)
		}
	}
	if out.Value(1, teamstats.ColHomeTeam) != "Real Madrid" || out.Value(1, teamstats.ColSavesHome) != "2" || out.Value(1, teamstats.ColSavesAway) != "4" {
		t.Fatalf("unexpected second record %v", out.Rows[1])
	}
}

func TestReassembleService_MissingColumns(t *testing.T) {
	t.Parallel()

	service := NewReassembleService(newTestStore(t), nil, logging.NewNop())
	raw := table.New("team_raw", "home", "away")
	_, _, err := service.ReassembleTable(context.Background(), raw, seededRoster())
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestReassembleService_MissingRawFile(t *testing.T) {
	t.Parallel()

	service := NewReassembleService(newTestStore(t), nil, logging.NewNop())
	_, err := service.Reassemble(context.Background(), seededRoster())
	if !crerr.Is(err, table.ErrNotFound) {
		t.Fatalf("expected table.ErrNotFound, got %v", err)
	}
}
