package team

import (
	"strings"
	"testing"
)

var laLiga = []string{
	"Real Madrid", "Barcelona", "Atlético Madrid", "Athletic Club", "Valencia",
	"Sevilla", "Real Sociedad", "Villarreal", "Real Betis", "Osasuna",
	"Celta Vigo", "Rayo Vallecano", "Getafe", "Girona", "Mallorca",
	"Levante", "Espanyol", "Alavés", "Elche", "Oviedo",
}

func TestRosterLookup(t *testing.T) {
	t.Parallel()

	r := RosterFromNames(laLiga...)
	if r.Len() != len(laLiga) {
		t.Fatalf("expected %d entries, got %d", len(laLiga), r.Len())
	}

	e, ok := r.Lookup("ATLETICO-MADRID")
	if !ok {
		t.Fatalf("expected lookup to resolve accentless upper-case spelling")
	}
	if e.Name != "Atlético Madrid" || e.ID != "TEAM-F53424F0" {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if _, ok := r.Lookup("Real"); ok {
		t.Fatalf("partial names must not resolve")
	}
}

func TestRosterKeepsExplicitIDs(t *testing.T) {
	t.Parallel()

	r := NewRoster([]Team{{ID: "TEAM-CUSTOM", Name: "Girona"}, {Name: "girona"}})
	e, ok := r.Lookup("Girona")
	if !ok || e.ID != "TEAM-CUSTOM" {
		t.Fatalf("expected first entry to win, got %+v", e)
	}
	if r.Len() != 1 {
		t.Fatalf("expected duplicates to collapse, got %d", r.Len())
	}
}

// Every ordered pair of catalog teams must come back out of a synthetic slug.
func TestMatchTeamsRoundTrip(t *testing.T) {
	t.Parallel()

	r := RosterFromNames(laLiga...)
	for _, home := range laLiga {
		for _, away := range laLiga {
			if home == away {
				continue
			}
			segment := strings.ReplaceAll(home+"-"+away, " ", "-") + "-August-15-2025"
			words := strings.Split(segment, "-")
			words = words[:len(words)-3]

			h, a, ok := r.MatchTeams(words)
			if !ok {
				t.Fatalf("no match for %q", segment)
			}
			if h.Name != home || a.Name != away {
				t.Fatalf("MatchTeams(%q) = (%s, %s), want (%s, %s)", segment, h.Name, a.Name, home, away)
			}
		}
	}
}

func TestMatchTeamsUnresolved(t *testing.T) {
	t.Parallel()

	r := RosterFromNames(laLiga...)
	cases := [][]string{
		nil,
		{"Girona"},
		{"Girona", "Leganes"},
		{"Las", "Palmas", "Sevilla"},
	}
	for _, words := range cases {
		if _, _, ok := r.MatchTeams(words); ok {
			t.Fatalf("expected no match for %v", words)
		}
	}
}

func TestResolvePair(t *testing.T) {
	t.Parallel()

	r := RosterFromNames(laLiga...)
	rc := NewReclaimer(DefaultReclaimMap())

	cases := []struct {
		name       string
		home, away string
		wantHome   string
		wantAway   string
	}{
		{name: "clean", home: "Girona", away: "Rayo Vallecano", wantHome: "Girona", wantAway: "Rayo Vallecano"},
		{name: "suffix in away", home: "Real", away: "Madrid Sevilla", wantHome: "Real Madrid", wantAway: "Sevilla"},
		{name: "root in home", home: "Barcelona Real", away: "Sociedad", wantHome: "Barcelona", wantAway: "Real Sociedad"},
		{name: "embedded month", home: "Celta Vigo August", away: "Getafe", wantHome: "Celta Vigo", wantAway: "Getafe"},
		{name: "trailing athletic", home: "Valencia Athletic", away: "Club", wantHome: "Valencia", wantAway: "Athletic Club"},
		{name: "partition fallback", home: "Valencia Sevilla", away: "", wantHome: "Valencia", wantAway: "Sevilla"},
		{name: "accents", home: "Alaves", away: "atletico-madrid", wantHome: "Alavés", wantAway: "Atlético Madrid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h, a, ok := r.ResolvePair(tc.home, tc.away, rc)
			if !ok {
				t.Fatalf("expected %q / %q to resolve", tc.home, tc.away)
			}
			if h.Name != tc.wantHome || a.Name != tc.wantAway {
				t.Fatalf("got (%s, %s), want (%s, %s)", h.Name, a.Name, tc.wantHome, tc.wantAway)
			}
		})
	}

	if _, _, ok := r.ResolvePair("Leganes", "Sevilla", rc); ok {
		t.Fatalf("expected unknown team to stay unresolved")
	}
}
