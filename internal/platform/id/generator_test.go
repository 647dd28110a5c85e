package id

import "testing"

func TestMatchID(t *testing.T) {
	t.Parallel()

	got, ok := MatchID("barcelona", "sevilla", "2025-08-15")
	if !ok {
		t.Fatalf("expected id for valid key")
	}
	if got != 175599394579560 {
		t.Fatalf("unexpected match id: %d", got)
	}

	again, _ := MatchID("barcelona", "sevilla", "2025-08-15")
	if again != got {
		t.Fatalf("match id not stable: %d vs %d", got, again)
	}
}

func TestMatchIDOrderMatters(t *testing.T) {
	t.Parallel()

	home, _ := MatchID("barcelona", "sevilla", "2025-08-15")
	away, _ := MatchID("sevilla", "barcelona", "2025-08-15")
	if home == away {
		t.Fatalf("expected swapped teams to produce a different id")
	}
	if away != 140133773605039 {
		t.Fatalf("unexpected swapped match id: %d", away)
	}
}

func TestMatchIDRejectsMalformedDates(t *testing.T) {
	t.Parallel()

	for _, date := range []string{"15-08-2025", "2025/08/15", "2025-8-15", "", "2025-08-15T00:00:00"} {
		if _, ok := MatchID("barcelona", "sevilla", date); ok {
			t.Fatalf("expected absent id for date %q", date)
		}
	}
}

func TestTeamID(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Barcelona":       "TEAM-550D05AB",
		"Real Madrid":     "TEAM-93330B41",
		"Atlético Madrid": "TEAM-F53424F0",
		"Alavés":          "TEAM-3E37DB98",
	}
	for name, want := range cases {
		if got := TeamID(name); got != want {
			t.Fatalf("TeamID(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestPlayerID(t *testing.T) {
	t.Parallel()

	if got := PlayerID("Lamine Yamal"); got != "PLY-6FD56536D7" {
		t.Fatalf("unexpected player id: %s", got)
	}
	var g Generator = NewMD5Generator()
	if g.PlayerID("Lamine Yamal") != PlayerID("Lamine Yamal") {
		t.Fatalf("generator must match package function")
	}
}

func TestParseMatchID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{in: "175599394579560", want: 175599394579560, ok: true},
		{in: "175599394579560.0", want: 175599394579560, ok: true},
		{in: " 42 ", want: 42, ok: true},
		{in: "", ok: false},
		{in: "abc", ok: false},
		{in: "-3", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseMatchID(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseMatchID(%q) = (%d, %t), want (%d, %t)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
