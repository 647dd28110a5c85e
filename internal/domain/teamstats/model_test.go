package teamstats

import "testing"

func TestSplit(t *testing.T) {
	t.Parallel()

	rec := MatchRecord{
		PossHome:          intPtr(55),
		PossAway:          intPtr(45),
		ShotsOnTargetHome: intPtr(3),
		ShotsTotalAway:    intPtr(8),
		CardsHome:         intPtr(0),
		CardsAway:         intPtr(0),
	}

	full := Split(42, "TEAM-AAAA", "TEAM-BBBB", rec)
	if len(full.Rows) != 2 || full.DroppedHome || full.DroppedAway {
		t.Fatalf("unexpected split: %+v", full)
	}
	if full.Rows[0].Side != SideHome || full.Rows[1].Side != SideAway {
		t.Fatalf("unexpected side order")
	}
	if *full.Rows[0].Possession != 55 || *full.Rows[1].Possession != 45 {
		t.Fatalf("possession crossed sides")
	}
	if full.Rows[1].ShotsOnTarget != nil {
		t.Fatalf("absent values must stay absent")
	}

	half := Split(42, "", "TEAM-BBBB", rec)
	if len(half.Rows) != 1 || !half.DroppedHome || half.DroppedAway {
		t.Fatalf("unexpected half split: %+v", half)
	}
}

func TestRecordValuesRoundTrip(t *testing.T) {
	t.Parallel()

	rec := MatchRecord{HomeTeam: "Girona", AwayTeam: "Rayo Vallecano", MonthText: "August", PossHome: intPtr(55)}
	values := rec.Values()
	back := RecordFromValues(func(col string) string { return values[col] })
	if back.HomeTeam != "Girona" || back.MonthText != "August" || *back.PossHome != 55 || back.PossAway != nil {
		t.Fatalf("unexpected record: %+v", back)
	}
}

func TestParseInt(t *testing.T) {
	t.Parallel()

	if v := ParseInt("55.0"); v == nil || *v != 55 {
		t.Fatalf("expected float text to parse")
	}
	for _, in := range []string{"", "NaN", "abc", "inf"} {
		if ParseInt(in) != nil {
			t.Fatalf("expected nil for %q", in)
		}
	}
}
