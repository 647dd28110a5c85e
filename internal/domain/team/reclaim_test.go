package team

import (
	"reflect"
	"testing"
)

func TestReclaimerRepair(t *testing.T) {
	t.Parallel()

	rc := NewReclaimer(DefaultReclaimMap())
	cases := []struct {
		name       string
		home, away string
		want       Repaired
	}{
		{
			name: "untouched",
			home: "Girona", away: "Sevilla",
			want: Repaired{Home: "Girona", Away: "Sevilla"},
		},
		{
			name: "lone root takes suffix",
			home: "Real", away: "Betis Osasuna",
			want: Repaired{Home: "Real Betis", Away: "Osasuna", Changed: true},
		},
		{
			name: "trailing root moves to away",
			home: "Getafe Rayo", away: "Vallecano",
			want: Repaired{Home: "Getafe", Away: "Rayo Vallecano", Changed: true},
		},
		{
			name: "accented root",
			home: "Atlético", away: "Madrid Elche",
			want: Repaired{Home: "Atlético Madrid", Away: "Elche", Changed: true},
		},
		{
			name: "unknown suffix stays",
			home: "Real", away: "Oviedo Elche",
			want: Repaired{Home: "Real", Away: "Oviedo Elche"},
		},
		{
			name: "month and numbers stripped",
			home: "Levante", away: "Espanyol May 3 2025",
			want: Repaired{Home: "Levante", Away: "Espanyol", Month: "May", Changed: true},
		},
		{
			name: "ambiguous pair left alone",
			home: "Celta", away: "Vigo",
			want: Repaired{Home: "Celta", Away: "Vigo"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := rc.Repair(tc.home, tc.away); got != tc.want {
				t.Fatalf("Repair(%q, %q) = %+v, want %+v", tc.home, tc.away, got, tc.want)
			}
		})
	}
}

func TestReclaimerRoots(t *testing.T) {
	t.Parallel()

	rc := NewReclaimer(map[string][]string{"Real": {"Madrid"}, "Atlético": {"Madrid"}, "": {"x"}})
	if got := rc.Roots(); !reflect.DeepEqual(got, []string{"atletico", "real"}) {
		t.Fatalf("unexpected roots: %v", got)
	}
}
