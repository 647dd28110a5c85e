package slug

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		wantHome []string
		wantAway []string
		wantDate string
	}{
		{
			name:     "title cased pair keeps one home token",
			in:       "Girona-Rayo-Vallecano-August-15-2025",
			wantHome: []string{"Girona"},
			wantAway: []string{"Rayo", "Vallecano"},
			wantDate: "2025-08-15",
		},
		{
			name:     "lower case continuation stays with home",
			in:       "Real-madrid-Sevilla-March-2-2025",
			wantHome: []string{"Real", "madrid"},
			wantAway: []string{"Sevilla"},
			wantDate: "2025-03-02",
		},
		{
			name:     "no second capital splits at midpoint",
			in:       "real-madrid-celta-vigo-May-10-2025",
			wantHome: []string{"real", "madrid"},
			wantAway: []string{"celta", "vigo"},
			wantDate: "2025-05-10",
		},
		{
			name:     "odd count midpoint favours away",
			in:       "elche-rayo-vallecano-October-1-2025",
			wantHome: []string{"elche"},
			wantAway: []string{"rayo", "vallecano"},
			wantDate: "2025-10-01",
		},
		{
			name:     "lower case first token is not a boundary",
			in:       "real-Madrid-Sevilla-August-15-2025",
			wantHome: []string{"real", "Madrid"},
			wantAway: []string{"Sevilla"},
			wantDate: "2025-08-15",
		},
		{
			name:     "single capital falls back to midpoint",
			in:       "real-madrid-Sevilla-August-15-2025",
			wantHome: []string{"real"},
			wantAway: []string{"madrid", "Sevilla"},
			wantDate: "2025-08-15",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if !reflect.DeepEqual(got.HomeTokens, tc.wantHome) {
				t.Fatalf("home tokens = %v, want %v", got.HomeTokens, tc.wantHome)
			}
			if !reflect.DeepEqual(got.AwayTokens, tc.wantAway) {
				t.Fatalf("away tokens = %v, want %v", got.AwayTokens, tc.wantAway)
			}
			if got.Date() != tc.wantDate {
				t.Fatalf("date = %s, want %s", got.Date(), tc.wantDate)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"",
		"August-15-2025",
		"Girona-August-15-2025",
		"Girona-Sevilla-Augustus-15-2025",
		"Girona-Sevilla-February-30-2025",
		"Girona-Sevilla-August-xx-2025",
		"Girona-Sevilla-August-15-25",
	} {
		if _, err := Parse(in); !errors.Is(err, ErrParse) {
			t.Fatalf("Parse(%q) error = %v, want ErrParse", in, err)
		}
	}
}

func TestParseLeapDay(t *testing.T) {
	t.Parallel()

	got, err := Parse("Getafe-Elche-February-29-2028")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Month != time.February || got.Day != 29 {
		t.Fatalf("unexpected date: %s", got.Date())
	}
}

func TestFromURL(t *testing.T) {
	t.Parallel()

	in := "https://fbref.com/en/matches/a1b2c3d4/Girona-Rayo-Vallecano-August-15-2025-La-Liga"
	if got := FromURL(in); got != "Girona-Rayo-Vallecano-August-15-2025" {
		t.Fatalf("FromURL = %q", got)
	}
	if got := Segment(in); got != "Girona-Rayo-Vallecano-August-15-2025-La-Liga" {
		t.Fatalf("Segment = %q", got)
	}
	if got := MonthOf(in); got != "August" {
		t.Fatalf("MonthOf = %q", got)
	}
	if got := MonthOf("https://fbref.com/en/comps/12/schedule"); got != "" {
		t.Fatalf("MonthOf without month = %q", got)
	}
}

func TestTeamWords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{
			in:   "https://fbref.com/en/matches/x/Girona-Rayo-Vallecano-August-15-2025-La-Liga",
			want: []string{"Girona", "Rayo", "Vallecano"},
		},
		{
			in:   "https://fbref.com/en/matches/x/El-Clasico-Barcelona-Real-Madrid-October-26-2025-La-Liga",
			want: []string{"Barcelona", "Real", "Madrid"},
		},
		{
			in:   "/en/matches/x/El-Derbi-Madrileno-Atletico-Madrid-Real-Madrid-September-27-2025-La-Liga",
			want: []string{"Atletico", "Madrid", "Real", "Madrid"},
		},
	}
	for _, tc := range cases {
		if got := TeamWords(tc.in, DefaultNoisePrefixes); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("TeamWords(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
