package fixture

import (
	"time"

	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// Fixture is one scheduled match from the official calendar.
type Fixture struct {
	MatchID    int64  `validate:"gt=0"`
	Date       string `validate:"required,datetime=2006-01-02"`
	Week       string
	HomeTeam   string `validate:"required"`
	AwayTeam   string `validate:"required"`
	HomeTeamID string
	AwayTeamID string
	Score      string
	Venue      string
	MatchURL   string
}

// MatchKey identifies a match across independently produced tables.
type MatchKey struct {
	HomeNorm string
	AwayNorm string
	Date     string
}

// NewMatchKey normalizes both team names.
func NewMatchKey(home, away, date string) MatchKey {
	return MatchKey{
		HomeNorm: textnorm.Normalize(home),
		AwayNorm: textnorm.Normalize(away),
		Date:     date,
	}
}

// Valid reports whether the key can produce an id.
func (k MatchKey) Valid() bool {
	return k.HomeNorm != "" && k.AwayNorm != "" && idgen.IsISODate(k.Date)
}

// ID returns the match id; ok is false for malformed dates.
func (k MatchKey) ID() (int64, bool) {
	return idgen.MatchID(k.HomeNorm, k.AwayNorm, k.Date)
}

// MonthText is the English month name of the key's date, "" if malformed.
func (k MatchKey) MonthText() string {
	if !idgen.IsISODate(k.Date) {
		return ""
	}
	t, err := time.Parse(time.DateOnly, k.Date)
	if err != nil {
		return ""
	}
	return t.Month().String()
}

// JoinKey is what team stat rows are matched to fixtures on.
type JoinKey struct {
	HomeNorm  string
	AwayNorm  string
	MonthText string
}

func (k MatchKey) JoinKey() JoinKey {
	return JoinKey{HomeNorm: k.HomeNorm, AwayNorm: k.AwayNorm, MonthText: k.MonthText()}
}
