package teamstats

import (
	"math"
	"strconv"
	"strings"
)

// Side marks which half of a match record a row came from.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

// Output columns of a reassembled match table.
const (
	ColHomeTeam       = "home_team"
	ColAwayTeam       = "away_team"
	ColMonth          = "month_txt"
	ColPossHome       = "poss_home"
	ColPossAway       = "poss_away"
	ColShotsOTHome    = "shots_ot_home"
	ColShotsTotalHome = "shots_total_home"
	ColShotsOTAway    = "shots_ot_away"
	ColShotsTotalAway = "shots_total_away"
	ColSavesHome      = "saves_home"
	ColSavesAway      = "saves_away"
	ColCardsHome      = "cards_home"
	ColCardsAway      = "cards_away"
)

// StatColumns are the numeric columns in output order.
var StatColumns = []string{
	ColPossHome, ColPossAway,
	ColShotsOTHome, ColShotsTotalHome,
	ColShotsOTAway, ColShotsTotalAway,
	ColSavesHome, ColSavesAway,
	ColCardsHome, ColCardsAway,
}

// RecordColumns is the full header of a reassembled table.
var RecordColumns = append([]string{ColHomeTeam, ColAwayTeam, ColMonth}, StatColumns...)

// MatchRecord groups the scattered statistic rows of one match. Nil
// pointers are values the page did not provide.
type MatchRecord struct {
	HomeTeam  string
	AwayTeam  string
	MonthText string

	PossHome *int
	PossAway *int

	ShotsOnTargetHome *int
	ShotsTotalHome    *int
	ShotsOnTargetAway *int
	ShotsTotalAway    *int

	SavesHome *int
	SavesAway *int

	CardsHome *int
	CardsAway *int
}

// Values returns the record's cells keyed by output column.
func (r MatchRecord) Values() map[string]string {
	return map[string]string{
		ColHomeTeam:       r.HomeTeam,
		ColAwayTeam:       r.AwayTeam,
		ColMonth:          r.MonthText,
		ColPossHome:       FormatInt(r.PossHome),
		ColPossAway:       FormatInt(r.PossAway),
		ColShotsOTHome:    FormatInt(r.ShotsOnTargetHome),
		ColShotsTotalHome: FormatInt(r.ShotsTotalHome),
		ColShotsOTAway:    FormatInt(r.ShotsOnTargetAway),
		ColShotsTotalAway: FormatInt(r.ShotsTotalAway),
		ColSavesHome:      FormatInt(r.SavesHome),
		ColSavesAway:      FormatInt(r.SavesAway),
		ColCardsHome:      FormatInt(r.CardsHome),
		ColCardsAway:      FormatInt(r.CardsAway),
	}
}

// RecordFromValues reads a record back from its cells. Cells that are
// not integers become nil.
func RecordFromValues(get func(col string) string) MatchRecord {
	return MatchRecord{
		HomeTeam:          get(ColHomeTeam),
		AwayTeam:          get(ColAwayTeam),
		MonthText:         get(ColMonth),
		PossHome:          ParseInt(get(ColPossHome)),
		PossAway:          ParseInt(get(ColPossAway)),
		ShotsOnTargetHome: ParseInt(get(ColShotsOTHome)),
		ShotsTotalHome:    ParseInt(get(ColShotsTotalHome)),
		ShotsOnTargetAway: ParseInt(get(ColShotsOTAway)),
		ShotsTotalAway:    ParseInt(get(ColShotsTotalAway)),
		SavesHome:         ParseInt(get(ColSavesHome)),
		SavesAway:         ParseInt(get(ColSavesAway)),
		CardsHome:         ParseInt(get(ColCardsHome)),
		CardsAway:         ParseInt(get(ColCardsAway)),
	}
}

// SideStat is one team's half of a match record.
type SideStat struct {
	MatchID       int64  `validate:"gt=0"`
	TeamID        string `validate:"required,startswith=TEAM-"`
	Side          Side   `validate:"oneof=HOME AWAY"`
	Possession    *int   `validate:"omitempty,gte=0,lte=100"`
	ShotsOnTarget *int   `validate:"omitempty,gte=0"`
	ShotsTotal    *int   `validate:"omitempty,gte=0"`
	Saves         *int   `validate:"omitempty,gte=0"`
	Cards         *int   `validate:"omitempty,gte=0"`
}

// SplitResult reports which sides were dropped for lack of a team id.
type SplitResult struct {
	Rows        []SideStat
	DroppedHome bool
	DroppedAway bool
}

// Split turns one match record into per-side rows. A side without a team
// id is dropped, the other side is still emitted.
func Split(matchID int64, homeTeamID, awayTeamID string, r MatchRecord) SplitResult {
	var out SplitResult
	if homeTeamID != "" {
		out.Rows = append(out.Rows, SideStat{
			MatchID:       matchID,
			TeamID:        homeTeamID,
			Side:          SideHome,
			Possession:    r.PossHome,
			ShotsOnTarget: r.ShotsOnTargetHome,
			ShotsTotal:    r.ShotsTotalHome,
			Saves:         r.SavesHome,
			Cards:         r.CardsHome,
		})
	} else {
		out.DroppedHome = true
	}
	if awayTeamID != "" {
		out.Rows = append(out.Rows, SideStat{
			MatchID:       matchID,
			TeamID:        awayTeamID,
			Side:          SideAway,
			Possession:    r.PossAway,
			ShotsOnTarget: r.ShotsOnTargetAway,
			ShotsTotal:    r.ShotsTotalAway,
			Saves:         r.SavesAway,
			Cards:         r.CardsAway,
		})
	} else {
		out.DroppedAway = true
	}
	return out
}

// ParseInt reads integers written plainly or as floats ("55.0").
func ParseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := int(f)
	return &v
}

func FormatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func intPtr(v int) *int {
	return &v
}
