package fbref

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// Fixture table columns.
const (
	ColWeek     = "Wk"
	ColDay      = "Day"
	ColDate     = "Date"
	ColTime     = "Time"
	ColHome     = "Home"
	ColScore    = "Score"
	ColAway     = "Away"
	ColVenue    = "Venue"
	ColMatchURL = "Match URL"
)

var FixtureColumns = []string{ColWeek, ColDay, ColDate, ColTime, ColHome, ColScore, ColAway, ColVenue, ColMatchURL}

var fixtureStats = map[string]string{
	"gameweek":   ColWeek,
	"dayofweek":  ColDay,
	"date":       ColDate,
	"start_time": ColTime,
	"home_team":  ColHome,
	"score":      ColScore,
	"away_team":  ColAway,
	"venue":      ColVenue,
}

// ParseFixtures reads the season schedule table. Spacer and repeated
// header rows are skipped.
func ParseFixtures(r io.Reader) (*table.Table, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return nil, err
	}

	sched := doc.Find(`table[id^="sched_"]`).First()
	if sched.Length() == 0 {
		return nil, crerr.Mark(crerr.New("schedule table missing"), ErrTableNotFound)
	}

	out := table.New("fixtures", FixtureColumns...)
	sched.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if isHeaderRow(tr) || strings.Contains(tr.AttrOr("class", ""), "spacer") {
			return
		}

		values := make(map[string]string, len(FixtureColumns))
		tr.Children().Filter("th,td").Each(func(_ int, cell *goquery.Selection) {
			stat := cell.AttrOr("data-stat", "")
			if col, ok := fixtureStats[stat]; ok {
				values[col] = cellText(cell)
			}
			if stat == "match_report" {
				if href, ok := cell.Find(`a[href*="/matches/"]`).Attr("href"); ok {
					values[ColMatchURL] = AbsoluteURL(href)
				}
			}
		})
		if values[ColHome] == "" && values[ColAway] == "" {
			return
		}
		out.AppendMap(values)
	})
	return out, nil
}

// MatchURLs lists the distinct match report links in schedule order.
func MatchURLs(fixtures *table.Table) []string {
	return fixtures.Distinct(ColMatchURL)
}
