package fbref

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/riskibarqy/laliga-stats/internal/domain/teamstats"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

// Player raw table bookkeeping columns.
const (
	ColStatType    = "stat_type"
	ColTeam        = "team"
	ColRawMatchURL = "match_url"
)

var teamStatBlocks = []string{"team_stats", "team_stats_extra"}

var skipPlayers = map[string]struct{}{
	"":            {},
	ColPlayer:     {},
	"Starting XI": {},
	"Bench":       {},
}

// Scorebox is the header of a match report.
type Scorebox struct {
	HomeTeam string
	AwayTeam string
	Score    string
	Date     string
}

// Match is everything read from one match report page.
type Match struct {
	URL      string
	Scorebox Scorebox
	// TeamRows are the team stats tables flattened to two cells per row.
	TeamRows []teamstats.RawRow
	// Players holds every per-player table, one row per player and table.
	Players *table.Table
}

// Empty reports whether the page had neither team nor player tables.
func (m Match) Empty() bool {
	return len(m.TeamRows) == 0 && m.Players.Len() == 0
}

// ParseMatch reads a match report. url overrides the page's canonical link.
func ParseMatch(r io.Reader, url string) (Match, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return Match{}, err
	}

	if url == "" {
		url = CanonicalURL(doc)
	}
	m := Match{URL: url, Scorebox: parseScorebox(doc)}
	m.TeamRows = parseTeamStats(doc, url, m.Scorebox)
	m.Players = parsePlayerTables(doc, url)
	return m, nil
}

func parseScorebox(doc *goquery.Document) Scorebox {
	box := doc.Find(".scorebox").First()
	teams := box.Children().Filter("div")

	var scores []string
	box.Find(".scores .score").Each(func(_ int, s *goquery.Selection) {
		scores = append(scores, cellText(s))
	})

	return Scorebox{
		HomeTeam: cellText(teams.Eq(0).Find("strong a").First()),
		AwayTeam: cellText(teams.Eq(1).Find("strong a").First()),
		Score:    strings.Join(scores, "-"),
		Date:     cellText(box.Find(".scorebox_meta div").First()),
	}
}

// parseTeamStats flattens the team stats blocks. A label row spanning
// both columns is repeated into both cells; the leading row of team
// names is dropped.
func parseTeamStats(doc *goquery.Document, url string, box Scorebox) []teamstats.RawRow {
	filler := []string{box.HomeTeam, box.AwayTeam, box.Score, box.Date}

	var rows []teamstats.RawRow
	for _, block := range teamStatBlocks {
		doc.Find("div#" + block + " table").Each(func(_ int, tbl *goquery.Selection) {
			tbl.Find("tr").Each(func(i int, tr *goquery.Selection) {
				cells := tr.Children().Filter("th,td")
				if cells.Length() == 0 {
					return
				}
				if i == 0 && cells.Length() == cells.Filter("th").Length() && cells.Length() > 1 {
					return
				}

				row := teamstats.RawRow{URL: url, Filler: filler}
				first := cells.Eq(0)
				if cells.Length() == 1 {
					row.Home = cellText(first)
					if colspan(first) > 1 {
						row.Away = row.Home
					}
				} else {
					row.Home = cellText(first)
					row.Away = cellText(cells.Eq(1))
				}
				rows = append(rows, row)
			})
		})
	}
	return rows
}

func parsePlayerTables(doc *goquery.Document, url string) *table.Table {
	var parsed []*table.Table

	doc.Find(`div[id^="div_stats_"]`).Each(func(_ int, div *goquery.Selection) {
		id := div.AttrOr("id", "")
		statType := strings.TrimPrefix(id, "div_stats_")
		if strings.Contains(statType, "keeper_") || strings.Contains(statType, "team_") {
			return
		}
		tbl := div.Find("table").First()
		if tbl.Length() == 0 {
			return
		}

		header := flattenHeader(tbl.Find("thead"), true)
		t := table.New(statType, header...)
		if !t.Has(ColPlayer) {
			return
		}
		tbl.Find("tbody tr, tfoot tr").Each(func(_ int, tr *goquery.Selection) {
			if isHeaderRow(tr) {
				return
			}
			cells := rowCells(tr)
			if nonEmpty(cells) <= 1 {
				return
			}
			t.Append(cells...)
		})
		t = t.Filter(func(row int) bool {
			_, skip := skipPlayers[t.Value(row, ColPlayer)]
			return !skip
		})
		if t.Len() == 0 {
			return
		}

		teamHash, _, _ := strings.Cut(statType, "_")
		t.AddColumn(ColStatType, func(int) string { return statType })
		t.AddColumn(ColTeam, func(int) string { return teamHash })
		parsed = append(parsed, t)
	})

	out := table.Concat("players_raw", parsed...)
	out.AddColumn(ColRawMatchURL, func(int) string { return url })
	return out
}

func nonEmpty(cells []string) int {
	n := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}
