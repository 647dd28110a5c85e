package fbref

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/laliga-stats/internal/platform/table"
)

const (
	ColPlayer   = "Player"
	ColSquad    = "Squad"
	ColNation   = "Nation"
	ColPosition = "Pos"
	ColAge      = "Age"
)

var standardRenames = map[string]string{
	"Team":     ColSquad,
	"Equipo":   ColSquad,
	"Nación":   ColNation,
	"País":     ColNation,
	"Posición": ColPosition,
	"Edad":     ColAge,
}

var rankColumns = []string{"Rk", "Rank", "Ranking"}

// ParseStandardPlayers reads the league "Player Standard Stats" table,
// visible or commented out. Headers keep their last level only.
func ParseStandardPlayers(r io.Reader) (*table.Table, error) {
	doc, err := loadDocument(r)
	if err != nil {
		return nil, err
	}

	tbl := doc.Find("table#stats_standard").First()
	if tbl.Length() == 0 {
		return nil, crerr.Mark(crerr.New("standard stats table missing"), ErrTableNotFound)
	}

	header := flattenHeader(tbl.Find("thead"), false)
	out := table.New("players", header...)
	tbl.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if isHeaderRow(tr) {
			return
		}
		out.Append(rowCells(tr)...)
	})

	if out.Has(ColPlayer) {
		out = out.Filter(func(row int) bool {
			p := out.Value(row, ColPlayer)
			return p != "" && p != ColPlayer
		})
	}
	out = out.Drop(rankColumns...)
	out.Rename(standardRenames)
	return out.Filter(func(row int) bool { return !out.RowEmpty(row) }), nil
}
