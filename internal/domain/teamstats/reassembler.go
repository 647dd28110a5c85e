package teamstats

import (
	"regexp"
	"strconv"
	"strings"
)

// Row labels that announce a value row.
const (
	LabelShotsOnTarget = "Shots on Target"
	LabelSaves         = "Saves"
	LabelCards         = "Cards"
)

var (
	percentCell = regexp.MustCompile(`^(\d+)\s*%$`)
	ofPair      = regexp.MustCompile(`(?i)(\d+)\s*of\s*(\d+)`)
	bareInt     = regexp.MustCompile(`^\d+$`)
)

// RawRow is one line of a flattened team stats table. Filler holds the
// trailing columns the scan does not read.
type RawRow struct {
	Home   string
	Away   string
	URL    string
	Filler []string
}

// RawColumns is the header of the raw team stats file.
var RawColumns = []string{"home", "away", "url", "c4", "c5", "c6", "c7"}

// Cells lays the row out along RawColumns.
func (r RawRow) Cells() []string {
	out := make([]string, len(RawColumns))
	out[0], out[1], out[2] = r.Home, r.Away, r.URL
	copy(out[3:], r.Filler)
	return out
}

// RawRowFromCells is the inverse of Cells. Missing cells are blank.
func RawRowFromCells(cells []string) RawRow {
	get := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	row := RawRow{Home: get(0), Away: get(1), URL: get(2)}
	if len(cells) > 3 {
		row.Filler = append([]string(nil), cells[3:]...)
	}
	return row
}

// ResolveFunc maps a match URL to (home, away) display names.
type ResolveFunc func(url string) (home, away, month string, ok bool)

// ReassembleStats counts what a scan saw.
type ReassembleStats struct {
	Rows             int `json:"rows"`
	MatchStarts      int `json:"match_starts"`
	UnresolvedStarts int `json:"unresolved_starts"`
	Emitted          int `json:"emitted"`
}

// Reassembler regroups a flat row stream into match records.
//
// Awaiting a match it only looks for a start row: both cells pure
// percentages and a URL that resolves. Inside a match a "Shots on Target"
// or "Saves" label makes the next row a value row; "Cards" sets both sides
// to 0 because the page layout carries no card counts. A new start row
// emits the current record, and Close emits the last one. A start row
// whose URL does not resolve is skipped without closing the current record.
type Reassembler struct {
	resolve ResolveFunc

	current *MatchRecord
	pending string
	out     []MatchRecord
	stats   ReassembleStats
}

func NewReassembler(resolve ResolveFunc) *Reassembler {
	return &Reassembler{resolve: resolve}
}

// Feed consumes one row.
func (r *Reassembler) Feed(row RawRow) {
	r.stats.Rows++

	home := strings.TrimSpace(row.Home)
	away := strings.TrimSpace(row.Away)

	if r.pending != "" {
		r.applyValues(r.pending, home, away)
		r.pending = ""
	}

	if possHome, possAway, ok := percentPair(home, away); ok {
		r.stats.MatchStarts++
		homeTeam, awayTeam, month, resolved := r.resolve(row.URL)
		if !resolved {
			r.stats.UnresolvedStarts++
			return
		}
		r.emit()
		r.current = &MatchRecord{
			HomeTeam:  homeTeam,
			AwayTeam:  awayTeam,
			MonthText: month,
			PossHome:  intPtr(possHome),
			PossAway:  intPtr(possAway),
		}
		return
	}

	if r.current == nil {
		return
	}
	switch home {
	case LabelShotsOnTarget, LabelSaves:
		r.pending = home
	case LabelCards:
		r.current.CardsHome = intPtr(0)
		r.current.CardsAway = intPtr(0)
	}
}

// Close emits any pending record and returns everything in detection order.
func (r *Reassembler) Close() ([]MatchRecord, ReassembleStats) {
	r.emit()
	r.pending = ""
	return r.out, r.stats
}

func (r *Reassembler) emit() {
	if r.current == nil {
		return
	}
	r.out = append(r.out, *r.current)
	r.stats.Emitted++
	r.current = nil
}

func (r *Reassembler) applyValues(label, home, away string) {
	if r.current == nil {
		return
	}
	switch label {
	case LabelShotsOnTarget:
		r.current.ShotsOnTargetHome, r.current.ShotsTotalHome = ParsePair(home)
		r.current.ShotsOnTargetAway, r.current.ShotsTotalAway = ParsePair(away)
	case LabelSaves:
		r.current.SavesHome = ParseCount(home)
		r.current.SavesAway = ParseCount(away)
	}
}

// Reassemble runs a full scan over rows.
func Reassemble(rows []RawRow, resolve ResolveFunc) ([]MatchRecord, ReassembleStats) {
	r := NewReassembler(resolve)
	for _, row := range rows {
		r.Feed(row)
	}
	return r.Close()
}

// ParsePair extracts N and M from text such as "2 of 7 — 29%" or
// "31% — 5 of 16". Both are nil when no pair is present.
func ParsePair(cell string) (*int, *int) {
	m := ofPair.FindStringSubmatch(cell)
	if m == nil {
		return nil, nil
	}
	n, errN := strconv.Atoi(m[1])
	total, errM := strconv.Atoi(m[2])
	if errN != nil || errM != nil {
		return nil, nil
	}
	return &n, &total
}

// ParseCount reads a single count: N from "N of M", or a bare integer.
func ParseCount(cell string) *int {
	if n, _ := ParsePair(cell); n != nil {
		return n
	}
	cell = strings.TrimSpace(cell)
	if !bareInt.MatchString(cell) {
		return nil
	}
	v, err := strconv.Atoi(cell)
	if err != nil {
		return nil
	}
	return &v
}

func percentPair(home, away string) (int, int, bool) {
	h := percentCell.FindStringSubmatch(home)
	a := percentCell.FindStringSubmatch(away)
	if h == nil || a == nil {
		return 0, 0, false
	}
	hv, errH := strconv.Atoi(h[1])
	av, errA := strconv.Atoi(a[1])
	if errH != nil || errA != nil {
		return 0, 0, false
	}
	return hv, av, true
}
