package team

import (
	"sort"
	"strings"
	"unicode"

	"github.com/riskibarqy/laliga-stats/internal/domain/slug"
	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// DefaultReclaimMap lists name roots and the words that complete them.
func DefaultReclaimMap() map[string][]string {
	return map[string][]string{
		"real":     {"madrid", "sociedad", "betis"},
		"atletico": {"madrid"},
		"celta":    {"vigo"},
		"rayo":     {"vallecano"},
		"athletic": {"club"},
	}
}

// Reclaimer repairs team cells where a multi-word name was cut in two and
// the pieces landed in different columns, e.g. home "Real" with away
// "Madrid Sevilla".
type Reclaimer struct {
	suffixes map[string]map[string]struct{}
}

// NewReclaimer keys are roots, values the suffix words each root may take
// back from the adjacent cell. Both sides are compared normalized.
func NewReclaimer(m map[string][]string) Reclaimer {
	rc := Reclaimer{suffixes: make(map[string]map[string]struct{}, len(m))}
	for root, words := range m {
		key := textnorm.Normalize(root)
		if key == "" {
			continue
		}
		set := rc.suffixes[key]
		if set == nil {
			set = make(map[string]struct{}, len(words))
			rc.suffixes[key] = set
		}
		for _, w := range words {
			if w = textnorm.Normalize(w); w != "" {
				set[w] = struct{}{}
			}
		}
	}
	return rc
}

// Roots returns the configured roots, sorted.
func (rc Reclaimer) Roots() []string {
	out := make([]string, 0, len(rc.suffixes))
	for root := range rc.suffixes {
		out = append(out, root)
	}
	sort.Strings(out)
	return out
}

// Repaired is the outcome of Repair. Month holds a month token found inside
// either cell, which is removed from the names.
type Repaired struct {
	Home    string
	Away    string
	Month   string
	Changed bool
}

// Repair strips embedded month and number tokens and moves one word across
// the boundary when the last home word is a root and the first away word
// is one of its suffixes. A lone root in home takes the suffix; a root
// trailing a longer home name moves over to away instead.
func (rc Reclaimer) Repair(home, away string) Repaired {
	hw, hMonth := cleanCell(home)
	aw, aMonth := cleanCell(away)

	out := Repaired{Month: hMonth}
	if out.Month == "" {
		out.Month = aMonth
	}
	changed := len(hw) != len(cellWords(home)) || len(aw) != len(cellWords(away))

	if len(hw) > 0 && len(aw) > 0 {
		root := textnorm.Normalize(hw[len(hw)-1])
		if set, ok := rc.suffixes[root]; ok {
			if _, ok := set[textnorm.Normalize(aw[0])]; ok {
				switch {
				case len(hw) == 1 && len(aw) > 1:
					hw = append(hw, aw[0])
					aw = aw[1:]
					changed = true
				case len(hw) > 1:
					aw = append([]string{hw[len(hw)-1]}, aw...)
					hw = hw[:len(hw)-1]
					changed = true
				}
			}
		}
	}

	out.Home = strings.Join(hw, " ")
	out.Away = strings.Join(aw, " ")
	out.Changed = changed
	return out
}

func cellWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
}

func cleanCell(s string) ([]string, string) {
	words := cellWords(s)
	out := words[:0:0]
	month := ""
	for _, w := range words {
		if slug.IsMonth(w) {
			if month == "" {
				month = w
			}
			continue
		}
		if isDigits(w) {
			continue
		}
		out = append(out, w)
	}
	return out, month
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
