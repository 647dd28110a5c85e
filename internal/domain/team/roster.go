package team

import (
	"strings"

	idgen "github.com/riskibarqy/laliga-stats/internal/platform/id"
	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// Entry is the authoritative form of one roster name.
type Entry struct {
	Name string
	ID   string
}

// Roster maps normalized names to their authoritative entry. It is built
// once and never mutated; copies share the same read-only map.
type Roster struct {
	byNorm map[string]Entry
	order  []string
}

// NewRoster indexes teams by normalized name. When two teams normalize to
// the same key the first one wins.
func NewRoster(teams []Team) Roster {
	r := Roster{byNorm: make(map[string]Entry, len(teams))}
	for _, t := range teams {
		key := textnorm.Normalize(t.Name)
		if key == "" {
			continue
		}
		if _, dup := r.byNorm[key]; dup {
			continue
		}
		entryID := t.ID
		if entryID == "" {
			entryID = idgen.TeamID(t.Name)
		}
		r.byNorm[key] = Entry{Name: t.Name, ID: entryID}
		r.order = append(r.order, t.Name)
	}
	return r
}

// RosterFromNames builds a roster whose ids come from id.TeamID.
func RosterFromNames(names ...string) Roster {
	teams := make([]Team, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		teams = append(teams, Team{Name: name})
	}
	return NewRoster(teams)
}

func (r Roster) Len() int {
	return len(r.byNorm)
}

// Names returns display names in insertion order.
func (r Roster) Names() []string {
	return append([]string(nil), r.order...)
}

// Lookup resolves any spelling of a name.
func (r Roster) Lookup(name string) (Entry, bool) {
	e, ok := r.byNorm[textnorm.Normalize(name)]
	return e, ok
}

// MatchTeams finds the split of words into two roster names. Split points
// are tried left to right and the first split where both sides resolve
// wins; a right to left pass follows as a second chance. With plain
// membership checks the second pass finds nothing the first missed, it is
// kept so that the order of preference stays explicit.
func (r Roster) MatchTeams(words []string) (home, away Entry, ok bool) {
	n := len(words)
	for i := 1; i < n; i++ {
		if home, away, ok = r.splitAt(words, i); ok {
			return home, away, true
		}
	}
	for i := n - 1; i > 0; i-- {
		if home, away, ok = r.splitAt(words, i); ok {
			return home, away, true
		}
	}
	return Entry{}, Entry{}, false
}

func (r Roster) splitAt(words []string, i int) (Entry, Entry, bool) {
	home, ok := r.Lookup(strings.Join(words[:i], " "))
	if !ok {
		return Entry{}, Entry{}, false
	}
	away, ok := r.Lookup(strings.Join(words[i:], " "))
	if !ok {
		return Entry{}, Entry{}, false
	}
	return home, away, true
}

// ResolvePair resolves a (home, away) cell pair. It tries the cells as
// given, then the reclaimer's repair, then a partition search over all
// words of both cells.
func (r Roster) ResolvePair(home, away string, rc Reclaimer) (Entry, Entry, bool) {
	if h, ok := r.Lookup(home); ok {
		if a, ok := r.Lookup(away); ok {
			return h, a, true
		}
	}

	fixed := rc.Repair(home, away)
	if h, ok := r.Lookup(fixed.Home); ok {
		if a, ok := r.Lookup(fixed.Away); ok {
			return h, a, true
		}
	}

	words := append(cellWords(fixed.Home), cellWords(fixed.Away)...)
	return r.MatchTeams(words)
}
