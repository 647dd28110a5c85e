// Package slug reads match report URL segments of the form
// "<Home tokens>-<Away tokens>-<Month>-<Day>-<Year>[-<Competition>]".
//
// Home and away tokens carry no separator, so Parse can only guess the
// boundary from capitalization. That guess is lossy: with title-cased slugs
// every token looks like a new name and the home side gets a single token.
// Callers that know the team list should resolve the boundary with
// team.Roster.MatchTeams instead and use Parse for the date.
package slug

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var ErrParse = errors.New("slug parse error")

var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// Slug is one parsed segment.
type Slug struct {
	HomeTokens []string
	AwayTokens []string
	Month      time.Month
	Day        int
	Year       int
}

// Date returns the match date as YYYY-MM-DD.
func (s Slug) Date() string {
	return fmt.Sprintf("%04d-%02d-%02d", s.Year, int(s.Month), s.Day)
}

// TeamTokens returns home then away tokens.
func (s Slug) TeamTokens() []string {
	out := make([]string, 0, len(s.HomeTokens)+len(s.AwayTokens))
	out = append(out, s.HomeTokens...)
	return append(out, s.AwayTokens...)
}

// Parse splits a segment ending in <Month>-<Day>-<Year>. It fails with
// ErrParse on fewer than four tokens, an invalid calendar date, or when no
// away tokens can be found.
func Parse(segment string) (Slug, error) {
	parts := strings.Split(strings.TrimSpace(segment), "-")
	if len(parts) < 4 {
		return Slug{}, fmt.Errorf("%w: %q has %d tokens, need at least 4", ErrParse, segment, len(parts))
	}

	n := len(parts)
	month, day, year, err := parseDate(parts[n-3], parts[n-2], parts[n-1])
	if err != nil {
		return Slug{}, fmt.Errorf("%w: %q: %v", ErrParse, segment, err)
	}

	home, away := splitTeams(parts[:n-3])
	if len(away) == 0 {
		return Slug{}, fmt.Errorf("%w: %q: no away team tokens", ErrParse, segment)
	}

	return Slug{
		HomeTokens: home,
		AwayTokens: away,
		Month:      month,
		Day:        day,
		Year:       year,
	}, nil
}

// splitTeams applies the capitalization heuristic. Tokens starting with an
// upper-case letter are counted in order; the second one opens the away
// name. Without a second one, more than one token is split at the midpoint.
func splitTeams(tokens []string) ([]string, []string) {
	proper := 0
	for i, tok := range tokens {
		if !startsUpper(tok) {
			continue
		}
		proper++
		if proper == 2 {
			return tokens[:i], tokens[i:]
		}
	}
	if len(tokens) > 1 {
		mid := len(tokens) / 2
		return tokens[:mid], tokens[mid:]
	}
	return tokens, nil
}

func parseDate(monthTok, dayTok, yearTok string) (time.Month, int, int, error) {
	month, ok := months[monthTok]
	if !ok {
		return 0, 0, 0, fmt.Errorf("unknown month %q", monthTok)
	}
	day, err := strconv.Atoi(dayTok)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid day %q", dayTok)
	}
	if len(yearTok) != 4 {
		return 0, 0, 0, fmt.Errorf("invalid year %q", yearTok)
	}
	year, err := strconv.Atoi(yearTok)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year %q", yearTok)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return 0, 0, 0, fmt.Errorf("%s %d %d is not a calendar date", monthTok, day, year)
	}
	return month, day, year, nil
}

func startsUpper(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// IsMonth reports whether tok is an English month name as written in URLs.
func IsMonth(tok string) bool {
	_, ok := months[tok]
	return ok
}
