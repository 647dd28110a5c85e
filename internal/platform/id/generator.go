// Package id derives the deterministic identifiers that link independently
// produced tables. Every value here is part of a compatibility contract:
// files written by earlier runs, or by other tools, must keep joining on the
// same numbers, so the hash algorithm, prefix widths and bases are fixed.
//
//	MatchID  = int64(parse_base16(md5(home_norm + "_" + away_norm + "_" + date)[:12]))
//	TeamID   = "TEAM-" + upper(md5(display_name)[:8])
//	PlayerID = "PLY-"  + upper(md5(display_name)[:10])
//
// md5 is used as a content fingerprint only; it carries no security meaning.
package id

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

const (
	matchHexDigits  = 12
	teamHexDigits   = 8
	playerHexDigits = 10

	TeamPrefix   = "TEAM-"
	PlayerPrefix = "PLY-"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Generator creates catalog identifiers from display names.
type Generator interface {
	TeamID(name string) string
	PlayerID(name string) string
}

// MD5Generator is the only Generator whose output other files agree with.
type MD5Generator struct{}

func NewMD5Generator() *MD5Generator {
	return &MD5Generator{}
}

func (g *MD5Generator) TeamID(name string) string {
	return TeamID(name)
}

func (g *MD5Generator) PlayerID(name string) string {
	return PlayerID(name)
}

// IsISODate reports whether s has the YYYY-MM-DD shape required by MatchID.
// It checks shape only, matching what earlier files were keyed with.
func IsISODate(s string) bool {
	return isoDate.MatchString(s)
}

// MatchID hashes a match key. homeNorm and awayNorm must already be
// normalized; order matters. ok is false when date is not YYYY-MM-DD.
func MatchID(homeNorm, awayNorm, date string) (int64, bool) {
	if !IsISODate(date) {
		return 0, false
	}
	digest := hexDigest(homeNorm + "_" + awayNorm + "_" + date)
	// 12 hex digits = 48 bits, always fits a positive int64.
	v, err := strconv.ParseInt(digest[:matchHexDigits], 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatMatchID renders a match id the way output tables store it.
func FormatMatchID(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ParseMatchID accepts ids written as integers or as floats ("123.0"),
// which is how spreadsheet round-trips tend to leave them.
func ParseMatchID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if head, _, found := strings.Cut(s, "."); found {
		s = head
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func TeamID(name string) string {
	return TeamPrefix + strings.ToUpper(hexDigest(name)[:teamHexDigits])
}

func PlayerID(name string) string {
	return PlayerPrefix + strings.ToUpper(hexDigest(name)[:playerHexDigits])
}

func hexDigest(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
