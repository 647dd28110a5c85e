package slug

import (
	"net/url"
	"strings"

	"github.com/riskibarqy/laliga-stats/internal/platform/textnorm"
)

// DefaultNoisePrefixes are nickname words some match slugs start with,
// as in "El-Clasico-..." or "El-Derbi-Madrileno-...".
var DefaultNoisePrefixes = []string{"el", "clasico", "clásico", "derbi", "madrileno", "madrileño"}

// Segment returns the last path segment of a match URL, or the input
// itself when it has no path.
func Segment(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		raw = u.Path
	}
	raw = strings.TrimRight(raw, "/")
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}
	return raw
}

// FromURL returns the dated slug of a match URL with any competition
// suffix after the year removed, e.g. ".../Girona-Rayo-Vallecano-August-15-2025-La-Liga"
// gives "Girona-Rayo-Vallecano-August-15-2025". URLs without a month token
// return their last segment unchanged.
func FromURL(raw string) string {
	seg := Segment(raw)
	parts := strings.Split(seg, "-")
	m := monthIndex(parts)
	if m < 0 || m+3 > len(parts) {
		return seg
	}
	return strings.Join(parts[:m+3], "-")
}

// MonthOf returns the first month token in the URL, or "".
func MonthOf(raw string) string {
	parts := strings.Split(Segment(raw), "-")
	if m := monthIndex(parts); m >= 0 {
		return parts[m]
	}
	return ""
}

// TeamWords returns the tokens before the first month token, without
// leading noise prefixes. Prefixes are compared in normalized form.
func TeamWords(raw string, noisePrefixes []string) []string {
	parts := strings.Split(Segment(raw), "-")
	if m := monthIndex(parts); m >= 0 {
		parts = parts[:m]
	}

	noise := make(map[string]struct{}, len(noisePrefixes))
	for _, p := range noisePrefixes {
		noise[textnorm.Normalize(p)] = struct{}{}
	}

	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			words = append(words, p)
		}
	}
	for len(words) > 0 {
		if _, ok := noise[textnorm.Normalize(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	return words
}

func monthIndex(parts []string) int {
	for i, p := range parts {
		if IsMonth(p) {
			return i
		}
	}
	return -1
}
