// Package fbref parses saved fbref.com pages: the league schedule, the
// league standard stats and single match reports.
package fbref

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

const BaseURL = "https://fbref.com"

// ErrTableNotFound marks pages that lack the table a parser needs.
var ErrTableNotFound = crerr.New("fbref table not found")

var (
	wsRe           = regexp.MustCompile(`\s+`)
	commentMarkers = strings.NewReplacer("<!--", "", "-->", "")
)

// loadDocument parses a page with its comment markers removed, since
// fbref ships most secondary tables inside HTML comments.
func loadDocument(r io.Reader) (*goquery.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, crerr.Wrap(err, "read page")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(commentMarkers.Replace(string(raw))))
	if err != nil {
		return nil, crerr.Wrap(err, "parse page")
	}
	return doc, nil
}

// CanonicalURL returns the page's canonical link, or "".
func CanonicalURL(doc *goquery.Document) string {
	href, _ := doc.Find(`link[rel="canonical"]`).First().Attr("href")
	return strings.TrimSpace(href)
}

// AbsoluteURL resolves site-relative links against BaseURL.
func AbsoluteURL(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "/") {
		return BaseURL + href
	}
	return href
}

func cellText(s *goquery.Selection) string {
	return wsRe.ReplaceAllString(strings.TrimSpace(s.Text()), " ")
}

func isHeaderRow(tr *goquery.Selection) bool {
	return strings.Contains(tr.AttrOr("class", ""), "thead")
}

func colspan(s *goquery.Selection) int {
	n, err := strconv.Atoi(s.AttrOr("colspan", "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// flattenHeader builds one name per column from a (possibly two-level)
// thead. Grouped columns become "Group_Name"; ungrouped keep their name.
func flattenHeader(thead *goquery.Selection, join bool) []string {
	rows := thead.Find("tr")
	if rows.Length() == 0 {
		return nil
	}

	last := rows.Last()
	var names []string
	last.Children().Filter("th,td").Each(func(_ int, cell *goquery.Selection) {
		names = append(names, cellText(cell))
	})
	if !join || rows.Length() < 2 {
		return dedupe(names)
	}

	var groups []string
	rows.Eq(rows.Length()-2).Children().Filter("th,td").Each(func(_ int, cell *goquery.Selection) {
		label := cellText(cell)
		for i := 0; i < colspan(cell); i++ {
			groups = append(groups, label)
		}
	})

	out := make([]string, len(names))
	for i, name := range names {
		group := ""
		if i < len(groups) {
			group = groups[i]
		}
		switch {
		case group == "":
			out[i] = name
		case name == "":
			out[i] = group
		default:
			out[i] = group + "_" + name
		}
	}
	return dedupe(out)
}

// dedupe suffixes repeated names with ".1", ".2", ...
func dedupe(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		n := seen[name]
		seen[name] = n + 1
		if n == 0 {
			out[i] = name
			continue
		}
		out[i] = name + "." + strconv.Itoa(n)
	}
	return out
}

func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.Children().Filter("th,td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cellText(cell))
	})
	return cells
}
