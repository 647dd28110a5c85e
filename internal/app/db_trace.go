package app

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	valuesTupleRegex     = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)`)
	valuesListRegex      = regexp.MustCompile(`\(\$\d+(?:, \$\d+)*\)(?:, \(\$\d+(?:, \$\d+)*\))+`)
)

// formatDBQueryForTrace renders a statement for the db.statement span
// attribute. Batched upserts keep their first placeholder tuple and the row
// count, so chunks of the same table trace as one short statement.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = valuesListRegex.ReplaceAllStringFunc(normalized, foldValuesList)
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}

func foldValuesList(list string) string {
	tuples := valuesTupleRegex.FindAllString(list, -1)
	return tuples[0] + ", ... " + strconv.Itoa(len(tuples)) + " rows"
}
