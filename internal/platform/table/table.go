// Package table holds an ordered, string-typed row set with named columns.
// It is the in-memory shape every pipeline stage reads and writes.
package table

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNotFound       = errors.New("table not found")
)

// MissingColumnsError names every required column a table lacks.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	name := e.Table
	if name == "" {
		name = "table"
	}
	return fmt.Sprintf("%s: %s: %s", name, ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Table is a named list of columns plus rows aligned to them.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: append([]string(nil), columns...)}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of col, or -1.
func (t *Table) Index(col string) int {
	if t.index == nil || len(t.index) != len(t.Columns) {
		t.reindex()
	}
	if idx, ok := t.index[col]; ok {
		return idx
	}
	return -1
}

func (t *Table) Has(col string) bool {
	return t.Index(col) >= 0
}

// Require fails with a *MissingColumnsError listing every absent column.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, col := range cols {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnsError{Table: t.Name, Columns: missing}
}

// Append adds one row, padding or truncating it to the column count.
func (t *Table) Append(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// AppendMap adds one row from column/value pairs; unknown keys are ignored.
func (t *Table) AppendMap(values map[string]string) {
	row := make([]string, len(t.Columns))
	for col, v := range values {
		if idx := t.Index(col); idx >= 0 {
			row[idx] = v
		}
	}
	t.Rows = append(t.Rows, row)
}

// Value returns the trimmed cell at row/col, "" when the column is absent.
func (t *Table) Value(row int, col string) string {
	idx := t.Index(col)
	if idx < 0 || row < 0 || row >= len(t.Rows) || idx >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][idx])
}

// Set writes a cell, adding the column first when needed.
func (t *Table) Set(row int, col, value string) {
	idx := t.Index(col)
	if idx < 0 {
		t.addColumn(col)
		idx = len(t.Columns) - 1
	}
	t.Rows[row][idx] = value
}

// AddColumn computes col for every row, replacing existing values.
func (t *Table) AddColumn(col string, fn func(row int) string) {
	if !t.Has(col) {
		t.addColumn(col)
	}
	idx := t.Index(col)
	for i := range t.Rows {
		t.Rows[i][idx] = fn(i)
	}
}

// Filter returns a new table with the rows keep accepts.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := New(t.Name, t.Columns...)
	for i, row := range t.Rows {
		if keep(i) {
			out.Rows = append(out.Rows, append([]string(nil), row...))
		}
	}
	return out
}

// Select projects the table onto cols in that order; absent columns are blank.
func (t *Table) Select(cols ...string) *Table {
	out := New(t.Name, cols...)
	positions := make([]int, len(cols))
	for i, col := range cols {
		positions[i] = t.Index(col)
	}
	for _, row := range t.Rows {
		next := make([]string, len(cols))
		for i, pos := range positions {
			if pos >= 0 && pos < len(row) {
				next[i] = row[pos]
			}
		}
		out.Rows = append(out.Rows, next)
	}
	return out
}

// Drop removes the named columns; names that are not present are ignored.
func (t *Table) Drop(cols ...string) *Table {
	skip := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		skip[col] = struct{}{}
	}
	return t.DropFunc(func(col string) bool {
		_, ok := skip[col]
		return ok
	})
}

// DropFunc removes every column for which drop returns true.
func (t *Table) DropFunc(drop func(col string) bool) *Table {
	keep := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		if !drop(col) {
			keep = append(keep, col)
		}
	}
	return t.Select(keep...)
}

// Front moves the listed columns, in order, ahead of the rest. Columns
// listed but absent are created blank.
func (t *Table) Front(cols ...string) *Table {
	seen := make(map[string]struct{}, len(cols))
	order := make([]string, 0, len(t.Columns)+len(cols))
	for _, col := range cols {
		seen[col] = struct{}{}
		order = append(order, col)
	}
	for _, col := range t.Columns {
		if _, ok := seen[col]; !ok {
			order = append(order, col)
		}
	}
	return t.Select(order...)
}

// EmptyColumns lists the columns whose every cell is blank.
func (t *Table) EmptyColumns() []string {
	var out []string
	for idx, col := range t.Columns {
		empty := true
		for _, row := range t.Rows {
			if idx < len(row) && strings.TrimSpace(row[idx]) != "" {
				empty = false
				break
			}
		}
		if empty {
			out = append(out, col)
		}
	}
	return out
}

// RowEmpty reports whether every cell of row is blank.
func (t *Table) RowEmpty(row int) bool {
	for _, cell := range t.Rows[row] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Distinct returns the non-blank values of col in first-seen order.
func (t *Table) Distinct(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range t.Rows {
		v := t.Value(i, col)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Concat stacks tables under the union of their columns, in first-seen
// order. Cells a table lacks are blank.
func Concat(name string, tables ...*Table) *Table {
	out := New(name)
	for _, t := range tables {
		for _, col := range t.Columns {
			if !out.Has(col) {
				out.Columns = append(out.Columns, col)
				out.reindex()
			}
		}
	}
	for _, t := range tables {
		positions := make([]int, len(t.Columns))
		for i, col := range t.Columns {
			positions[i] = out.Index(col)
		}
		for _, row := range t.Rows {
			next := make([]string, len(out.Columns))
			for i, pos := range positions {
				if i < len(row) {
					next[pos] = row[i]
				}
			}
			out.Rows = append(out.Rows, next)
		}
	}
	return out
}

// Coalesce collapses rows sharing the same key cells into the first one,
// filling its blank cells from the later rows. Row order follows first
// occurrence; the earliest non-blank value of a cell wins.
func (t *Table) Coalesce(keys ...string) *Table {
	idx := make([]int, len(keys))
	for i, k := range keys {
		idx[i] = t.Index(k)
	}

	out := New(t.Name, t.Columns...)
	seen := make(map[string]int, len(t.Rows))
	var b strings.Builder
	for _, row := range t.Rows {
		b.Reset()
		for _, i := range idx {
			if i >= 0 && i < len(row) {
				b.WriteString(strings.TrimSpace(row[i]))
			}
			b.WriteByte(0)
		}
		key := b.String()

		at, ok := seen[key]
		if !ok {
			seen[key] = len(out.Rows)
			next := make([]string, len(out.Columns))
			copy(next, row)
			out.Rows = append(out.Rows, next)
			continue
		}
		merged := out.Rows[at]
		for i := range merged {
			if strings.TrimSpace(merged[i]) == "" && i < len(row) {
				merged[i] = row[i]
			}
		}
	}
	return out
}

// Rename changes column names per the old→new map.
func (t *Table) Rename(names map[string]string) {
	for i, col := range t.Columns {
		if next, ok := names[col]; ok {
			t.Columns[i] = next
		}
	}
	t.reindex()
}

func (t *Table) addColumn(col string) {
	t.Columns = append(t.Columns, col)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	t.reindex()
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		if _, dup := t.index[col]; !dup {
			t.index[col] = i
		}
	}
}
