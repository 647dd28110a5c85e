package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/laliga-stats/internal/platform/querybuilder"
)

// upsertModels writes models in parameter-limited batches inside one
// transaction, so a failed batch leaves the table untouched.
func upsertModels[T any](ctx context.Context, db *sqlx.DB, table string, models []T, suffix string) error {
	if len(models) == 0 {
		return nil
	}

	cols, err := qb.Columns(models[0])
	if err != nil {
		return fmt.Errorf("read %s columns: %w", table, err)
	}
	size := qb.ChunkSize(len(cols))

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s upsert tx: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(models); start += size {
		end := min(start+size, len(models))
		query, args, err := qb.InsertModels(table, models[start:end], suffix)
		if err != nil {
			return fmt.Errorf("build upsert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert %s rows %d-%d: %w", table, start, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s upsert tx: %w", table, err)
	}
	return nil
}

// nullableString maps "" to NULL.
func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
