package teamstats

import "context"

// Repository persists per-side match statistics.
type Repository interface {
	UpsertMatchStats(ctx context.Context, items []SideStat) error
	ListByMatch(ctx context.Context, matchID int64) ([]SideStat, error)
}
