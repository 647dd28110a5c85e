package playerstats

import "context"

type Repository interface {
	UpsertMatchStats(ctx context.Context, items []MatchStat) error
	ListByMatch(ctx context.Context, matchID int64) ([]MatchStat, error)
}
