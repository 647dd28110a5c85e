package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	UpsertPlayers(ctx context.Context, items []Player) error
}
