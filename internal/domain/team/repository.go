package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	UpsertTeams(ctx context.Context, items []Team) error
}
