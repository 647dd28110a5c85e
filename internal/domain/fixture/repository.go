package fixture

import "context"

// Repository persists fixtures keyed by match id.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
	UpsertFixtures(ctx context.Context, items []Fixture) error
}
