package repositories

import "context"

// UnitOfWork runs a function within a single database transaction.
// Repositories called with the context passed to fn participate in it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
