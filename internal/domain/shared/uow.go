package shared

import "context"

// UnitOfWork executes a function as a single atomic unit against the
// underlying store. Repository calls made with the context passed to fn
// join the same transaction: either every write commits or none do.
//
// State-machine transitions (status change + dependent record creation +
// audit append) must run through a UnitOfWork so concurrent callers
// serialize on the store and the loser observes a consistent state.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
