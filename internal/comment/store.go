package comment

import "context"

// Store persists comments. Implementations must make Delete atomic: of two
// concurrent deletes for the same ID, exactly one succeeds and the other
// returns ErrNotFound.
type Store interface {
	// List returns every comment in insertion order. It never returns nil
	// on success.
	List(ctx context.Context) ([]*Comment, error)
	// Create validates d and persists it, assigning ID and CreatedAt.
	Create(ctx context.Context, d Draft) (*Comment, error)
	// Delete removes the comment with the given ID.
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error
}
