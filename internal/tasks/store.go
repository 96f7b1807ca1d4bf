package tasks

import (
	"context"
	"errors"
	"strings"
)

// Store persists Task records. Implementations must be safe for concurrent
// use; conflicting writes are serialized by the backing store and the last
// write wins.
type Store interface {
	Create(ctx context.Context, req CreateRequest) (Task, error)
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Task, error)
	Delete(ctx context.Context, id string) (Task, error)
	Close() error
}

// NewStore opens the Postgres-backed store. The connection string is
// mandatory; the caller treats a missing one as a startup failure.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("database connection string is required")
	}
	return NewPostgresStore(ctx, databaseURL)
}
