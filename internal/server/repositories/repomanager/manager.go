// Package repomanager wires the user and note repositories to one of the
// supported storage backends and owns the backend's lifecycle.
package repomanager

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Notes() notes.Repository
	// Migrate brings the schema (tables, indexes) up to date.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New picks a backend by the DSN scheme. dbName is used by backends
// whose DSN may omit the database.
func New(ctx context.Context, dsn, dbName string) (RepositoryManager, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return NewMongoRepositoryManager(ctx, dsn, dbName)
	case "postgres", "postgresql":
		return NewPostgresRepositoryManager(dsn)
	case "memory":
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
