package storage

import (
	"context"

	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/brianpage/portfolio-server/internal/domain/works"
)

// Repository groups data access by domain. Two implementations exist:
// postgres (production) and filestore (local fallback when DATABASE_URL is
// unset).
type Repository interface {
	Works() works.Repository
	Visitors() visitors.Repository

	// WithTx runs fn against a transactional view of the repository; every
	// write inside fn is applied atomically or not at all.
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	// EnsureSchema creates the storage schema if it does not exist. It is
	// idempotent and safe to invoke on every process boot, including
	// concurrently.
	EnsureSchema(ctx context.Context) error

	Ping(ctx context.Context) error
	Close()
}
