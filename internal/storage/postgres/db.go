package postgres

import (
	"context"
	"fmt"

	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/brianpage/portfolio-server/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
	url  string
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(ctx context.Context, databaseURL string, maxConns int) (*Repository, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &Repository{pool: pool, url: databaseURL}, nil
}

func (r *Repository) Works() works.Repository {
	return &WorkRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) Visitors() visitors.Repository {
	return &VisitorRepository{pool: r.pool, tx: r.tx}
}

func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &Repository{pool: r.pool, tx: tx, url: r.url}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	return MigrateUp(r.url)
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() {
	if r.tx == nil {
		r.pool.Close()
	}
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
