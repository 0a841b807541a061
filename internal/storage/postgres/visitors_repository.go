package postgres

import (
	"context"
	"fmt"

	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ visitors.Repository = (*VisitorRepository)(nil)

type VisitorRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type visitorRow struct {
	ID        int64
	IPAddress pgtype.Text
	UserAgent pgtype.Text
	VisitedAt pgtype.Timestamptz
}

func (row visitorRow) toDomain() visitors.Visitor {
	v := visitors.Visitor{
		ID:        row.ID,
		IPAddress: row.IPAddress.String,
		UserAgent: row.UserAgent.String,
	}
	if row.VisitedAt.Valid {
		v.VisitedAt = row.VisitedAt.Time
	}
	return v
}

// Record inserts one visit. The insert is a single statement, so a failure
// leaves no partial row behind.
func (r *VisitorRepository) Record(ctx context.Context, ipAddress, userAgent string) (*visitors.Visitor, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO visitors (ip_address, user_agent)
VALUES ($1, $2)
RETURNING id, visited_at
`,
		textOrNull(ipAddress),
		textOrNull(userAgent),
	)

	v := visitors.Visitor{IPAddress: ipAddress, UserAgent: userAgent}
	var visitedAt pgtype.Timestamptz
	if err := row.Scan(&v.ID, &visitedAt); err != nil {
		return nil, fmt.Errorf("record visitor: %w", err)
	}
	if visitedAt.Valid {
		v.VisitedAt = visitedAt.Time
	}
	return &v, nil
}

func (r *VisitorRepository) List(ctx context.Context) ([]visitors.Visitor, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT v.id, v.ip_address, v.user_agent, v.visited_at
  FROM visitors v
 ORDER BY v.visited_at DESC, v.id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list visitors: %w", err)
	}
	defer rows.Close()

	items := make([]visitors.Visitor, 0)
	for rows.Next() {
		var row visitorRow
		if err := rows.Scan(&row.ID, &row.IPAddress, &row.UserAgent, &row.VisitedAt); err != nil {
			return nil, fmt.Errorf("scan visitors: %w", err)
		}
		items = append(items, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visitors: %w", err)
	}
	return items, nil
}

func (r *VisitorRepository) Get(ctx context.Context, id int64) (*visitors.Visitor, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT v.id, v.ip_address, v.user_agent, v.visited_at
  FROM visitors v
 WHERE v.id = $1
`, id)

	var data visitorRow
	if err := row.Scan(&data.ID, &data.IPAddress, &data.UserAgent, &data.VisitedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, visitors.ErrNotFound
		}
		return nil, fmt.Errorf("get visitor: %w", err)
	}
	v := data.toDomain()
	return &v, nil
}

func (r *VisitorRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM visitors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete visitor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return visitors.ErrNotFound
	}
	return nil
}

func (r *VisitorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.queryer().QueryRow(ctx, `SELECT count(*) FROM visitors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count visitors: %w", err)
	}
	return count, nil
}

func (r *VisitorRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}
