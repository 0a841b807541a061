package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ works.Repository = (*WorkRepository)(nil)

type WorkRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

type workRow struct {
	ID          int64
	Title       string
	URL         string
	Description pgtype.Text
	CreatedAt   pgtype.Timestamptz
	Published   bool
}

func (row workRow) toDomain() works.Work {
	work := works.Work{
		ID:          row.ID,
		Title:       row.Title,
		URL:         row.URL,
		Description: row.Description.String,
		Published:   row.Published,
	}
	if row.CreatedAt.Valid {
		work.CreatedAt = row.CreatedAt.Time
	}
	return work
}

func (r *WorkRepository) List(ctx context.Context, filter works.Filter) ([]works.Work, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT w.id, w.title, w.url, w.description, w.date_created, w.is_published
  FROM creative_works w
 WHERE ($1 = false OR w.is_published)
 ORDER BY w.date_created DESC, w.id ASC
`, filter.PublishedOnly)
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}
	defer rows.Close()

	items := make([]works.Work, 0)
	for rows.Next() {
		var row workRow
		if err := rows.Scan(&row.ID, &row.Title, &row.URL, &row.Description, &row.CreatedAt, &row.Published); err != nil {
			return nil, fmt.Errorf("scan works: %w", err)
		}
		items = append(items, row.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate works: %w", err)
	}
	return items, nil
}

func (r *WorkRepository) Get(ctx context.Context, id int64) (*works.Work, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT w.id, w.title, w.url, w.description, w.date_created, w.is_published
  FROM creative_works w
 WHERE w.id = $1
`, id)

	var data workRow
	if err := row.Scan(&data.ID, &data.Title, &data.URL, &data.Description, &data.CreatedAt, &data.Published); err != nil {
		if err == pgx.ErrNoRows {
			return nil, works.ErrNotFound
		}
		return nil, fmt.Errorf("get work: %w", err)
	}
	work := data.toDomain()
	return &work, nil
}

func (r *WorkRepository) Create(ctx context.Context, params works.CreateParams) (*works.Work, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO creative_works (title, url, description, is_published)
VALUES ($1, $2, $3, $4)
RETURNING id, date_created
`,
		params.Title,
		params.URL,
		textOrNull(params.Description),
		params.Published,
	)

	work := works.Work{
		Title:       params.Title,
		URL:         params.URL,
		Description: params.Description,
		Published:   params.Published,
	}
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&work.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("create work: %w", err)
	}
	if createdAt.Valid {
		work.CreatedAt = createdAt.Time
	} else {
		work.CreatedAt = time.Now().UTC()
	}
	return &work, nil
}

func (r *WorkRepository) Update(ctx context.Context, id int64, params works.UpdateParams) (*works.Work, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE creative_works
   SET title = $2, url = $3, description = $4, is_published = $5
 WHERE id = $1
RETURNING id, title, url, description, date_created, is_published
`,
		id,
		params.Title,
		params.URL,
		textOrNull(params.Description),
		params.Published,
	)

	var data workRow
	if err := row.Scan(&data.ID, &data.Title, &data.URL, &data.Description, &data.CreatedAt, &data.Published); err != nil {
		if err == pgx.ErrNoRows {
			return nil, works.ErrNotFound
		}
		return nil, fmt.Errorf("update work: %w", err)
	}
	work := data.toDomain()
	return &work, nil
}

func (r *WorkRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.queryer().Exec(ctx, `DELETE FROM creative_works WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return works.ErrNotFound
	}
	return nil
}

func (r *WorkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.queryer().QueryRow(ctx, `SELECT count(*) FROM creative_works`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count works: %w", err)
	}
	return count, nil
}

func (r *WorkRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func textOrNull(value string) pgtype.Text {
	return pgtype.Text{String: value, Valid: value != ""}
}
