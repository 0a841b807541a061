package works

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("creative work not found")

// Work is one published (or draft) portfolio item.
type Work struct {
	ID          int64
	Title       string
	URL         string
	Description string
	CreatedAt   time.Time
	Published   bool
}

// Filter narrows List results. The public API always sets PublishedOnly;
// the admin surface lists everything.
type Filter struct {
	PublishedOnly bool
}

type CreateParams struct {
	Title       string `validate:"required,max=150"`
	URL         string `validate:"required,max=300"`
	Description string `validate:"max=200"`
	Published   bool
}

type UpdateParams struct {
	Title       string `validate:"required,max=150"`
	URL         string `validate:"required,max=300"`
	Description string `validate:"max=200"`
	Published   bool
}

type Repository interface {
	// List returns works ordered by CreatedAt descending; rows with equal
	// timestamps keep insertion order.
	List(ctx context.Context, filter Filter) ([]Work, error)
	Get(ctx context.Context, id int64) (*Work, error)
	Create(ctx context.Context, params CreateParams) (*Work, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Work, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
