package visitors

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("visitor not found")

// Visitor is one logged site visit. Rows are insert-only; the admin surface
// may read or delete them but never updates one.
type Visitor struct {
	ID        int64
	IPAddress string
	UserAgent string
	VisitedAt time.Time
}

type Repository interface {
	Record(ctx context.Context, ipAddress, userAgent string) (*Visitor, error)
	List(ctx context.Context) ([]Visitor, error)
	Get(ctx context.Context, id int64) (*Visitor, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
