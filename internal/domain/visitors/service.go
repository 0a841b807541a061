package visitors

import (
	"context"
	"unicode/utf8"
)

const (
	maxIPLength        = 45
	maxUserAgentLength = 200
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record logs one visit. Both values may be empty; overlong values are
// truncated to the stored column widths rather than rejected.
func (s *Service) Record(ctx context.Context, ipAddress, userAgent string) (*Visitor, error) {
	return s.repo.Record(ctx, truncate(ipAddress, maxIPLength), truncate(userAgent, maxUserAgentLength))
}

func (s *Service) List(ctx context.Context) ([]Visitor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Visitor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// truncate cuts value to at most limit bytes without splitting a UTF-8 rune;
// the stored columns require valid UTF-8.
func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	for limit > 0 && !utf8.RuneStart(value[limit]) {
		limit--
	}
	return value[:limit]
}
