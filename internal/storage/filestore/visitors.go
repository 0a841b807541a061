package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/brianpage/portfolio-server/internal/domain/visitors"
)

type visitorRepo struct {
	store *Store
}

var _ visitors.Repository = (*visitorRepo)(nil)

func (r *visitorRepo) Record(ctx context.Context, ipAddress, userAgent string) (*visitors.Visitor, error) {
	var created visitorRecord
	err := r.store.mutate(func(st *fileState) {
		created = visitorRecord{
			ID:        st.NextVisitorID,
			IPAddress: ipAddress,
			UserAgent: userAgent,
			VisitedAt: time.Now().UTC(),
		}
		st.NextVisitorID++
		st.Visitors = append(st.Visitors, created)
	})
	if err != nil {
		return nil, err
	}
	v := created.toDomain()
	return &v, nil
}

func (r *visitorRepo) List(ctx context.Context) ([]visitors.Visitor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]visitors.Visitor, 0, len(r.store.state.Visitors))
	for _, rec := range r.store.state.Visitors {
		items = append(items, rec.toDomain())
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].VisitedAt.After(items[j].VisitedAt)
	})
	return items, nil
}

func (r *visitorRepo) Get(ctx context.Context, id int64) (*visitors.Visitor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.state.Visitors {
		if rec.ID == id {
			v := rec.toDomain()
			return &v, nil
		}
	}
	return nil, visitors.ErrNotFound
}

func (r *visitorRepo) Delete(ctx context.Context, id int64) error {
	found := false
	err := r.store.mutate(func(st *fileState) {
		for i := range st.Visitors {
			if st.Visitors[i].ID == id {
				st.Visitors = append(st.Visitors[:i], st.Visitors[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return visitors.ErrNotFound
	}
	return nil
}

func (r *visitorRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.state.Visitors)), nil
}

func (rec visitorRecord) toDomain() visitors.Visitor {
	return visitors.Visitor{
		ID:        rec.ID,
		IPAddress: rec.IPAddress,
		UserAgent: rec.UserAgent,
		VisitedAt: rec.VisitedAt,
	}
}
