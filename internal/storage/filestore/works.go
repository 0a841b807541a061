package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/brianpage/portfolio-server/internal/domain/works"
)

type workRepo struct {
	store *Store
}

var _ works.Repository = (*workRepo)(nil)

func (r *workRepo) List(ctx context.Context, filter works.Filter) ([]works.Work, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]works.Work, 0, len(r.store.state.Works))
	for _, rec := range r.store.state.Works {
		if filter.PublishedOnly && !rec.IsPublished {
			continue
		}
		items = append(items, rec.toDomain())
	}

	// Newest first; the stable sort keeps insertion order for equal
	// timestamps.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *workRepo) Get(ctx context.Context, id int64) (*works.Work, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rec := range r.store.state.Works {
		if rec.ID == id {
			work := rec.toDomain()
			return &work, nil
		}
	}
	return nil, works.ErrNotFound
}

func (r *workRepo) Create(ctx context.Context, params works.CreateParams) (*works.Work, error) {
	var created workRecord
	err := r.store.mutate(func(st *fileState) {
		created = workRecord{
			ID:          st.NextWorkID,
			Title:       params.Title,
			URL:         params.URL,
			Description: params.Description,
			DateCreated: time.Now().UTC(),
			IsPublished: params.Published,
		}
		st.NextWorkID++
		st.Works = append(st.Works, created)
	})
	if err != nil {
		return nil, err
	}
	work := created.toDomain()
	return &work, nil
}

func (r *workRepo) Update(ctx context.Context, id int64, params works.UpdateParams) (*works.Work, error) {
	var updated *workRecord
	err := r.store.mutate(func(st *fileState) {
		for i := range st.Works {
			if st.Works[i].ID == id {
				st.Works[i].Title = params.Title
				st.Works[i].URL = params.URL
				st.Works[i].Description = params.Description
				st.Works[i].IsPublished = params.Published
				updated = &st.Works[i]
				return
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, works.ErrNotFound
	}
	work := updated.toDomain()
	return &work, nil
}

func (r *workRepo) Delete(ctx context.Context, id int64) error {
	found := false
	err := r.store.mutate(func(st *fileState) {
		for i := range st.Works {
			if st.Works[i].ID == id {
				st.Works = append(st.Works[:i], st.Works[i+1:]...)
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return works.ErrNotFound
	}
	return nil
}

func (r *workRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.state.Works)), nil
}

func (rec workRecord) toDomain() works.Work {
	return works.Work{
		ID:          rec.ID,
		Title:       rec.Title,
		URL:         rec.URL,
		Description: rec.Description,
		CreatedAt:   rec.DateCreated,
		Published:   rec.IsPublished,
	}
}
