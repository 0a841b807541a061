package works

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	Repository
	created    []CreateParams
	updated    map[int64]UpdateParams
	listFilter *Filter
	works      []Work
	err        error
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]Work, error) {
	m.listFilter = &filter
	return m.works, m.err
}

func (m *mockRepo) Create(ctx context.Context, params CreateParams) (*Work, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, params)
	return &Work{
		ID:        int64(len(m.created)),
		Title:     params.Title,
		URL:       params.URL,
		CreatedAt: time.Now().UTC(),
		Published: params.Published,
	}, nil
}

func (m *mockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Work, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.updated == nil {
		m.updated = make(map[int64]UpdateParams)
	}
	m.updated[id] = params
	return &Work{ID: id, Title: params.Title, URL: params.URL, Published: params.Published}, nil
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{URL: "https://example.com"})

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Title", verr.Field)
	require.Empty(t, repo.created, "repository must not be touched on invalid input")
}

func TestCreateRejectsEmptyURL(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{Title: "A post"})

	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "URL", verr.Field)
	require.Empty(t, repo.created)
}

func TestCreateRejectsWhitespaceOnlyFields(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateParams{Title: "   ", URL: "https://example.com"})

	require.Error(t, err)
	require.Empty(t, repo.created)
}

func TestCreateTrimsAndPersists(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	work, err := svc.Create(context.Background(), CreateParams{
		Title:     "  A post ",
		URL:       " https://example.com/post ",
		Published: true,
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	require.Equal(t, "A post", repo.created[0].Title)
	require.Equal(t, "https://example.com/post", repo.created[0].URL)
	require.True(t, work.Published)
}

func TestUpdateValidatesBeforeRepo(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 7, UpdateParams{Title: "", URL: ""})

	require.Error(t, err)
	require.Empty(t, repo.updated)
}

func TestUpdatePassesThroughNotFound(t *testing.T) {
	repo := &mockRepo{err: ErrNotFound}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 7, UpdateParams{Title: "A", URL: "https://example.com"})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestListForwardsFilter(t *testing.T) {
	repo := &mockRepo{works: []Work{{ID: 1, Title: "A"}}}
	svc := NewService(repo)

	got, err := svc.List(context.Background(), Filter{PublishedOnly: true})

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, repo.listFilter)
	require.True(t, repo.listFilter.PublishedOnly)
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError{Field: "Title", Message: "must not be empty"}
	require.Equal(t, "invalid title: must not be empty", err.Error())
}

func TestListPropagatesStorageError(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection reset")}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), Filter{})

	require.Error(t, err)
}
