// Package filestore is a JSON-file-backed implementation of
// storage.Repository. It exists for local development and for deployments
// without a database: when DATABASE_URL is unset the server stores its data
// in a single file instead.
//
// Every write builds the next state in memory and persists it with a
// write-to-temp-then-rename, so a failed write never leaves partial state on
// disk or in memory.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/brianpage/portfolio-server/internal/domain/visitors"
	"github.com/brianpage/portfolio-server/internal/domain/works"
	"github.com/brianpage/portfolio-server/internal/storage"
)

type Store struct {
	path  string
	mu    sync.RWMutex
	state fileState
}

var _ storage.Repository = (*Store)(nil)

type fileState struct {
	NextWorkID    int64           `json:"next_work_id"`
	NextVisitorID int64           `json:"next_visitor_id"`
	Works         []workRecord    `json:"works"`
	Visitors      []visitorRecord `json:"visitors"`
}

type workRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	DateCreated time.Time `json:"date_created"`
	IsPublished bool      `json:"is_published"`
}

type visitorRecord struct {
	ID        int64     `json:"id"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	VisitedAt time.Time `json:"visited_at"`
}

func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		state: emptyState(),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open filestore: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("decode filestore %s: %w", path, err)
		}
	}
	if s.state.NextWorkID < 1 {
		s.state.NextWorkID = 1
	}
	if s.state.NextVisitorID < 1 {
		s.state.NextVisitorID = 1
	}
	return s, nil
}

func emptyState() fileState {
	return fileState{
		NextWorkID:    1,
		NextVisitorID: 1,
		Works:         []workRecord{},
		Visitors:      []visitorRecord{},
	}
}

func (s *Store) Works() works.Repository {
	return &workRepo{store: s}
}

func (s *Store) Visitors() visitors.Repository {
	return &visitorRepo{store: s}
}

// WithTx serializes fn against the store. Each operation inside fn is still
// individually atomic; the filestore does not support multi-operation
// rollback, which no current caller needs.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	return fn(ctx, s)
}

// EnsureSchema creates the backing file if it does not exist. Calling it
// repeatedly, or concurrently on first boot, is safe: an existing file is
// never truncated.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat filestore: %w", err)
	}
	return s.persistLocked(s.state)
}

func (s *Store) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("filestore directory unavailable: %w", err)
	}
	return nil
}

func (s *Store) Close() {}

// persistLocked writes next to disk atomically. Callers must hold mu.
func (s *Store) persistLocked(next fileState) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encode filestore: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write filestore: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write filestore: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write filestore: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write filestore: %w", err)
	}
	return nil
}

// mutate applies fn to a deep copy of the current state and only swaps it in
// after a successful persist.
func (s *Store) mutate(fn func(*fileState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	fn(&next)
	if err := s.persistLocked(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (st fileState) clone() fileState {
	next := st
	next.Works = make([]workRecord, len(st.Works))
	copy(next.Works, st.Works)
	next.Visitors = make([]visitorRecord, len(st.Visitors))
	copy(next.Visitors, st.Visitors)
	return next
}
