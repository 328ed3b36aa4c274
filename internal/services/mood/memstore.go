package mood

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and local development.
type MemStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID][]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[uuid.UUID][]Entry)}
}

func (s *MemStore) Insert(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.UserID] = append(s.entries[e.UserID], *e)
	return nil
}

func (s *MemStore) List(_ context.Context, userID uuid.UUID, since time.Time, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries[userID] {
		if !e.CreatedAt.Before(since) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.entries[userID]
	for i, e := range list {
		if e.ID == id {
			s.entries[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
