package journal

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store for tests and local development.
type MemStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]map[uuid.UUID]Entry // userID -> entryID -> entry
}

func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[uuid.UUID]map[uuid.UUID]Entry)}
}

func (s *MemStore) Insert(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[e.UserID] == nil {
		s.entries[e.UserID] = make(map[uuid.UUID]Entry)
	}
	s.entries[e.UserID][e.ID] = *e
	return nil
}

func (s *MemStore) Get(_ context.Context, userID, id uuid.UUID) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID][id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := e
	return &cp, nil
}

func (s *MemStore) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Entry
	for _, e := range s.entries[userID] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) Update(_ context.Context, e *Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.entries[e.UserID][e.ID]
	if !ok {
		return false, nil
	}
	cur.Title = e.Title
	cur.Body = e.Body
	cur.UpdatedAt = e.UpdatedAt
	s.entries[e.UserID][e.ID] = cur
	return true, nil
}

func (s *MemStore) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[userID][id]; !ok {
		return false, nil
	}
	delete(s.entries[userID], id)
	return true, nil
}
