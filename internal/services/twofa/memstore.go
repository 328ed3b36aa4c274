package twofa

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store with the same compare-and-set semantics as
// PGStore. Used in tests and local development without Postgres.
type MemStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*Record
	codes   map[uuid.UUID]map[string]bool // hash -> used
}

func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[uuid.UUID]*Record),
		codes:   make(map[uuid.UUID]map[string]bool),
	}
}

func (s *MemStore) Get(_ context.Context, userID uuid.UUID) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemStore) SavePending(_ context.Context, userID uuid.UUID, encSecret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if rec, ok := s.records[userID]; ok {
		rec.Secret = encSecret
		rec.Enabled = false
		rec.UpdatedAt = now
	} else {
		s.records[userID] = &Record{
			UserID:    userID,
			Secret:    encSecret,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	delete(s.codes, userID)
	return nil
}

func (s *MemStore) Enable(_ context.Context, userID uuid.UUID, codeHashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok || rec.Enabled || rec.Secret == "" {
		return ErrConflict
	}
	rec.Enabled = true
	rec.UpdatedAt = time.Now()
	used := make(map[string]bool, len(codeHashes))
	for _, h := range codeHashes {
		used[h] = false
	}
	s.codes[userID] = used
	return nil
}

func (s *MemStore) Disable(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok || !rec.Enabled {
		return ErrConflict
	}
	delete(s.records, userID)
	delete(s.codes, userID)
	return nil
}

func (s *MemStore) ConsumeBackupCode(_ context.Context, userID uuid.UUID, codeHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	used, ok := s.codes[userID]
	if !ok {
		return false, nil
	}
	consumed, exists := used[codeHash]
	if !exists || consumed {
		return false, nil
	}
	used[codeHash] = true
	return true, nil
}
