package puzzle

import "context"

// MemStore serves a fixed word list, for tests and local development.
type MemStore struct {
	words []string
}

func NewMemStore(words ...string) *MemStore {
	return &MemStore{words: words}
}

func (s *MemStore) Words(_ context.Context) ([]string, error) {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out, nil
}
