package affirm

import "context"

// MemStore serves a fixed affirmation list, for tests and local development.
type MemStore struct {
	items []Affirmation
}

func NewMemStore(items ...Affirmation) *MemStore {
	return &MemStore{items: items}
}

func (s *MemStore) All(_ context.Context) ([]Affirmation, error) {
	out := make([]Affirmation, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemStore) ByCategory(_ context.Context, category string) ([]Affirmation, error) {
	var out []Affirmation
	for _, a := range s.items {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out, nil
}
