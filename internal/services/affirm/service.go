package affirm

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNoAffirmations = errors.New("no affirmations available")

// Affirmation is one seeded supportive statement.
type Affirmation struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Text     string    `json:"text"`
}

type Store interface {
	All(ctx context.Context) ([]Affirmation, error)
	ByCategory(ctx context.Context, category string) ([]Affirmation, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// Daily returns the user's affirmation for the given day. The pick is a
// stable hash of user and date, so refreshing the page never changes it.
func (s *Service) Daily(ctx context.Context, userID uuid.UUID, day time.Time) (*Affirmation, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoAffirmations
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID.String()))
	_, _ = h.Write([]byte(day.UTC().Format("2006-01-02")))
	pick := all[int(h.Sum32())%len(all)]
	return &pick, nil
}

// Random returns any affirmation, optionally limited to a category.
func (s *Service) Random(ctx context.Context, category string) (*Affirmation, error) {
	var (
		pool []Affirmation
		err  error
	)
	if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
		pool, err = s.store.ByCategory(ctx, category)
	} else {
		pool, err = s.store.All(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoAffirmations
	}
	pick := pool[rand.Intn(len(pool))]
	return &pick, nil
}
