package mood

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidEntry = errors.New("invalid mood entry")
	ErrNotFound     = errors.New("mood entry not found")
)

const (
	maxNoteLen   = 500
	defaultLimit = 50
	maxLimit     = 200
)

// validLabels is the fixed mood vocabulary the clients render.
var validLabels = map[string]struct{}{
	"great": {}, "good": {}, "okay": {}, "low": {},
	"anxious": {}, "sad": {}, "angry": {}, "tired": {},
}

// Entry is one logged mood.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Score     int       `json:"score"`
	Label     string    `json:"label"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists mood entries scoped by user.
type Store interface {
	Insert(ctx context.Context, e *Entry) error
	List(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]Entry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// Service validates and aggregates mood entries.
type Service struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Log records a mood entry after validating score, label and note length.
func (s *Service) Log(ctx context.Context, userID uuid.UUID, score int, label, note string, now time.Time) (*Entry, error) {
	if score < 1 || score > 10 {
		return nil, fmt.Errorf("%w: score must be between 1 and 10", ErrInvalidEntry)
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if _, ok := validLabels[label]; !ok {
		return nil, fmt.Errorf("%w: unknown label %q", ErrInvalidEntry, label)
	}
	if len(note) > maxNoteLen {
		return nil, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidEntry, maxNoteLen)
	}
	entry := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Score:     score,
		Label:     label,
		Note:      note,
		CreatedAt: now.UTC(),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns entries newer than since, most recent first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.store.List(ctx, userID, since, limit)
}

// Delete removes an entry owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates the user's recent mood history for the dashboard.
type Summary struct {
	Days         int            `json:"days"`
	Count        int            `json:"count"`
	AverageScore float64        `json:"average_score"`
	ByLabel      map[string]int `json:"by_label"`
	StreakDays   int            `json:"streak_days"`
}

// Summarize computes averages, label counts and the consecutive-day logging
// streak over the trailing window. The streak tolerates a missing today so
// an evening logger does not see it reset every morning.
func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, days int, now time.Time) (*Summary, error) {
	if days <= 0 {
		days = 14
	}
	since := now.UTC().AddDate(0, 0, -days)
	entries, err := s.store.List(ctx, userID, since, maxLimit)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Days: days, Count: len(entries), ByLabel: make(map[string]int)}
	if len(entries) == 0 {
		return sum, nil
	}

	total := 0
	dates := make(map[string]struct{})
	for _, e := range entries {
		total += e.Score
		sum.ByLabel[e.Label]++
		dates[e.CreatedAt.UTC().Format("2006-01-02")] = struct{}{}
	}
	sum.AverageScore = float64(total) / float64(len(entries))

	day := now.UTC()
	if _, ok := dates[day.Format("2006-01-02")]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	for {
		if _, ok := dates[day.Format("2006-01-02")]; !ok {
			break
		}
		sum.StreakDays++
		day = day.AddDate(0, 0, -1)
	}
	return sum, nil
}
