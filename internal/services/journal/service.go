package journal

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
	ErrInvalidEntry = errors.New("invalid journal entry")
	ErrNotFound     = errors.New("journal entry not found")
)

const (
	maxTitleLen  = 200
	maxBodyLen   = 10000
	defaultLimit = 20
	maxLimit     = 100
)

// Entry is one journal page. Ownership checks happen in the store: every
// query is keyed by both entry ID and user ID, so another user's entry is
// indistinguishable from a missing one.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Store interface {
	Insert(ctx context.Context, e *Entry) error
	Get(ctx context.Context, userID, id uuid.UUID) (*Entry, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error)
	Update(ctx context.Context, e *Entry) (bool, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

func validate(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEntry)
	}
	if len(title) > maxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidEntry, maxTitleLen)
	}
	if len(body) > maxBodyLen {
		return fmt.Errorf("%w: body exceeds %d characters", ErrInvalidEntry, maxBodyLen)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, title, body string, now time.Time) (*Entry, error) {
	if err := validate(title, body); err != nil {
		return nil, err
	}
	entry := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Body:      body,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	if err := s.store.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Entry, error) {
	return s.store.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, userID, limit, offset)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, title, body string, now time.Time) (*Entry, error) {
	if err := validate(title, body); err != nil {
		return nil, err
	}
	entry := &Entry{
		ID:        id,
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Body:      body,
		UpdatedAt: now.UTC(),
	}
	ok, err := s.store.Update(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, userID, id)
}

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
