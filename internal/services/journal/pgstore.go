package journal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists journal entries in PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, e *Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO journal_entries (id, user_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.Title, e.Body, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, userID, id uuid.UUID) (*Entry, error) {
	var e Entry
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM journal_entries
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&e.ID, &e.UserID, &e.Title, &e.Body, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return &e, nil
}

func (s *PGStore) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, title, body, created_at, updated_at
		FROM journal_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Body, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return out, nil
}

func (s *PGStore) Update(ctx context.Context, e *Entry) (bool, error) {
	ct, err := s.db.Exec(ctx, `
		UPDATE journal_entries
		SET title = $3, body = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`, e.ID, e.UserID, e.Title, e.Body, e.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("update journal entry: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (s *PGStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ct, err := s.db.Exec(ctx, `
		DELETE FROM journal_entries WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete journal entry: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
