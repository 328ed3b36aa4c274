package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists mood entries in PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Insert(ctx context.Context, e *Entry) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO mood_entries (id, user_id, score, label, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.Score, e.Label, e.Note, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mood entry: %w", err)
	}
	return nil
}

func (s *PGStore) List(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, score, label, note, created_at
		FROM mood_entries
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Score, &e.Label, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mood entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mood entries: %w", err)
	}
	return out, nil
}

func (s *PGStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	ct, err := s.db.Exec(ctx, `
		DELETE FROM mood_entries WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete mood entry: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
