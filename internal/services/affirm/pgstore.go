package affirm

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads affirmations seeded into PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) All(ctx context.Context) ([]Affirmation, error) {
	return s.query(ctx, `SELECT id, category, text FROM affirmations ORDER BY id`)
}

func (s *PGStore) ByCategory(ctx context.Context, category string) ([]Affirmation, error) {
	return s.query(ctx, `SELECT id, category, text FROM affirmations WHERE category = $1 ORDER BY id`, category)
}

func (s *PGStore) query(ctx context.Context, sql string, args ...any) ([]Affirmation, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query affirmations: %w", err)
	}
	defer rows.Close()

	var out []Affirmation
	for rows.Next() {
		var a Affirmation
		if err := rows.Scan(&a.ID, &a.Category, &a.Text); err != nil {
			return nil, fmt.Errorf("scan affirmation: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate affirmations: %w", err)
	}
	return out, nil
}
