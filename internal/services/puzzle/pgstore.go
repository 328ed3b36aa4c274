package puzzle

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads puzzle words seeded into PostgreSQL.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Words(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT word FROM puzzle_words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("query puzzle words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan puzzle word: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate puzzle words: %w", err)
	}
	return out, nil
}
