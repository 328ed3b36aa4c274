package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedAffirmation struct {
	category string
	text     string
}

var seedAffirmations = []seedAffirmation{
	{"self-love", "I am worthy of care, rest, and kindness."},
	{"self-love", "I treat myself with the same compassion I offer others."},
	{"self-love", "My feelings are valid and deserve my attention."},
	{"confidence", "I am capable of handling whatever today brings."},
	{"confidence", "Every small step I take counts."},
	{"confidence", "I trust myself to make good decisions."},
	{"calm", "I breathe in calm and breathe out tension."},
	{"calm", "This moment is enough; I do not need to rush."},
	{"calm", "I release what I cannot control."},
	{"gratitude", "I notice the small good things around me."},
	{"gratitude", "There is something to appreciate in every day."},
	{"growth", "Difficult days teach me things easy days cannot."},
	{"growth", "I am allowed to grow at my own pace."},
	{"growth", "Setbacks are part of moving forward."},
}

var seedPuzzleWords = []string{
	"serene", "breathe", "gentle", "balance", "thrive",
	"bloom", "nurture", "mindful", "renewal", "harmony",
	"soothe", "present", "grounded", "restore", "radiant",
	"courage", "kindness", "patience", "clarity", "warmth",
}

// Seed inserts the built-in affirmations and puzzle words. It is idempotent;
// rows already present are left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for _, a := range seedAffirmations {
		_, err := pool.Exec(ctx,
			`INSERT INTO affirmations (id, category, text) VALUES ($1, $2, $3)
			 ON CONFLICT (text) DO NOTHING`,
			uuid.New(), a.category, a.text)
		if err != nil {
			return fmt.Errorf("seed affirmation: %w", err)
		}
	}
	for _, w := range seedPuzzleWords {
		_, err := pool.Exec(ctx,
			`INSERT INTO puzzle_words (id, word) VALUES ($1, $2)
			 ON CONFLICT (word) DO NOTHING`,
			uuid.New(), w)
		if err != nil {
			return fmt.Errorf("seed puzzle word: %w", err)
		}
	}
	return nil
}
