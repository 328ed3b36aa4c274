package puzzle

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"
)

var ErrNoWords = errors.New("no puzzle words available")

// Puzzle is the daily unscramble challenge as shown to the player. The
// answer never leaves the server.
type Puzzle struct {
	Day       string `json:"day"`
	Scrambled string `json:"scrambled"`
	Length    int    `json:"length"`
}

// Result of a guess.
type Result struct {
	Correct bool `json:"correct"`
	Score   int  `json:"score"`
}

type Store interface {
	Words(ctx context.Context) ([]string, error)
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

const dayFormat = "2006-01-02"

// wordFor picks the day's word by hashing the date, so every player gets
// the same word and the pick survives restarts.
func (s *Service) wordFor(ctx context.Context, day time.Time) (string, error) {
	words, err := s.store.Words(ctx)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", ErrNoWords
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(day.UTC().Format(dayFormat)))
	return words[int(h.Sum32())%len(words)], nil
}

// Daily returns the scrambled word for the given day.
func (s *Service) Daily(ctx context.Context, day time.Time) (*Puzzle, error) {
	word, err := s.wordFor(ctx, day)
	if err != nil {
		return nil, err
	}
	return &Puzzle{
		Day:       day.UTC().Format(dayFormat),
		Scrambled: scramble(word),
		Length:    len(word),
	}, nil
}

// Check scores a guess against the day's word, case-insensitively.
func (s *Service) Check(ctx context.Context, day time.Time, guess string) (*Result, error) {
	word, err := s.wordFor(ctx, day)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(guess), word) {
		return &Result{}, nil
	}
	return &Result{Correct: true, Score: len(word) * 10}, nil
}

// scramble shuffles the word's letters, seeded by the word itself so the
// scramble is stable for the day. For words with at least two distinct
// letters the result never equals the original.
func scramble(word string) string {
	letters := []rune(word)
	h := fnv.New64a()
	_, _ = h.Write([]byte(word))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	for attempt := 0; attempt < 10; attempt++ {
		for i := len(letters) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			letters[i], letters[j] = letters[j], letters[i]
		}
		if string(letters) != word {
			return string(letters)
		}
	}
	// Single-letter or uniform words cannot be scrambled.
	return string(letters)
}
