package mood

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2025, 6, 15, 20, 30, 0, 0, time.UTC)

func TestLogValidation(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name  string
		score int
		label string
		note  string
		ok    bool
	}{
		{"valid", 7, "good", "took a walk", true},
		{"label normalized", 5, "  OKAY ", "", true},
		{"score too low", 0, "good", "", false},
		{"score too high", 11, "good", "", false},
		{"unknown label", 5, "euphoric", "", false},
		{"note too long", 5, "good", string(make([]byte, 501)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := svc.Log(ctx, userID, tc.score, tc.label, tc.note, now)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, entry.ID)
		})
	}
}

func TestListOrderingAndLimit(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.Log(ctx, userID, 5, "okay", "", now.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	entries, err := svc.List(ctx, userID, now.Add(-time.Hour), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	assert.True(t, entries[1].CreatedAt.After(entries[2].CreatedAt))
}

func TestDeleteOwnerScoped(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	entry, err := svc.Log(ctx, owner, 3, "low", "", now)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger, entry.ID), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, owner, entry.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner, entry.ID), ErrNotFound)
}

func TestSummarize(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	// Three consecutive days ending today, mixed labels.
	for i, label := range []string{"good", "good", "anxious"} {
		_, err := svc.Log(ctx, userID, 4+i*2, label, "", now.AddDate(0, 0, -i))
		require.NoError(t, err)
	}

	sum, err := svc.Summarize(ctx, userID, 14, now)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 6.0, sum.AverageScore, 0.001)
	assert.Equal(t, 2, sum.ByLabel["good"])
	assert.Equal(t, 1, sum.ByLabel["anxious"])
	assert.Equal(t, 3, sum.StreakDays)
}

func TestSummarizeStreakToleratesMissingToday(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	// Entries yesterday and the day before, none today.
	for i := 1; i <= 2; i++ {
		_, err := svc.Log(ctx, userID, 5, "okay", "", now.AddDate(0, 0, -i))
		require.NoError(t, err)
	}

	sum, err := svc.Summarize(ctx, userID, 14, now)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.StreakDays)
}

func TestSummarizeEmpty(t *testing.T) {
	svc := New(NewMemStore(), zap.NewNop())

	sum, err := svc.Summarize(context.Background(), uuid.New(), 14, now)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Count)
	assert.Equal(t, 0, sum.StreakDays)
	assert.Zero(t, sum.AverageScore)
}
