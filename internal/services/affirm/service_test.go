package affirm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *MemStore {
	return NewMemStore(
		Affirmation{ID: uuid.New(), Category: "calm", Text: "You are allowed to rest."},
		Affirmation{ID: uuid.New(), Category: "calm", Text: "This feeling will pass."},
		Affirmation{ID: uuid.New(), Category: "growth", Text: "Small steps still count."},
		Affirmation{ID: uuid.New(), Category: "growth", Text: "You have handled hard days before."},
	)
}

func TestDailyIsStablePerUserAndDay(t *testing.T) {
	svc := New(testStore())
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	first, err := svc.Daily(ctx, userID, day)
	require.NoError(t, err)

	// Same user, same day, different wall-clock time: same pick.
	second, err := svc.Daily(ctx, userID, day.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// The next day may differ; across many days it must not be constant.
	changed := false
	for i := 1; i <= 10 && !changed; i++ {
		next, err := svc.Daily(ctx, userID, day.AddDate(0, 0, i))
		require.NoError(t, err)
		changed = next.ID != first.ID
	}
	assert.True(t, changed, "daily pick should rotate over days")
}

func TestRandomByCategory(t *testing.T) {
	svc := New(testStore())
	ctx := context.Background()

	a, err := svc.Random(ctx, "growth")
	require.NoError(t, err)
	assert.Equal(t, "growth", a.Category)

	a, err = svc.Random(ctx, "  CALM ")
	require.NoError(t, err)
	assert.Equal(t, "calm", a.Category)

	_, err = svc.Random(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrNoAffirmations)
}

func TestEmptyStore(t *testing.T) {
	svc := New(NewMemStore())

	_, err := svc.Daily(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrNoAffirmations)
}
