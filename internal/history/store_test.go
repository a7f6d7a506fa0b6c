package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAssignsID(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Record(context.Background(), Run{
		RootPath: "/proj",
		Status:   "success",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.StartedAt.IsZero())
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().Add(-time.Hour)

	for i, status := range []string{"success", "failed", "success"} {
		_, err := store.Record(context.Background(), Run{
			RootPath:  "/proj",
			Scheme:    "App",
			Status:    status,
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	runs, err := store.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "success", runs[0].Status)
	assert.Equal(t, "failed", runs[1].Status)
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt))
}

func TestRecentEmptyStore(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRecordKeepsErrorText(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Record(context.Background(), Run{
		RootPath: "/proj",
		Status:   "failed",
		Error:    "scheme App not found",
	})
	require.NoError(t, err)

	runs, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "scheme App not found", runs[0].Error)
}
