package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestLast_EmptyStore_ReturnsNoRuns(t *testing.T) {
	s := openStore(t)
	_, err := s.Last(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoRuns))
}

func TestRecord_ThenLast_RoundTrips(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run := Run{
		ID:         "run-1",
		StartedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Status:     "ok",
		PageRefs:   22,
		Links:      3,
		DurationMS: 120,
	}
	require.NoError(t, s.Record(ctx, run))

	got, err := s.Last(ctx)
	require.NoError(t, err)
	require.Equal(t, run, got)
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Run{
			ID:        string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    "ok",
		}))
	}

	runs, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "e", runs[0].ID)
	require.Equal(t, "d", runs[1].ID)
	require.Equal(t, "c", runs[2].ID)
}

func TestRecord_DuplicateID_ReturnsError(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run := Run{ID: "dup", StartedAt: time.Now().UTC(), Status: "failed", Detail: "duplicate entry"}
	require.NoError(t, s.Record(ctx, run))
	require.Error(t, s.Record(ctx, run))
}
