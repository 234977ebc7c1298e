package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFuture(t *testing.T) {
	got := FilterFuture([]string{"2024-01-01", "2025-06-01"}, "2025-01-01")
	assert.Equal(t, []string{"2025-06-01"}, got)
}

// The filter is inclusive of today and returns ascending order.
func TestFilterFutureInclusiveAndSorted(t *testing.T) {
	dates := []string{"2025-06-01", "2025-01-01", "2024-12-31", "2025-03-05"}

	got := FilterFuture(dates, "2025-01-01")
	assert.Equal(t, []string{"2025-01-01", "2025-03-05", "2025-06-01"}, got)
}

func TestFilterFutureDeduplicates(t *testing.T) {
	got := FilterFuture([]string{"2025-06-01", "2025-06-01"}, "2025-01-01")
	assert.Equal(t, []string{"2025-06-01"}, got)
}

func TestFilterFutureEmpty(t *testing.T) {
	assert.Empty(t, FilterFuture(nil, "2025-01-01"))
	assert.Empty(t, FilterFuture([]string{"2024-01-01"}, "2025-01-01"))
}

func TestCalendarLoadAbsentReturnsSeed(t *testing.T) {
	s := NewCalendar(filepath.Join(t.TempDir(), "calendar.json"), zerolog.Nop())

	dates := s.Load()
	require.NotEmpty(t, dates)
	assert.Contains(t, dates, "2025-01-02")
}

func TestCalendarLoadCorruptReturnsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	s := NewCalendar(path, zerolog.Nop())
	assert.Empty(t, s.Load())
}

func TestCalendarSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	s := NewCalendar(path, zerolog.Nop())

	require.NoError(t, s.Save([]string{"2025-06-01", "2025-03-05", "2025-06-01"}))

	// Saved deduplicated and sorted; the seed no longer applies.
	assert.Equal(t, []string{"2025-03-05", "2025-06-01"}, s.Load())
}

func TestCalendarSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	s := NewCalendar(path, zerolog.Nop())

	require.NoError(t, s.Save([]string{"2025-03-05"}))
	require.NoError(t, s.Save([]string{"2025-06-01"}))

	assert.Equal(t, []string{"2025-06-01"}, s.Load())
}
