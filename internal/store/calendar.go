package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// seedDates is the built-in price-adjustment schedule used when no calendar
// file exists yet. Adjustment windows land roughly every ten working days.
var seedDates = []string{
	"2025-01-02", "2025-01-16",
	"2025-02-06", "2025-02-19",
	"2025-03-05", "2025-03-19",
	"2025-04-02", "2025-04-17", "2025-04-30",
	"2025-05-19",
	"2025-06-03", "2025-06-17",
	"2025-07-01", "2025-07-15", "2025-07-29",
	"2025-08-12", "2025-08-26",
	"2025-09-09", "2025-09-23",
	"2025-10-13", "2025-10-27",
	"2025-11-10", "2025-11-24",
	"2025-12-08", "2025-12-22",
}

// CalendarStore persists the set of known price-adjustment dates as ISO
// calendar date strings.
type CalendarStore struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewCalendar creates a calendar store backed by the given file path.
func NewCalendar(path string, logger zerolog.Logger) *CalendarStore {
	return &CalendarStore{
		path:   path,
		logger: logger.With().Str("component", "calendar").Logger(),
	}
}

// Load returns the persisted dates. An absent file yields the built-in seed
// list; a corrupt file yields an empty list, same lenient policy as history.
func (s *CalendarStore) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("reading calendar file")
			return nil
		}
		seed := make([]string, len(seedDates))
		copy(seed, seedDates)
		return seed
	}

	var dates []string
	if err := json.Unmarshal(data, &dates); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("calendar file is corrupt, treating as empty")
		return nil
	}
	return dates
}

// Save overwrites the stored calendar with the given dates, deduplicated
// and sorted.
func (s *CalendarStore) Save(dates []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(uniqueSorted(dates), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating calendar directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// FilterFuture keeps dates on or after today, ascending and deduplicated.
// Dates are ISO strings, so lexicographic comparison is date comparison.
func FilterFuture(dates []string, today string) []string {
	var out []string
	for _, d := range uniqueSorted(dates) {
		if d >= today {
			out = append(out, d)
		}
	}
	return out
}

func uniqueSorted(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
