// Package store provides the flat-file record stores for query history and
// the price-adjustment calendar. Files are human-readable JSON; a missing or
// corrupt file reads as empty state so the tool stays usable after damage.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oilprice-cn/oilquery/internal/models"
)

// MaxHistory is the number of history entries kept; the oldest are evicted.
const MaxHistory = 100

// HistoryStore is the append-only query history. The mutex covers the whole
// load-modify-store cycle so overlapping queries cannot lose records.
type HistoryStore struct {
	path   string
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewHistory creates a history store backed by the given file path.
func NewHistory(path string, logger zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		path:   path,
		logger: logger.With().Str("component", "history").Logger(),
	}
}

// Append prepends the record, truncates to MaxHistory, and writes back.
func (s *HistoryStore) Append(rec models.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.read()
	records = append([]models.QueryRecord{rec}, records...)
	if len(records) > MaxHistory {
		records = records[:MaxHistory]
	}
	return s.write(records)
}

// List returns up to limit records, most recent first. A limit below one
// returns everything stored.
func (s *HistoryStore) List(limit int) []models.QueryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.read()
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// read loads the current list. Missing and malformed files both yield an
// empty list; corruption is logged, never propagated.
func (s *HistoryStore) read() []models.QueryRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("reading history file")
		}
		return nil
	}

	var records []models.QueryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("history file is corrupt, treating as empty")
		return nil
	}
	return records
}

func (s *HistoryStore) write(records []models.QueryRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
