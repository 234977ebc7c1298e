// Package engine is the core facade over the acquisition and normalization
// layer: it dispatches to the source adapters, matches and normalizes the
// result, and owns the history and calendar stores.
package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/match"
	"github.com/oilprice-cn/oilquery/internal/models"
	"github.com/oilprice-cn/oilquery/internal/notices"
	"github.com/oilprice-cn/oilquery/internal/quote"
	"github.com/oilprice-cn/oilquery/internal/region"
	"github.com/oilprice-cn/oilquery/internal/source"
	"github.com/oilprice-cn/oilquery/internal/source/juhe"
	"github.com/oilprice-cn/oilquery/internal/source/youjia"
	"github.com/oilprice-cn/oilquery/internal/store"
)

// Metrics holds query metrics for one source.
type Metrics struct {
	mu               sync.RWMutex
	TotalRequests    int64
	TotalErrors      int64
	LastQueryAt      *time.Time
	LastQuerySuccess bool
	LastResponseTime time.Duration
	LastError        *string
}

// Snapshot returns a thread-safe copy of the metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		TotalRequests:    m.TotalRequests,
		TotalErrors:      m.TotalErrors,
		LastQueryAt:      m.LastQueryAt,
		LastQuerySuccess: m.LastQuerySuccess,
		LastResponseTime: m.LastResponseTime,
		LastError:        m.LastError,
	}
}

// MetricsSnapshot is a copy of Metrics data.
type MetricsSnapshot struct {
	TotalRequests    int64
	TotalErrors      int64
	LastQueryAt      *time.Time
	LastQuerySuccess bool
	LastResponseTime time.Duration
	LastError        *string
}

// Result is a completed query tagged with its generation. Generations are
// monotonically increasing so a slow stale query can never overwrite a
// fresher result.
type Result struct {
	Generation int64
	Province   string
	City       string
	Quote      models.PriceQuote
}

// Engine dispatches queries to the closed set of source adapters.
type Engine struct {
	sources  map[models.SourceID]source.Source
	metrics  map[models.SourceID]*Metrics
	history  *store.HistoryStore
	calendar *store.CalendarStore
	notices  *notices.Fetcher
	logger   zerolog.Logger

	generation atomic.Int64

	mu         sync.Mutex
	lastResult *Result
}

// New creates an engine with the full source set. juheAPIKey may be empty;
// queries against the juhe source then fail with a ConfigurationError.
// New sources are added here, not registered at runtime.
func New(juheAPIKey string, history *store.HistoryStore, calendar *store.CalendarStore, logger zerolog.Logger) *Engine {
	e := &Engine{
		sources:  make(map[models.SourceID]source.Source),
		metrics:  make(map[models.SourceID]*Metrics),
		history:  history,
		calendar: calendar,
		notices:  notices.New(logger),
		logger:   logger.With().Str("component", "engine").Logger(),
	}
	for _, s := range []source.Source{
		juhe.New(logger, juheAPIKey),
		youjia.New(logger),
	} {
		e.sources[s.ID()] = s
		e.metrics[s.ID()] = &Metrics{}
	}
	return e
}

// Sources returns the known source identifiers in display order.
func (e *Engine) Sources() []models.SourceID {
	return models.AllSources()
}

// Metrics returns the metrics for a source, or nil for an unknown source.
func (e *Engine) Metrics(id models.SourceID) *Metrics {
	return e.metrics[id]
}

// QueryPrice runs one query: normalize the region names, fetch the source's
// native records, match, normalize into the canonical quote, and append to
// history. Safe for concurrent use; overlapping queries all land in history.
func (e *Engine) QueryPrice(ctx context.Context, id models.SourceID, province, city string) (models.PriceQuote, error) {
	adapter, ok := e.sources[id]
	if !ok {
		return models.PriceQuote{}, &errs.ConfigurationError{Reason: fmt.Sprintf("unknown source %q", id)}
	}

	gen := e.generation.Add(1)
	m := e.metrics[id]

	normProvince := region.Normalize(province, region.Province)
	normCity := ""
	if city != "" {
		normCity = region.Normalize(city, region.City)
	}

	e.logger.Info().
		Str("source", string(id)).
		Str("province", normProvince).
		Str("city", normCity).
		Int64("generation", gen).
		Msg("querying price")

	m.mu.Lock()
	m.TotalRequests++
	m.mu.Unlock()

	start := time.Now()
	records, err := adapter.Fetch(ctx, normProvince, normCity)
	duration := time.Since(start)

	now := time.Now()
	m.mu.Lock()
	m.LastQueryAt = &now
	m.LastResponseTime = duration
	if err != nil {
		m.TotalErrors++
		m.LastQuerySuccess = false
		errStr := err.Error()
		m.LastError = &errStr
	} else {
		m.LastQuerySuccess = true
		m.LastError = nil
	}
	m.mu.Unlock()

	if err != nil {
		e.logger.Error().
			Err(err).
			Str("source", string(id)).
			Dur("duration", duration).
			Msg("fetch failed")
		return models.PriceQuote{}, err
	}

	rec, found := match.Match(records, normProvince, normCity)
	if !found {
		// A legitimate "no data for this place" outcome, not a failure.
		return models.PriceQuote{}, &errs.NotFoundError{Province: province, City: city}
	}

	q := quote.Normalize(rec, id, time.Now())

	if err := e.history.Append(models.QueryRecord{
		Province:  province,
		City:      city,
		Quote:     q,
		SourceID:  id,
		QueriedAt: time.Now(),
	}); err != nil {
		// The quote itself is good; a failed history write must not fail
		// the query.
		e.logger.Warn().Err(err).Msg("appending query history")
	}

	e.storeResult(Result{Generation: gen, Province: province, City: city, Quote: q})

	e.logger.Info().
		Str("source", string(id)).
		Str("region", rec.Region).
		Dur("duration", duration).
		Msg("query completed")

	return q, nil
}

// storeResult records the freshest completed query. Results from stale
// generations are discarded.
func (e *Engine) storeResult(r Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastResult != nil && e.lastResult.Generation > r.Generation {
		e.logger.Debug().
			Int64("generation", r.Generation).
			Int64("current", e.lastResult.Generation).
			Msg("discarding stale query result")
		return
	}
	e.lastResult = &r
}

// LastResult returns the freshest completed query, if any.
func (e *Engine) LastResult() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastResult == nil {
		return Result{}, false
	}
	return *e.lastResult, true
}

// ListHistory returns up to limit history records, most recent first.
func (e *Engine) ListHistory(limit int) []models.QueryRecord {
	return e.history.List(limit)
}

// Calendar returns the known adjustment dates from today onward, ascending.
// Past dates are dropped from the view, not from storage.
func (e *Engine) Calendar() []string {
	today := time.Now().Format("2006-01-02")
	return store.FilterFuture(e.calendar.Load(), today)
}

// AddCalendarDate persists one adjustment date.
func (e *Engine) AddCalendarDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	dates := e.calendar.Load()
	return e.calendar.Save(append(dates, date))
}

// PruneCalendar drops past dates from storage.
func (e *Engine) PruneCalendar() error {
	today := time.Now().Format("2006-01-02")
	return e.calendar.Save(store.FilterFuture(e.calendar.Load(), today))
}

// FetchNotices returns the latest fuel price notices, newest first.
func (e *Engine) FetchNotices(ctx context.Context, maxResults int) ([]models.Notice, error) {
	return e.notices.FetchLatest(ctx, maxResults)
}
