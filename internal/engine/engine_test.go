package engine

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/models"
	"github.com/oilprice-cn/oilquery/internal/store"
)

// stubSource stands in for an adapter and counts outbound calls.
type stubSource struct {
	id          models.SourceID
	records     []models.NativeRecord
	err         error
	calls       atomic.Int64
	gotProvince string
	gotCity     string
}

func (s *stubSource) ID() models.SourceID {
	return s.id
}

func (s *stubSource) Fetch(_ context.Context, province, city string) ([]models.NativeRecord, error) {
	s.calls.Add(1)
	s.gotProvince = province
	s.gotCity = city
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func newTestEngine(t *testing.T, stubs ...*stubSource) *Engine {
	t.Helper()
	dir := t.TempDir()
	history := store.NewHistory(filepath.Join(dir, "history.json"), zerolog.Nop())
	calendar := store.NewCalendar(filepath.Join(dir, "calendar.json"), zerolog.Nop())
	e := New("", history, calendar, zerolog.Nop())
	for _, s := range stubs {
		e.sources[s.id] = s
		e.metrics[s.id] = &Metrics{}
	}
	return e
}

func guangyuanRecords() []models.NativeRecord {
	return []models.NativeRecord{
		{Region: "成都", Fields: map[string]string{"92h": "7.90"}},
		{Region: "广元", Fields: map[string]string{
			"92h": "7.92", "95h": "8.47", "98h": "9.25", "0h": "7.60",
		}},
	}
}

func TestQueryPriceSuccess(t *testing.T) {
	stub := &stubSource{id: models.SourceJuhe, records: guangyuanRecords()}
	e := newTestEngine(t, stub)

	q, err := e.QueryPrice(context.Background(), models.SourceJuhe, "四川省", "广元市")
	require.NoError(t, err)

	require.Len(t, q.Items, 4)
	assert.Equal(t, "7.92", q.Items[0].Price)
	assert.Equal(t, models.SourceJuhe, q.Source)

	// Adapters receive normalized names.
	assert.Equal(t, "四川", stub.gotProvince)
	assert.Equal(t, "广元", stub.gotCity)

	// The query landed in history with the original names.
	records := e.ListHistory(0)
	require.Len(t, records, 1)
	assert.Equal(t, "四川省", records[0].Province)
	assert.Equal(t, "广元市", records[0].City)

	last, ok := e.LastResult()
	require.True(t, ok)
	assert.Equal(t, int64(1), last.Generation)
}

func TestQueryPriceUnknownSource(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.QueryPrice(context.Background(), models.SourceID("nope"), "四川省", "")

	var cfgErr *errs.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

// The juhe adapter without a credential fails before any network call and
// nothing reaches history.
func TestQueryPriceJuheWithoutCredential(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.QueryPrice(context.Background(), models.SourceJuhe, "四川省", "广元市")

	var cfgErr *errs.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, e.ListHistory(0))

	_, ok := e.LastResult()
	assert.False(t, ok)
}

func TestQueryPriceNotFound(t *testing.T) {
	stub := &stubSource{id: models.SourceJuhe, records: []models.NativeRecord{{Region: "北京"}}}
	e := newTestEngine(t, stub)

	_, err := e.QueryPrice(context.Background(), models.SourceJuhe, "四川省", "广元市")

	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Empty(t, e.ListHistory(0))
}

func TestQueryPriceFetchErrorPropagates(t *testing.T) {
	stub := &stubSource{
		id:  models.SourceJuhe,
		err: &errs.UpstreamError{Source: "juhe", Code: 10012, Message: "limit"},
	}
	e := newTestEngine(t, stub)

	_, err := e.QueryPrice(context.Background(), models.SourceJuhe, "四川省", "")

	var upErr *errs.UpstreamError
	require.ErrorAs(t, err, &upErr)

	snap := e.Metrics(models.SourceJuhe).Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
	assert.False(t, snap.LastQuerySuccess)
	require.NotNil(t, snap.LastError)
}

func TestMetricsRecordSuccess(t *testing.T) {
	stub := &stubSource{id: models.SourceJuhe, records: guangyuanRecords()}
	e := newTestEngine(t, stub)

	_, err := e.QueryPrice(context.Background(), models.SourceJuhe, "四川省", "广元市")
	require.NoError(t, err)

	snap := e.Metrics(models.SourceJuhe).Snapshot()
	assert.Equal(t, int64(1), snap.TotalRequests)
	assert.Equal(t, int64(0), snap.TotalErrors)
	assert.True(t, snap.LastQuerySuccess)
	assert.Nil(t, snap.LastError)
	assert.NotNil(t, snap.LastQueryAt)
}

// A result from a stale generation never overwrites a fresher one.
func TestStaleResultDiscarded(t *testing.T) {
	e := newTestEngine(t)

	fresh := Result{Generation: 2, Province: "四川省", City: "成都市"}
	stale := Result{Generation: 1, Province: "四川省", City: "广元市"}

	e.storeResult(fresh)
	e.storeResult(stale)

	last, ok := e.LastResult()
	require.True(t, ok)
	assert.Equal(t, int64(2), last.Generation)
	assert.Equal(t, "成都市", last.City)
}

func TestGenerationsIncrease(t *testing.T) {
	stub := &stubSource{id: models.SourceJuhe, records: guangyuanRecords()}
	e := newTestEngine(t, stub)

	ctx := context.Background()
	_, err := e.QueryPrice(ctx, models.SourceJuhe, "四川省", "广元市")
	require.NoError(t, err)
	_, err = e.QueryPrice(ctx, models.SourceJuhe, "四川省", "成都市")
	require.NoError(t, err)

	last, ok := e.LastResult()
	require.True(t, ok)
	assert.Equal(t, int64(2), last.Generation)

	// Both overlapping queries are present in history.
	assert.Len(t, e.ListHistory(0), 2)
}

func TestCalendarAddAndFilter(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.AddCalendarDate("2099-01-01"))
	assert.Contains(t, e.Calendar(), "2099-01-01")

	// Past dates never show up in the rendered view.
	require.NoError(t, e.AddCalendarDate("2000-01-01"))
	assert.NotContains(t, e.Calendar(), "2000-01-01")
}

func TestCalendarRejectsInvalidDate(t *testing.T) {
	e := newTestEngine(t)
	assert.Error(t, e.AddCalendarDate("not-a-date"))
	assert.Error(t, e.AddCalendarDate("2025/01/01"))
}

func TestSources(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, []models.SourceID{models.SourceJuhe, models.SourceYoujia10260}, e.Sources())
}
