package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilprice-cn/oilquery/internal/models"
)

var testNow = time.Date(2025, 8, 28, 10, 30, 0, 0, time.Local)

func TestNormalizeJuheFields(t *testing.T) {
	rec := models.NativeRecord{
		Region: "广元",
		Fields: map[string]string{
			"city": "广元",
			"92h":  "7.92",
			"95h":  "8.47",
			"98h":  "9.25",
			"0h":   "7.60",
		},
	}

	q := Normalize(rec, models.SourceJuhe, testNow)

	require.Len(t, q.Items, 4)
	assert.Equal(t, models.Gasoline92, q.Items[0].Grade)
	assert.Equal(t, "7.92", q.Items[0].Price)
	assert.Equal(t, models.Gasoline95, q.Items[1].Grade)
	assert.Equal(t, "8.47", q.Items[1].Price)
	assert.Equal(t, models.Gasoline98, q.Items[2].Grade)
	assert.Equal(t, "9.25", q.Items[2].Price)
	assert.Equal(t, models.Diesel0, q.Items[3].Grade)
	assert.Equal(t, "7.60", q.Items[3].Price)

	assert.Equal(t, models.SourceJuhe, q.Source)
	assert.NotEmpty(t, q.Note)
}

// Missing fields become the "--" placeholder, never omitted: the result
// always carries exactly four grades in fixed order.
func TestNormalizeMissingFields(t *testing.T) {
	rec := models.NativeRecord{
		Region: "广元",
		Fields: map[string]string{"92h": "7.92"},
	}

	q := Normalize(rec, models.SourceJuhe, testNow)

	require.Len(t, q.Items, 4)
	assert.Equal(t, "7.92", q.Items[0].Price)
	assert.Equal(t, models.PricePlaceholder, q.Items[1].Price)
	assert.Equal(t, models.PricePlaceholder, q.Items[2].Price)
	assert.Equal(t, models.PricePlaceholder, q.Items[3].Price)
}

func TestNormalizeEmptyRecord(t *testing.T) {
	q := Normalize(models.NativeRecord{Region: "某地"}, models.SourceYoujia10260, testNow)

	require.Len(t, q.Items, 4)
	for _, item := range q.Items {
		assert.Equal(t, models.PricePlaceholder, item.Price)
	}
}

// A non-numeric provider placeholder is carried verbatim, never coerced.
func TestNormalizeKeepsPlaceholderStrings(t *testing.T) {
	rec := models.NativeRecord{
		Region: "西藏",
		Fields: map[string]string{
			string(models.Gasoline92): "8.45",
			string(models.Gasoline95): "--",
			string(models.Gasoline98): "暂无",
			string(models.Diesel0):    "7.95",
		},
	}

	q := Normalize(rec, models.SourceYoujia10260, testNow)

	assert.Equal(t, "--", q.Items[1].Price)
	assert.Equal(t, "暂无", q.Items[2].Price)
}

func TestNormalizeUpdatedAtFromProvider(t *testing.T) {
	rec := models.NativeRecord{
		Region:     "四川",
		UpdateTime: "2025-08-27 06:00",
	}

	q := Normalize(rec, models.SourceYoujia10260, testNow)

	assert.Equal(t, time.Date(2025, 8, 27, 6, 0, 0, 0, time.Local), q.UpdatedAt)
}

func TestNormalizeUpdatedAtLocalFallback(t *testing.T) {
	for _, updateTime := range []string{"", "未知", "昨天"} {
		q := Normalize(models.NativeRecord{UpdateTime: updateTime}, models.SourceYoujia10260, testNow)
		assert.Equal(t, testNow, q.UpdatedAt, "update time %q", updateTime)
	}
}

func TestNormalizeNotePerSource(t *testing.T) {
	juhe := Normalize(models.NativeRecord{}, models.SourceJuhe, testNow)
	youjia := Normalize(models.NativeRecord{}, models.SourceYoujia10260, testNow)

	assert.NotEmpty(t, juhe.Note)
	assert.NotEmpty(t, youjia.Note)
	assert.NotEqual(t, juhe.Note, youjia.Note)
}
