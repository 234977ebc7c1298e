// Package quote converts matched native records into the canonical
// source-independent PriceQuote shape.
package quote

import (
	"time"

	"github.com/oilprice-cn/oilquery/internal/models"
)

// fieldKeys maps, per source, each canonical grade to the provider field
// that carries its price.
var fieldKeys = map[models.SourceID]map[models.FuelGrade]string{
	models.SourceJuhe: {
		models.Gasoline92: "92h",
		models.Gasoline95: "95h",
		models.Gasoline98: "98h",
		models.Diesel0:    "0h",
	},
	models.SourceYoujia10260: {
		models.Gasoline92: string(models.Gasoline92),
		models.Gasoline95: string(models.Gasoline95),
		models.Gasoline98: string(models.Gasoline98),
		models.Diesel0:    string(models.Diesel0),
	},
}

// notes holds the fixed provenance text attached per source.
var notes = map[models.SourceID]string{
	models.SourceJuhe:        "数据来自聚合数据API，实际价格可能有波动",
	models.SourceYoujia10260: "数据来自10260油价网，仅供参考",
}

// updateTimeFormats are the provider timestamp layouts tried in order.
var updateTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalize maps a native record into the canonical PriceQuote. The result
// always carries the four fixed grades in stable order; a field absent from
// the record becomes the "--" placeholder so downstream rendering needs no
// per-source knowledge. UpdatedAt comes from the provider's own timestamp
// when it parses, otherwise from now.
func Normalize(rec models.NativeRecord, src models.SourceID, now time.Time) models.PriceQuote {
	keys := fieldKeys[src]

	items := make([]models.PriceItem, 0, 4)
	for _, grade := range models.Grades() {
		price := rec.Fields[keys[grade]]
		if price == "" {
			price = models.PricePlaceholder
		}
		items = append(items, models.PriceItem{Grade: grade, Price: price})
	}

	updatedAt := now
	if t, ok := parseUpdateTime(rec.UpdateTime); ok {
		updatedAt = t
	}

	return models.PriceQuote{
		Source:    src,
		UpdatedAt: updatedAt,
		Items:     items,
		Note:      notes[src],
	}
}

func parseUpdateTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range updateTimeFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
