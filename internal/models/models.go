// Package models provides shared data types for the fuel price query tool.
package models

import (
	"time"
)

// SourceID identifies a price data source. The set of sources is closed:
// new sources are added here and wired in the engine, not registered at runtime.
type SourceID string

const (
	// SourceJuhe is the keyed REST API at apis.juhe.cn.
	SourceJuhe SourceID = "juhe"
	// SourceYoujia10260 is the unauthenticated HTML page at youjia.10260.com.
	SourceYoujia10260 SourceID = "youjia10260"
)

// DisplayName returns the human-readable name of the source.
func (s SourceID) DisplayName() string {
	switch s {
	case SourceJuhe:
		return "聚合数据"
	case SourceYoujia10260:
		return "10260油价网"
	}
	return string(s)
}

// AllSources lists every known source in display order.
func AllSources() []SourceID {
	return []SourceID{SourceJuhe, SourceYoujia10260}
}

// FuelGrade is one of the four fixed retail fuel grades.
type FuelGrade string

const (
	Gasoline92 FuelGrade = "92号汽油"
	Gasoline95 FuelGrade = "95号汽油"
	Gasoline98 FuelGrade = "98号汽油"
	Diesel0    FuelGrade = "0号柴油"
)

// Grades returns the fixed grade set in canonical display order.
func Grades() []FuelGrade {
	return []FuelGrade{Gasoline92, Gasoline95, Gasoline98, Diesel0}
}

// PricePlaceholder is used for any grade a source did not report.
const PricePlaceholder = "--"

// PriceItem is one grade/price pair within a quote. The price is kept as a
// display string: sources report placeholders like "--" and those are never
// coerced to a number.
type PriceItem struct {
	Grade FuelGrade `json:"grade"`
	Price string    `json:"price"`
}

// PriceQuote is the canonical, source-independent price record.
// Items always contains the four fixed grades in stable order.
type PriceQuote struct {
	// Source is the adapter that produced this quote.
	Source SourceID `json:"source"`
	// UpdatedAt is the provider-reported time, or the local time at
	// normalization when the provider reports none.
	UpdatedAt time.Time `json:"updated_at"`
	// Items holds the four fixed grades in stable order.
	Items []PriceItem `json:"items"`
	// Note is the fixed provenance/disclaimer text for the source.
	Note string `json:"note,omitempty"`
}

// QueryRecord is one history entry. Records are created on every successful
// query and never mutated afterwards.
type QueryRecord struct {
	Province  string     `json:"province"`
	City      string     `json:"city,omitempty"`
	Quote     PriceQuote `json:"quote"`
	SourceID  SourceID   `json:"source_id"`
	QueriedAt time.Time  `json:"queried_at"`
}

// NativeRecord is a source-specific raw data row prior to normalization.
// Region is the provider's location label; Fields maps provider field names
// to raw values; UpdateTime is the provider's own timestamp text, if any.
type NativeRecord struct {
	Region     string
	Fields     map[string]string
	UpdateTime string
}

// Notice is one government fuel-price announcement. Notices are transient
// and produced fresh on each fetch.
type Notice struct {
	Date  time.Time
	Title string
	URL   string
}
