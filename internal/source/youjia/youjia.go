// Package youjia provides the scraping adapter for youjia.10260.com.
package youjia

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/models"
	"github.com/oilprice-cn/oilquery/internal/source"
	"github.com/oilprice-cn/oilquery/internal/useragent"
)

const (
	// baseURL is the nationwide price table page.
	baseURL = "http://youjia.10260.com/"
	// tableMarker locates the price table. The page has no stable id or
	// class, only this background-color attribute.
	tableMarker = `table[bgcolor="#B6CCE4"]`
)

// Column order of a data row: region, 92#, 95#, 98#, 0# diesel, and an
// optional trailing update-time cell.
var columnFields = []string{
	string(models.Gasoline92),
	string(models.Gasoline95),
	string(models.Gasoline98),
	string(models.Diesel0),
}

// Adapter implements the source interface for the youjia.10260.com page.
type Adapter struct {
	client  *http.Client
	logger  zerolog.Logger
	baseURL string
}

// New creates a new youjia.10260.com adapter.
func New(logger zerolog.Logger) *Adapter {
	return &Adapter{
		client:  source.NewHTTPClient(),
		logger:  logger.With().Str("source", string(models.SourceYoujia10260)).Logger(),
		baseURL: baseURL,
	}
}

// ID returns the source identifier.
func (a *Adapter) ID() models.SourceID {
	return models.SourceYoujia10260
}

// Fetch issues one unauthenticated GET against the price table page and
// returns every region row. The page is GBK encoded; it must be decoded
// here or prices render as garbage. Province and city are ignored: the
// page always carries the full nationwide table and matching happens
// downstream.
func (a *Adapter) Fetch(ctx context.Context, province, city string) ([]models.NativeRecord, error) {
	a.logger.Debug().
		Str("province", province).
		Str("city", city).
		Msg("fetching price table from youjia.10260.com")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// The upstream server rejects default Go clients.
	req.Header.Set("User-Agent", useragent.Random())

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Source: string(models.SourceYoujia10260), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.NetworkError{
			Source: string(models.SourceYoujia10260),
			Err:    fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	decoded := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find(tableMarker).First()
	if table.Length() == 0 {
		return nil, &errs.ParseError{Source: string(models.SourceYoujia10260), Marker: tableMarker}
	}

	var records []models.NativeRecord
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// Header row.
			return
		}
		cells := row.Find("td")
		if cells.Length() < 5 {
			// Layout filler rows are skipped, not an error.
			return
		}

		fields := make(map[string]string, len(columnFields))
		for col, name := range columnFields {
			fields[name] = strings.TrimSpace(cells.Eq(col + 1).Text())
		}

		updateTime := ""
		if cells.Length() > 5 {
			updateTime = strings.TrimSpace(cells.Eq(5).Text())
		}

		records = append(records, models.NativeRecord{
			Region:     strings.TrimSpace(cells.Eq(0).Text()),
			Fields:     fields,
			UpdateTime: updateTime,
		})
	})

	a.logger.Info().
		Int("count", len(records)).
		Msg("parsed price table from youjia.10260.com")

	return records, nil
}
