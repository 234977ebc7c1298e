// Package juhe provides the adapter for the juhe.cn fuel price API.
package juhe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/oilprice-cn/oilquery/internal/errs"
	"github.com/oilprice-cn/oilquery/internal/models"
	"github.com/oilprice-cn/oilquery/internal/source"
	"github.com/oilprice-cn/oilquery/internal/useragent"
)

const (
	// baseURL is the API endpoint for the juhe.cn national fuel price query.
	baseURL = "http://apis.juhe.cn/gnyj/query"
)

// apiResponse represents the JSON envelope returned by the juhe.cn API.
// Field values in result rows arrive as strings or numbers depending on the
// provider's mood, so rows are decoded loosely.
type apiResponse struct {
	ErrorCode int              `json:"error_code"`
	Reason    string           `json:"reason"`
	Result    []map[string]any `json:"result"`
}

// Adapter implements the source interface for the juhe.cn API.
type Adapter struct {
	client  *http.Client
	logger  zerolog.Logger
	apiKey  string
	baseURL string
}

// New creates a new juhe.cn adapter. The API key may be empty; Fetch fails
// with a ConfigurationError before any network call in that case.
func New(logger zerolog.Logger, apiKey string) *Adapter {
	return &Adapter{
		client:  source.NewHTTPClient(),
		logger:  logger.With().Str("source", string(models.SourceJuhe)).Logger(),
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// ID returns the source identifier.
func (a *Adapter) ID() models.SourceID {
	return models.SourceJuhe
}

// Fetch issues one authenticated GET against the juhe.cn API and returns the
// provider's per-city price rows.
func (a *Adapter) Fetch(ctx context.Context, province, city string) ([]models.NativeRecord, error) {
	if a.apiKey == "" {
		return nil, &errs.ConfigurationError{Reason: "juhe API key is not set (JUHE_API_KEY)"}
	}

	params := url.Values{}
	params.Set("key", a.apiKey)
	params.Set("province", province)
	if city != "" {
		params.Set("city", city)
	}
	apiURL := a.baseURL + "?" + params.Encode()

	a.logger.Debug().
		Str("province", province).
		Str("city", city).
		Msg("fetching prices from juhe")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", useragent.Random())
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &errs.NetworkError{Source: string(models.SourceJuhe), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.NetworkError{
			Source: string(models.SourceJuhe),
			Err:    fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.NetworkError{Source: string(models.SourceJuhe), Err: err}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &errs.ParseError{Source: string(models.SourceJuhe), Marker: "JSON envelope"}
	}

	if apiResp.ErrorCode != 0 {
		return nil, &errs.UpstreamError{
			Source:  string(models.SourceJuhe),
			Code:    apiResp.ErrorCode,
			Message: apiResp.Reason,
		}
	}

	records := make([]models.NativeRecord, 0, len(apiResp.Result))
	for _, row := range apiResp.Result {
		fields := make(map[string]string, len(row))
		for k, v := range row {
			fields[k] = stringify(v)
		}
		records = append(records, models.NativeRecord{
			Region: fields["city"],
			Fields: fields,
		})
	}

	a.logger.Info().
		Int("count", len(records)).
		Str("province", province).
		Msg("fetched prices from juhe")

	return records, nil
}

// stringify converts a loosely typed JSON value to its display string.
// Prices are never coerced to numbers downstream.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
