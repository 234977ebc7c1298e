// Package source provides the interface and shared transport settings for
// fuel price sources.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/oilprice-cn/oilquery/internal/models"
)

// Timeout is the fixed transport bound shared by all sources. There is no
// retry logic: transient failures propagate to the caller.
const Timeout = 12 * time.Second

// Source defines the capability "fetch raw price data and return
// provider-native records". Each variant knows its own transport, parsing,
// and record shape. Province and city arrive already normalized (suffixes
// stripped); city may be empty for province-level queries.
type Source interface {
	// ID returns the source identifier.
	ID() models.SourceID

	// Fetch issues one outbound request against the upstream and returns
	// its native records.
	Fetch(ctx context.Context, province, city string) ([]models.NativeRecord, error)
}

// NewHTTPClient returns an HTTP client with the shared transport timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: Timeout}
}
