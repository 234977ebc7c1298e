// Package errs defines the error taxonomy shared by adapters, matcher,
// and stores. Callers distinguish classes with errors.As.
package errs

import (
	"fmt"
)

// ConfigurationError means a required credential or setting is missing.
// The call cannot succeed until the user supplies configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// NetworkError wraps transport-level failures: timeouts, connection errors,
// and non-2xx HTTP statuses. Transient; retry is manual.
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error (%s): %v", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UpstreamError is a provider-reported failure. The provider message is
// surfaced verbatim.
type UpstreamError struct {
	Source  string
	Code    int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%s, code %d): %s", e.Source, e.Code, e.Message)
}

// ParseError means an expected structural marker was absent from an upstream
// document: the upstream format drifted and the adapter needs an update.
type ParseError struct {
	Source string
	Marker string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error (%s): expected marker %q not found", e.Source, e.Marker)
}

// NotFoundError means matching produced no record for the requested
// location. This is a legitimate "no data for this place" outcome, not a
// system failure.
type NotFoundError struct {
	Province string
	City     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no price data found for %s%s", e.Province, e.City)
}

// NoNoticesError means the notice listing parsed fine but no item survived
// filtering. Same class of outcome as NotFoundError.
type NoNoticesError struct{}

func (e *NoNoticesError) Error() string {
	return "no matching fuel price notices found"
}
