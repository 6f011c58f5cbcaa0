package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

type FetchErrorCause string

const (
	// ErrCauseTransport covers DNS, connection, timeout and body read failures.
	ErrCauseTransport FetchErrorCause = "transport error"
	// ErrCauseEmptyResponse is a whitespace-only body or an HTTP error status.
	ErrCauseEmptyResponse FetchErrorCause = "empty response"
	ErrCauseParseFailure  FetchErrorCause = "parse failure"
	ErrCauseCacheFailure  FetchErrorCause = "cache failure"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
	URL       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.URL)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseTransport:
		return metadata.CauseNetworkFailure
	case ErrCauseEmptyResponse, ErrCauseParseFailure:
		return metadata.CauseContentInvalid
	case ErrCauseCacheFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
