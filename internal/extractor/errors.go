package extractor

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/internal/locator"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

type ExtractionErrorCause string

const (
	ErrCauseDataDoesNotExist ExtractionErrorCause = "data does not exist"
	ErrCauseInvalidLink      ExtractionErrorCause = "invalid link"
)

type ExtractionError struct {
	Message   string
	Retryable bool
	Cause     ExtractionErrorCause
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapExtractionErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractionErrorToMetadataCause(err error) metadata.ErrorCause {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Cause {
		case ErrCauseDataDoesNotExist, ErrCauseInvalidLink:
			return metadata.CauseContentInvalid
		}
		return metadata.CauseUnknown
	}
	var locateErr *locator.LocateError
	if errors.As(err, &locateErr) {
		return metadata.CauseContentInvalid
	}
	return metadata.CauseUnknown
}
