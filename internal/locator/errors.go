package locator

import (
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

type LocateErrorCause string

const (
	ErrCauseTagNotFound LocateErrorCause = "tag not found"
)

// LocateError reports that no element matched a locate query.
// Tag and Predicate carry the query so callers can log exactly what was missing.
type LocateError struct {
	Message   string
	Retryable bool
	Cause     LocateErrorCause
	Tag       string
	Predicate string
}

func (e *LocateError) Error() string {
	if e.Predicate == "" {
		return fmt.Sprintf("locate error: %s: <%s>", e.Cause, e.Tag)
	}
	return fmt.Sprintf("locate error: %s: <%s> %s", e.Cause, e.Tag, e.Predicate)
}

func (e *LocateError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
