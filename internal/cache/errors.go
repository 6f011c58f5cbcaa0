package cache

import (
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseOpenFailed  CacheErrorCause = "open failed"
	ErrCauseClearFailed CacheErrorCause = "clear failed"
	ErrCauseReadFailed  CacheErrorCause = "read failed"
	ErrCauseWriteFailed CacheErrorCause = "write failed"
)

type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCacheErrorToMetadataCause maps cache errors to the observational
// error causes. Used for metadata recording only, never for control flow.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseOpenFailed, ErrCauseClearFailed, ErrCauseReadFailed, ErrCauseWriteFailed:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
