package metadata

import (
	"time"
)

type FetchEvent struct {
	FetchURL   string
	HTTPStatus int
	Duration   time.Duration
	FromCache  bool
}

/*
runStats
  - Represents a terminal, derived summary of a completed run
  - Contains only aggregate counts and durations
  - Is computed by the scheduler after the mode finished
  - Is recorded exactly once
  - Must not influence control flow
*/
type runStats struct {
	mode       string
	totalRows  int
	skipped    int
	durationMs int64
}

type ArtifactKind string

const (
	ArtifactArchive     ArtifactKind = "archive"
	ArtifactResultsFile ArtifactKind = "results_file"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for skip, continuation, or abort decisions.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

Meaning:
  - Failure caused by network transport or remote availability.

Examples:
  - TCP timeouts
  - DNS resolution failures
  - Connection resets

# CauseContentInvalid

Meaning:
  - Content was fetched but could not be processed meaningfully.

Examples:
  - Empty bodies or error status pages
  - A required tag missing from the page
  - A marker list missing from the sidebar

# CauseStorageFailure

Meaning:
  - Failure while persisting run artifacts or cached responses.

Examples:
  - Disk full
  - Write permission errors
  - SQLite open failures

# CauseConfigInvalid

Meaning:
  - The run could not start because its configuration is unusable.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseConfigInvalid
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseConfigInvalid:
		return "config_invalid"
	default:
		return "unknown"
	}
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrPath        AttributeKey = "path"
	AttrTag         AttributeKey = "tag"
	AttrPredicate   AttributeKey = "predicate"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrWritePath   AttributeKey = "write_path"
	AttrContentHash AttributeKey = "content_hash"
	AttrMode        AttributeKey = "mode"
)
