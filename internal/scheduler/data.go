package scheduler

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/pydocs-scraper/internal/extractor"
	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/rohmanhakim/pydocs-scraper/internal/locator"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

// Mode selects one of the scraping routines.
type Mode string

const (
	ModeWhatsNew       Mode = "whats-new"
	ModeLatestVersions Mode = "latest-versions"
	ModeDownload       Mode = "download"
	ModePEP            Mode = "pep"
)

// Modes lists every mode in the order the CLI presents them.
func Modes() []string {
	return []string{
		string(ModeWhatsNew),
		string(ModeLatestVersions),
		string(ModeDownload),
		string(ModePEP),
	}
}

// ErrUnknownMode is returned by ParseMode and Execute for a mode name that
// has no routine.
var ErrUnknownMode = errors.New("unknown mode")

func ParseMode(name string) (Mode, error) {
	for _, m := range Modes() {
		if m == name {
			return Mode(name), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Outcome is the scheduler's verdict on one item of a looping mode.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeSkip
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeSkip:
		return "skip"
	default:
		return "fatal"
	}
}

// itemOutcome decides what a per-item failure means for the running mode.
// Only an empty response is skipped; every other failure ends the mode.
func itemOutcome(err failure.ClassifiedError) Outcome {
	if err == nil {
		return OutcomeOK
	}
	if isEmptyResponse(err) && failure.IsRecoverable(err) {
		return OutcomeSkip
	}
	return OutcomeFatal
}

func isEmptyResponse(err error) bool {
	var fetchErr *fetcher.FetchError
	return errors.As(err, &fetchErr) && fetchErr.Cause == fetcher.ErrCauseEmptyResponse
}

// Failure kinds a mode may end with that still count as a clean run.
const (
	KindEmptyResponse    = "EmptyResponse"
	KindDataDoesNotExist = "DataDoesNotExist"
	KindTagNotFound      = "TagNotFound"
	KindTransportError   = "TransportError"
)

// ModeFailureKind names the scraping failure behind err. The boolean is
// false for infrastructure failures (cache, storage, configuration) and for
// unclassified errors; those must make the process exit non-zero.
func ModeFailureKind(err error) (string, bool) {
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Cause {
		case fetcher.ErrCauseEmptyResponse:
			return KindEmptyResponse, true
		case fetcher.ErrCauseTransport:
			return KindTransportError, true
		}
		return "", false
	}

	var locateErr *locator.LocateError
	if errors.As(err, &locateErr) {
		return KindTagNotFound, true
	}

	var extractionErr *extractor.ExtractionError
	if errors.As(err, &extractionErr) && extractionErr.Cause == extractor.ErrCauseDataDoesNotExist {
		return KindDataDoesNotExist, true
	}

	return "", false
}

// FailureAttrs returns the arguments of a mode failure worth logging: the
// URL of a failed fetch and the query of a failed tag lookup.
func FailureAttrs(err error) []metadata.Attribute {
	var attrs []metadata.Attribute
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) && fetchErr.URL != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrURL, fetchErr.URL))
	}
	return append(attrs, extractor.LocateAttrs(err)...)
}

// Execution is the result of one mode run. Table is nil for download,
// which reports the saved archive instead.
type Execution struct {
	Table       *report.Table
	Skipped     int
	ArchivePath string
}
