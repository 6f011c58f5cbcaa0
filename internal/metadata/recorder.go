package metadata

import (
	"time"

	"github.com/rs/zerolog"
)

/*
Metadata Collected
- Fetch timestamps and durations
- HTTP status codes and cache hits
- Content hashes of saved archives
- Skipped items and status discrepancies

Logging Goals
- Debuggable run behavior
- Post-run auditability
- Failure diagnostics

Metadata is write-only.
No component may read metadata to influence scraping decisions.
*/

/*
Recorder captures structured run events and writes them through zerolog.
It must not:
- perform I/O decisions
- affect control flow
Events are recorded synchronously in the order they are received.
*/
type Recorder struct {
	logger zerolog.Logger
	runID  string
}

func NewRecorder(logger zerolog.Logger, runID string) *Recorder {
	return &Recorder{
		logger: logger.With().Str("run_id", runID).Logger(),
		runID:  runID,
	}
}

func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	ev := r.logger.Debug().
		Time("observed_at", observedAt).
		Str("package", packageName).
		Str("action", action).
		Stringer("cause", cause).
		Str("details", details)
	withAttrs(ev, attrs).Msg("component error")
}

func (r *Recorder) RecordFetch(event FetchEvent) {
	r.logger.Debug().
		Str("url", event.FetchURL).
		Int("http_status", event.HTTPStatus).
		Dur("duration", event.Duration).
		Bool("from_cache", event.FromCache).
		Msg("fetched")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	ev := r.logger.Info().
		Str("kind", string(kind)).
		Str("path", path)
	withAttrs(ev, attrs).Msgf("%s saved to %s", kind, path)
}

func (r *Recorder) RecordSkip(mode string, itemURL string, reason string) {
	r.logger.Info().
		Str("mode", mode).
		Str("url", itemURL).
		Str("reason", reason).
		Msg("item skipped")
}

func (r *Recorder) RecordStatusMismatch(pageURL string, observed string, expected []string) {
	r.logger.Info().
		Str("url", pageURL).
		Str("observed", observed).
		Strs("expected", expected).
		Msg("status mismatch")
}

func (r *Recorder) RecordProgress(mode string, done int, total int) {
	r.logger.Debug().
		Str("mode", mode).
		Int("done", done).
		Int("total", total).
		Msg("progress")
}

// RecordRunStart logs the selected mode and the parsed command-line arguments.
func (r *Recorder) RecordRunStart(mode string, args map[string]string) {
	ev := r.logger.Info().Str("mode", mode)
	for k, v := range args {
		ev = ev.Str(k, v)
	}
	ev.Msg("scraper started")
}

// RecordFailure logs a mode-level failure with its kind and arguments.
func (r *Recorder) RecordFailure(mode string, kind string, err error, attrs []Attribute) {
	ev := r.logger.Error().
		Str("mode", mode).
		Str("kind", kind).
		Err(err)
	withAttrs(ev, attrs).Msg("mode failed")
}

/*
RecordFinalRunStats records a terminal, derived summary of a completed run.

Contract:
  - MUST be called exactly once per run.
  - MUST be called only after the mode finished or aborted.
  - Recorded stats MUST NOT influence control flow.
*/
func (r *Recorder) RecordFinalRunStats(mode string, totalRows int, skipped int, duration time.Duration) {
	stats := runStats{
		mode:       mode,
		totalRows:  totalRows,
		skipped:    skipped,
		durationMs: duration.Milliseconds(),
	}
	r.append(stats)
}

func (r *Recorder) append(stats runStats) {
	r.logger.Info().
		Str("mode", stats.mode).
		Int("rows", stats.totalRows).
		Int("skipped", stats.skipped).
		Int64("duration_ms", stats.durationMs).
		Msg("scraper finished")
}

func withAttrs(ev *zerolog.Event, attrs []Attribute) *zerolog.Event {
	for _, a := range attrs {
		ev = ev.Str(string(a.Key), a.Value)
	}
	return ev
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordFetch(event FetchEvent)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
	RecordSkip(mode string, itemURL string, reason string)
	RecordStatusMismatch(pageURL string, observed string, expected []string)
	RecordProgress(mode string, done int, total int)
}

type RunFinalizer interface {
	RecordRunStart(mode string, args map[string]string)
	RecordFailure(mode string, kind string, err error, attrs []Attribute)
	RecordFinalRunStats(mode string, totalRows int, skipped int, duration time.Duration)
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing
// Scheduler (or Test) can decide whether to inject Recorder or NoopSink
// Purpose is to make metadata orthogonal
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordFetch(event FetchEvent) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordSkip(mode string, itemURL string, reason string) {}

func (n *NoopSink) RecordStatusMismatch(pageURL string, observed string, expected []string) {}

func (n *NoopSink) RecordProgress(mode string, done int, total int) {}

func (n *NoopSink) RecordRunStart(mode string, args map[string]string) {}

func (n *NoopSink) RecordFailure(mode string, kind string, err error, attrs []Attribute) {}

func (n *NoopSink) RecordFinalRunStats(mode string, totalRows int, skipped int, duration time.Duration) {}
