package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/config"
	"github.com/rohmanhakim/pydocs-scraper/internal/extractor"
	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/internal/storage"
)

/*
 Scheduler is the sole control-plane authority of a scraping run.

 A run executes exactly one mode. Every mode is a straight-line routine:
 fetch a fixed entry page, extract its records, optionally fetch each
 linked page in document order, and fold what was extracted into one
 result table.

 Failure policy:
 - Pipeline stages (fetcher, extractor, storage) detect and classify
   failures but never decide whether the run continues.
 - Per linked page, the scheduler maps a failure to an Outcome. Only an
   empty response is skipped; everything else is fatal to the mode.
 - A failure on an entry page is always fatal to the mode.
 - No retries. The response cache is the only resilience mechanism.

 Fetches are strictly sequential. Metadata emission is observational only
 and MUST NOT influence control flow.
*/

type Scheduler struct {
	cfg          config.Config
	metadataSink metadata.MetadataSink
	runFinalizer metadata.RunFinalizer
	pageFetcher  fetcher.Fetcher
	extractor    extractor.PageExtractor
	storageSink  storage.Sink
	now          func() time.Time
}

// NewScheduler wires the default pipeline stages around one recorder.
func NewScheduler(
	cfg config.Config,
	recorder *metadata.Recorder,
	pageFetcher fetcher.Fetcher,
) Scheduler {
	pageExtractor := extractor.NewPageExtractor(recorder)
	storageSink := storage.NewLocalSink(recorder)
	return Scheduler{
		cfg:          cfg,
		metadataSink: recorder,
		runFinalizer: recorder,
		pageFetcher:  pageFetcher,
		extractor:    pageExtractor,
		storageSink:  &storageSink,
		now:          time.Now,
	}
}

// NewSchedulerWithDeps creates a Scheduler with injected dependencies for testing.
// This constructor allows tests to provide mock implementations of metadata interfaces
// and the storage sink to verify behavior without relying on real infrastructure.
func NewSchedulerWithDeps(
	cfg config.Config,
	runFinalizer metadata.RunFinalizer,
	metadataSink metadata.MetadataSink,
	pageFetcher fetcher.Fetcher,
	storageSink storage.Sink,
) Scheduler {
	if storageSink == nil {
		localSink := storage.NewLocalSink(metadataSink)
		storageSink = &localSink
	}
	return Scheduler{
		cfg:          cfg,
		metadataSink: metadataSink,
		runFinalizer: runFinalizer,
		pageFetcher:  pageFetcher,
		extractor:    extractor.NewPageExtractor(metadataSink),
		storageSink:  storageSink,
		now:          time.Now,
	}
}

// Execute runs one mode to completion. The returned error is either a
// classified pipeline failure (see ModeFailureKind), a context error, or
// ErrUnknownMode.
func (s *Scheduler) Execute(ctx context.Context, mode Mode) (execution Execution, err error) {
	startTime := s.now()

	// Ensure final stats are recorded even if the mode fails
	defer func() {
		rows := 0
		if execution.Table != nil {
			rows = len(execution.Table.Rows())
		}
		s.runFinalizer.RecordFinalRunStats(string(mode), rows, execution.Skipped, s.now().Sub(startTime))
	}()

	switch mode {
	case ModeWhatsNew:
		return s.whatsNew(ctx)
	case ModeLatestVersions:
		return s.latestVersions(ctx)
	case ModeDownload:
		return s.download(ctx)
	case ModePEP:
		return s.pep(ctx)
	default:
		return Execution{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// SetClock replaces the clock used for run duration. Test helper.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// skip records a skipped item. reason is the failure that caused it.
func (s *Scheduler) skip(mode Mode, itemURL string, reason error) {
	s.metadataSink.RecordSkip(string(mode), itemURL, reason.Error())
}
