package cmd

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rohmanhakim/pydocs-scraper/internal/cache"
	"github.com/rohmanhakim/pydocs-scraper/internal/config"
	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
	"github.com/rohmanhakim/pydocs-scraper/internal/scheduler"
	"github.com/rohmanhakim/pydocs-scraper/pkg/limiter"
)

// kindInfrastructure tags failures outside the scraping pipeline, e.g. an
// unusable cache or downloads directory.
const kindInfrastructure = "InfrastructureFailure"

type RunOptions struct {
	ClearCache bool
	Output     report.OutputKind
	Stdout     io.Writer
	Stderr     io.Writer
	// Args are logged at start, keyed by argument name.
	Args map[string]string
}

/*
Run executes one mode end to end.

  - Logging and the response cache are set up before the first fetch
  - A cache clear completes before the first fetch
  - Scraping failures (empty response, missing tag or data, transport) are
    logged and yield no output, but Run still returns nil
  - Infrastructure failures are logged and returned
*/
func Run(ctx context.Context, cfg config.Config, mode scheduler.Mode, opts RunOptions) error {
	logger, logCloser, err := NewLogger(cfg.LogsPath(), cfg.Verbose(), opts.Stderr)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	recorder := metadata.NewRecorder(logger, uuid.NewString())
	recorder.RecordRunStart(string(mode), opts.Args)

	fail := func(err error) error {
		attrs := scheduler.FailureAttrs(err)
		if kind, ok := scheduler.ModeFailureKind(err); ok {
			recorder.RecordFailure(string(mode), kind, err, attrs)
			return nil
		}
		recorder.RecordFailure(string(mode), kindInfrastructure, err, attrs)
		return err
	}

	responseCache, err := cache.OpenSQLiteCache(ctx, cfg.CacheDir(), recorder)
	if err != nil {
		return fail(err)
	}
	defer responseCache.Close()

	if opts.ClearCache {
		if err := responseCache.Clear(); err != nil {
			return fail(err)
		}
	}

	rateLimiter := limiter.NewHostRateLimiter()
	rateLimiter.SetBaseDelay(cfg.BaseDelay())
	rateLimiter.SetJitter(cfg.Jitter())
	rateLimiter.SetRandomSeed(cfg.RandomSeed())

	client, err := fetcher.NewClient(
		recorder,
		&http.Client{Timeout: cfg.Timeout()},
		responseCache,
		rateLimiter,
		cfg.UserAgent(),
		cfg.Encoding(),
	)
	if err != nil {
		return fail(err)
	}

	s := scheduler.NewScheduler(cfg, recorder, client)
	execution, err := s.Execute(ctx, mode)
	if err != nil {
		return fail(err)
	}

	if execution.Table == nil {
		return nil
	}
	writer := report.NewWriter(opts.Output, opts.Stdout, recorder, cfg.ResultsPath())
	if _, err := report.Emit(writer, string(mode), execution.Table); err != nil {
		return fail(err)
	}
	return nil
}
