package scheduler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/cache"
	"github.com/rohmanhakim/pydocs-scraper/internal/config"
	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/internal/scheduler"
	"github.com/stretchr/testify/require"
)

// recordingSink captures everything the scheduler and its stages emit.
type recordingSink struct {
	metadata.NoopSink
	mu         sync.Mutex
	skips      []skipEvent
	mismatches []mismatchEvent
	progress   []int
	artifacts  []string
	finalStats *finalStats
}

type skipEvent struct {
	mode   string
	url    string
	reason string
}

type mismatchEvent struct {
	url      string
	observed string
	expected []string
}

type finalStats struct {
	mode     string
	rows     int
	skipped  int
	duration time.Duration
}

func (s *recordingSink) RecordSkip(mode string, itemURL string, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips = append(s.skips, skipEvent{mode: mode, url: itemURL, reason: reason})
}

func (s *recordingSink) RecordStatusMismatch(pageURL string, observed string, expected []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mismatches = append(s.mismatches, mismatchEvent{url: pageURL, observed: observed, expected: expected})
}

func (s *recordingSink) RecordProgress(mode string, done int, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, done)
}

func (s *recordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, path)
}

func (s *recordingSink) RecordFinalRunStats(mode string, totalRows int, skipped int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalStats = &finalStats{mode: mode, rows: totalRows, skipped: skipped, duration: duration}
}

// fakeSite serves fixed pages by path and counts every request.
type fakeSite struct {
	server *httptest.Server
	pages  map[string]page
	hits   map[string]*int32
}

type page struct {
	status int
	body   string
}

func newFakeSite(t *testing.T, pages map[string]page) *fakeSite {
	t.Helper()
	site := &fakeSite{
		pages: pages,
		hits:  make(map[string]*int32),
	}
	for path := range pages {
		site.hits[path] = new(int32)
	}
	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := site.pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(site.hits[r.URL.Path], 1)
		status := p.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		w.Write([]byte(p.body))
	}))
	t.Cleanup(site.server.Close)
	return site
}

func (f *fakeSite) url(t *testing.T, path string) url.URL {
	t.Helper()
	u, err := url.Parse(f.server.URL + path)
	require.NoError(t, err)
	return *u
}

func (f *fakeSite) hitCount(path string) int32 {
	counter, ok := f.hits[path]
	if !ok {
		return 0
	}
	return atomic.LoadInt32(counter)
}

// newSchedulerForTest points the scheduler at the fake site, with the
// documentation root at /3/ and the proposal index at /peps/.
func newSchedulerForTest(t *testing.T, site *fakeSite, sink *recordingSink) (*scheduler.Scheduler, config.Config) {
	t.Helper()
	cfg, err := config.WithDefault().
		WithMainDocURL(site.url(t, "/3/")).
		WithPEPsURL(site.url(t, "/peps/")).
		WithBaseDir(t.TempDir()).
		WithCacheDir(t.TempDir()).
		Build()
	require.NoError(t, err)

	client, err := fetcher.NewClient(sink, &http.Client{Timeout: 5 * time.Second}, cache.NewMemoryCache(), nil, "pydocs-scraper-test", cfg.Encoding())
	require.NoError(t, err)

	s := scheduler.NewSchedulerWithDeps(cfg, sink, sink, client, nil)
	return &s, cfg
}
