package fetcher_test

import (
	"sync"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
)

// recordingSink is a test double for metadata.MetadataSink
type recordingSink struct {
	metadata.NoopSink
	mu          sync.Mutex
	fetchEvents []metadata.FetchEvent
	errorEvents []errorEvent
}

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

func (s *recordingSink) RecordFetch(event metadata.FetchEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchEvents = append(s.fetchEvents, event)
}

func (s *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorEvents = append(s.errorEvents, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}
