package scheduler

import (
	"context"
	"slices"
	"strconv"

	"github.com/rohmanhakim/pydocs-scraper/internal/extractor"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
)

const totalLabel = "Total"

// pep counts proposals by the status shown on each proposal page. The
// status code of the index table is only used to flag inconsistencies.
func (s *Scheduler) pep(ctx context.Context) (Execution, error) {
	indexDoc, err := s.pageFetcher.Fetch(ctx, s.cfg.PEPsURL())
	if err != nil {
		return Execution{}, err
	}
	entries, err := s.extractor.PEPIndex(indexDoc)
	if err != nil {
		return Execution{}, err
	}

	var (
		execution Execution
		census    statusCensus
	)
	for i, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return execution, ctxErr
		}

		pageURL := entry.URL.String()
		status, err := s.pepStatus(ctx, entry)
		switch itemOutcome(err) {
		case OutcomeSkip:
			execution.Skipped++
			s.skip(ModePEP, pageURL, err)
		case OutcomeFatal:
			return execution, err
		default:
			if ok, expected := extractor.CheckStatus(entry.StatusCode, status); !ok {
				s.metadataSink.RecordStatusMismatch(pageURL, status, expected)
			}
			census.add(status)
		}
		s.metadataSink.RecordProgress(string(ModePEP), i+1, len(entries))
	}

	execution.Table = census.table()
	return execution, nil
}

func (s *Scheduler) pepStatus(ctx context.Context, entry extractor.PEPEntry) (string, failure.ClassifiedError) {
	doc, err := s.pageFetcher.Fetch(ctx, entry.URL)
	if err != nil {
		return "", err
	}
	return s.extractor.PEPStatus(doc)
}

type statusCount struct {
	status string
	count  int
}

// statusCensus counts statuses, remembering the order each was first seen.
type statusCensus struct {
	counts []statusCount
	index  map[string]int
}

func (c *statusCensus) add(status string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[status]
	if !ok {
		c.index[status] = len(c.counts)
		c.counts = append(c.counts, statusCount{status: status})
		i = len(c.counts) - 1
	}
	c.counts[i].count++
}

func (c *statusCensus) total() int {
	sum := 0
	for _, sc := range c.counts {
		sum += sc.count
	}
	return sum
}

// table orders rows by ascending count, ties in first-seen order, and
// closes with the total. An empty census yields a header-only table.
func (c *statusCensus) table() *report.Table {
	table := report.NewTable("Status", "Count")
	if len(c.counts) == 0 {
		return table
	}

	rows := slices.Clone(c.counts)
	slices.SortStableFunc(rows, func(a, b statusCount) int {
		return a.count - b.count
	})
	for _, row := range rows {
		table.Append(row.status, strconv.Itoa(row.count))
	}
	table.Append(totalLabel, strconv.Itoa(c.total()))
	return table
}
