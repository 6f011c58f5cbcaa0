package scheduler

import (
	"context"

	"github.com/rohmanhakim/pydocs-scraper/internal/extractor"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
)

func (s *Scheduler) latestVersions(ctx context.Context) (Execution, error) {
	doc, err := s.pageFetcher.Fetch(ctx, s.cfg.MainDocURL())
	if err != nil {
		return Execution{}, err
	}
	links, err := s.extractor.SidebarVersionLinks(doc)
	if err != nil {
		return Execution{}, err
	}

	table := report.NewTable("Link", "Version", "Status")
	for _, link := range links {
		version := extractor.ParseVersionLabel(link)
		table.Append(version.Link, version.Version, version.Status)
	}
	return Execution{Table: table}, nil
}
