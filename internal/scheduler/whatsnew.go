package scheduler

import (
	"context"
	"net/url"

	"github.com/rohmanhakim/pydocs-scraper/internal/extractor"
	"github.com/rohmanhakim/pydocs-scraper/internal/report"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
	"github.com/rohmanhakim/pydocs-scraper/pkg/urlutil"
)

const whatsNewPath = "whatsnew/"

func (s *Scheduler) whatsNew(ctx context.Context) (Execution, error) {
	indexURL, resolveErr := urlutil.Resolve(s.cfg.MainDocURL(), whatsNewPath)
	if resolveErr != nil {
		return Execution{}, resolveErr
	}

	indexDoc, err := s.pageFetcher.Fetch(ctx, indexURL)
	if err != nil {
		return Execution{}, err
	}
	links, err := s.extractor.WhatsNewLinks(indexDoc)
	if err != nil {
		return Execution{}, err
	}

	execution := Execution{
		Table: report.NewTable("Link", "Title", "Editor, Author"),
	}
	for i, link := range links {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return execution, ctxErr
		}

		page, err := s.versionPage(ctx, link)
		switch itemOutcome(err) {
		case OutcomeSkip:
			execution.Skipped++
			s.skip(ModeWhatsNew, link.String(), err)
		case OutcomeFatal:
			return execution, err
		default:
			execution.Table.Append(link.String(), page.Title, page.EditorsAndAuthors)
		}
		s.metadataSink.RecordProgress(string(ModeWhatsNew), i+1, len(links))
	}
	return execution, nil
}

func (s *Scheduler) versionPage(ctx context.Context, link url.URL) (extractor.VersionPage, failure.ClassifiedError) {
	doc, err := s.pageFetcher.Fetch(ctx, link)
	if err != nil {
		return extractor.VersionPage{}, err
	}
	return s.extractor.VersionPage(doc)
}
