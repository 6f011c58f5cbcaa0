package scheduler

import (
	"context"

	"github.com/rohmanhakim/pydocs-scraper/internal/storage"
	"github.com/rohmanhakim/pydocs-scraper/pkg/hashutil"
	"github.com/rohmanhakim/pydocs-scraper/pkg/urlutil"
)

const downloadPagePath = "download.html"

// download saves the A4 PDF documentation archive under the downloads
// directory. A rerun overwrites the previous file.
func (s *Scheduler) download(ctx context.Context) (Execution, error) {
	downloadsURL, resolveErr := urlutil.Resolve(s.cfg.MainDocURL(), downloadPagePath)
	if resolveErr != nil {
		return Execution{}, resolveErr
	}

	doc, err := s.pageFetcher.Fetch(ctx, downloadsURL)
	if err != nil {
		return Execution{}, err
	}
	archiveURL, err := s.extractor.DownloadLink(doc)
	if err != nil {
		return Execution{}, err
	}

	resp, err := s.pageFetcher.Download(ctx, archiveURL)
	if err != nil {
		return Execution{}, err
	}

	archive := storage.NewArchive(archiveURL, urlutil.LastSegment(archiveURL), resp.Body())
	writeResult, err := s.storageSink.Write(s.cfg.DownloadsPath(), archive, hashutil.HashAlgoBLAKE3)
	if err != nil {
		return Execution{}, err
	}
	return Execution{ArchivePath: writeResult.Path()}, nil
}
