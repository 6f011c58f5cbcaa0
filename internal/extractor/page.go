package extractor

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rohmanhakim/pydocs-scraper/internal/fetcher"
	"github.com/rohmanhakim/pydocs-scraper/internal/locator"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
	"github.com/rohmanhakim/pydocs-scraper/pkg/urlutil"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Turn one parsed page into typed records
- Compose Tag Locator calls per page type
- Resolve relative links against the page URL

Each routine depends on the markup of one specific page of the
documentation or proposal site. Missing structure fails explicitly with
*locator.LocateError or *ExtractionError; nothing is guessed.
*/

var (
	versionLabelPattern = regexp.MustCompile(`Python (?P<version>\d+\.\d+) \((?P<status>.*)\)`)
	archiveHrefPattern  = regexp.MustCompile(`.+pdf-a4\.zip$`)
	statusTitlePattern  = regexp.MustCompile(`\w+`)
)

const allVersionsMarker = "All versions"

type PageExtractor struct {
	metadataSink metadata.MetadataSink
}

func NewPageExtractor(metadataSink metadata.MetadataSink) PageExtractor {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return PageExtractor{
		metadataSink: metadataSink,
	}
}

// WhatsNewLinks returns the absolute URL of every top-level entry of the
// "What's New" table of contents, in page order.
func (p *PageExtractor) WhatsNewLinks(doc fetcher.Document) ([]url.URL, failure.ClassifiedError) {
	links, err := whatsNewLinks(doc)
	if err != nil {
		return nil, p.record("PageExtractor.WhatsNewLinks", doc, err)
	}
	return links, nil
}

func whatsNewLinks(doc fetcher.Document) ([]url.URL, failure.ClassifiedError) {
	wrapper, err := locate(doc.Root(), "div", locator.HasClass("toctree-wrapper"))
	if err != nil {
		return nil, err
	}

	base := doc.URL()
	var links []url.URL
	for _, item := range locator.FindAll(wrapper, "li", locator.HasClass("toctree-l1")) {
		anchor, err := locate(item, "a")
		if err != nil {
			return nil, err
		}
		href, _ := locator.Attr(anchor, "href")
		link, resolveErr := urlutil.Resolve(base, href)
		if resolveErr != nil {
			return nil, &ExtractionError{
				Message:   resolveErr.Error(),
				Retryable: false,
				Cause:     ErrCauseInvalidLink,
			}
		}
		links = append(links, link)
	}
	return links, nil
}

// VersionPage reads the first h1 and the first dl of an article.
// Newlines in the dl text become single spaces.
func (p *PageExtractor) VersionPage(doc fetcher.Document) (VersionPage, failure.ClassifiedError) {
	h1, err := locate(doc.Root(), "h1")
	if err != nil {
		return VersionPage{}, p.record("PageExtractor.VersionPage", doc, err)
	}
	dl, err := locate(doc.Root(), "dl")
	if err != nil {
		return VersionPage{}, p.record("PageExtractor.VersionPage", doc, err)
	}
	return VersionPage{
		Title:             locator.Text(h1),
		EditorsAndAuthors: strings.ReplaceAll(locator.Text(dl), "\n", " "),
	}, nil
}

// SidebarVersionLinks returns the anchors of the first sidebar list whose
// text mentions "All versions".
func (p *PageExtractor) SidebarVersionLinks(doc fetcher.Document) ([]VersionLink, failure.ClassifiedError) {
	sidebar, err := locate(doc.Root(), "div", locator.HasClass("sphinxsidebarwrapper"))
	if err != nil {
		return nil, p.record("PageExtractor.SidebarVersionLinks", doc, err)
	}

	for _, list := range locator.FindAll(sidebar, "ul") {
		if !strings.Contains(locator.Text(list), allVersionsMarker) {
			continue
		}
		var links []VersionLink
		for _, anchor := range locator.FindAll(list, "a") {
			href, _ := locator.Attr(anchor, "href")
			links = append(links, VersionLink{
				Link:  href,
				Label: locator.Text(anchor),
			})
		}
		return links, nil
	}

	return nil, p.record("PageExtractor.SidebarVersionLinks", doc, &ExtractionError{
		Message:   "version list with \"All versions\" marker not found",
		Retryable: false,
		Cause:     ErrCauseDataDoesNotExist,
	})
}

// ParseVersionLabel splits a label like "Python 3.13 (stable)" into version
// and status. A label that does not match is kept whole as the version.
func ParseVersionLabel(link VersionLink) VersionStatus {
	m := versionLabelPattern.FindStringSubmatch(link.Label)
	if m == nil {
		return VersionStatus{Link: link.Link, Version: link.Label}
	}
	return VersionStatus{
		Link:    link.Link,
		Version: m[versionLabelPattern.SubexpIndex("version")],
		Status:  m[versionLabelPattern.SubexpIndex("status")],
	}
}

// DownloadLink returns the absolute URL of the A4 PDF documentation archive.
func (p *PageExtractor) DownloadLink(doc fetcher.Document) (url.URL, failure.ClassifiedError) {
	anchor, err := locate(doc.Root(), "a", locator.AttrMatches("href", archiveHrefPattern))
	if err != nil {
		return url.URL{}, p.record("PageExtractor.DownloadLink", doc, err)
	}
	href, _ := locator.Attr(anchor, "href")
	link, resolveErr := urlutil.Resolve(doc.URL(), href)
	if resolveErr != nil {
		return url.URL{}, p.record("PageExtractor.DownloadLink", doc, &ExtractionError{
			Message:   resolveErr.Error(),
			Retryable: false,
			Cause:     ErrCauseInvalidLink,
		})
	}
	return link, nil
}

// PEPIndex walks every table of the "index by category" section and pairs
// the status codes of a table with its numeric proposal links by position.
// Pairing stops at the shorter of the two lists of each table.
func (p *PageExtractor) PEPIndex(doc fetcher.Document) ([]PEPEntry, failure.ClassifiedError) {
	section, err := locate(doc.Root(), "section", locator.AttrEquals("id", "index-by-category"))
	if err != nil {
		return nil, p.record("PageExtractor.PEPIndex", doc, err)
	}

	base := doc.URL()
	var entries []PEPEntry
	for _, body := range locator.FindAll(section, "tbody") {
		codes := statusCodes(body)
		anchors := numericProposalAnchors(body)

		n := min(len(codes), len(anchors))
		for i := 0; i < n; i++ {
			href, _ := locator.Attr(anchors[i], "href")
			link, resolveErr := urlutil.Resolve(base, href)
			if resolveErr != nil {
				return nil, p.record("PageExtractor.PEPIndex", doc, &ExtractionError{
					Message:   resolveErr.Error(),
					Retryable: false,
					Cause:     ErrCauseInvalidLink,
				})
			}
			entries = append(entries, PEPEntry{
				StatusCode: codes[i],
				URL:        link,
			})
		}
	}
	return entries, nil
}

// PEPStatus returns the text of the first abbr carrying a non-empty title.
func (p *PageExtractor) PEPStatus(doc fetcher.Document) (string, failure.ClassifiedError) {
	abbr, err := locate(doc.Root(), "abbr", locator.AttrMatches("title", statusTitlePattern))
	if err != nil {
		return "", p.record("PageExtractor.PEPStatus", doc, err)
	}
	return locator.Text(abbr), nil
}

// statusCodes drops the leading proposal type letter of each abbr.
func statusCodes(body *html.Node) []string {
	abbrs := locator.FindAll(body, "abbr")
	codes := make([]string, 0, len(abbrs))
	for _, abbr := range abbrs {
		text := []rune(locator.Text(abbr))
		if len(text) == 0 {
			codes = append(codes, "")
			continue
		}
		codes = append(codes, string(text[1:]))
	}
	return codes
}

func numericProposalAnchors(body *html.Node) []*html.Node {
	var out []*html.Node
	for _, a := range locator.FindAll(body, "a", locator.HasClass("pep", "reference", "internal")) {
		if isDigits(locator.Text(a)) {
			out = append(out, a)
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// locate adapts locator.Locate to the classified error boundary.
func locate(node *html.Node, tag string, predicates ...locator.Predicate) (*html.Node, failure.ClassifiedError) {
	n, err := locator.Locate(node, tag, predicates...)
	if err != nil {
		return nil, err.(*locator.LocateError)
	}
	return n, nil
}

func (p *PageExtractor) record(action string, doc fetcher.Document, err failure.ClassifiedError) failure.ClassifiedError {
	sourceUrl := doc.URL()
	p.metadataSink.RecordError(
		time.Now(),
		"extractor",
		action,
		mapExtractionErrorToMetadataCause(err),
		err.Error(),
		append(
			[]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, sourceUrl.String())},
			LocateAttrs(err)...,
		),
	)
	return err
}

// LocateAttrs returns the tag and predicate of a failed locate query found
// in err's chain, or nil.
func LocateAttrs(err error) []metadata.Attribute {
	var locateErr *locator.LocateError
	if !errors.As(err, &locateErr) {
		return nil
	}
	attrs := []metadata.Attribute{metadata.NewAttr(metadata.AttrTag, locateErr.Tag)}
	if locateErr.Predicate != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrPredicate, locateErr.Predicate))
	}
	return attrs
}
