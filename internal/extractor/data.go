package extractor

import "net/url"

// VersionPage is the header block of one "What's New" article.
type VersionPage struct {
	Title             string
	EditorsAndAuthors string
}

// VersionLink is one anchor of the sidebar version list, href kept raw.
type VersionLink struct {
	Link  string
	Label string
}

// VersionStatus is a VersionLink with its label split into version and
// release status. Status is empty when the label did not match.
type VersionStatus struct {
	Link    string
	Version string
	Status  string
}

// PEPEntry pairs the status code shown in the index table with the
// proposal page it links to.
type PEPEntry struct {
	StatusCode string
	URL        url.URL
}

// ExpectedStatus lists the full status names a proposal page may show for
// each status code of the index table.
//
//nolint:gochecknoglobals // This is a static lookup table that must be global
var ExpectedStatus = map[string][]string{
	"A": {"Active", "Accepted"},
	"D": {"Deferred"},
	"F": {"Final"},
	"P": {"Provisional"},
	"R": {"Rejected"},
	"S": {"Superseded"},
	"W": {"Withdrawn"},
	"":  {"Draft", "Active"},
}

// CheckStatus reports whether status is allowed for code, along with the
// allowed set. Unknown codes allow nothing.
func CheckStatus(code, status string) (bool, []string) {
	expected := ExpectedStatus[code]
	for _, s := range expected {
		if s == status {
			return true, expected
		}
	}
	return false, expected
}
