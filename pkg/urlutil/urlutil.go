package urlutil

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Canonicalize maps equivalent spellings of a request URL to one form so it
// can be used as a cache key.
//
//   - Scheme and host are lowercased
//   - Default ports are omitted (:80 for http, :443 for https)
//   - Fragments are removed, they never reach the server
//   - Path and query are kept as-is since they select the response
func Canonicalize(sourceUrl url.URL) url.URL {
	canonical := sourceUrl

	canonical.Scheme = strings.ToLower(canonical.Scheme)
	canonical.Host = strings.ToLower(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			if strings.Contains(host, ":") {
				host = "[" + host + "]"
			}
			canonical.Host = host
		}
	}

	if canonical.Path == "" {
		canonical.Path = "/"
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""

	return canonical
}

// Resolve resolves href against base the way a browser resolves a link
// found on the base page.
func Resolve(base url.URL, href string) (url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return url.URL{}, fmt.Errorf("error parsing href %q: %w", href, err)
	}
	return *base.ResolveReference(ref), nil
}

// LastSegment returns the final path segment of u, e.g. the file name of a
// download link. It returns an empty string for a root or empty path.
func LastSegment(u url.URL) string {
	if u.Path == "" || strings.HasSuffix(u.Path, "/") {
		return ""
	}
	return path.Base(u.Path)
}
