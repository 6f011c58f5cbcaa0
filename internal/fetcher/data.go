package fetcher

import (
	"net/url"

	"golang.org/x/net/html"
)

// HTTP boundary

// Response is one GET result. Body holds the raw bytes; Text is the body
// decoded with the client's fixed charset.
type Response struct {
	url        url.URL
	statusCode int
	headers    map[string]string
	body       []byte
	text       string
	fromCache  bool
}

func (r *Response) URL() url.URL {
	return r.url
}

func (r *Response) Code() int {
	return r.statusCode
}

func (r *Response) Headers() map[string]string {
	return r.headers
}

func (r *Response) Body() []byte {
	return r.body
}

func (r *Response) Text() string {
	return r.text
}

func (r *Response) FromCache() bool {
	return r.fromCache
}

// Document is a parsed page together with the URL it was fetched from.
type Document struct {
	url  url.URL
	root *html.Node
}

func (d *Document) URL() url.URL {
	return d.url
}

func (d *Document) Root() *html.Node {
	return d.root
}

// NewResponseForTest creates a Response for testing purposes.
func NewResponseForTest(
	u url.URL,
	statusCode int,
	body []byte,
	headers map[string]string,
) Response {
	return Response{
		url:        u,
		statusCode: statusCode,
		headers:    headers,
		body:       body,
		text:       string(body),
	}
}

// NewDocumentForTest creates a Document for testing purposes.
func NewDocumentForTest(u url.URL, root *html.Node) Document {
	return Document{url: u, root: root}
}
