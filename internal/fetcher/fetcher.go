package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/cache"
	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	"github.com/rohmanhakim/pydocs-scraper/pkg/failure"
	"github.com/rohmanhakim/pydocs-scraper/pkg/hashutil"
	"github.com/rohmanhakim/pydocs-scraper/pkg/limiter"
	"github.com/rohmanhakim/pydocs-scraper/pkg/urlutil"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

/*
Responsibilities

- Perform HTTP GET requests through the response cache
- Decode every body with one fixed charset
- Classify transport failures and empty responses

Fetch Semantics

- A cache hit never touches the network
- Only 2xx responses are stored
- Network requests to the same host are spaced by the rate limiter
- The transport's own error types never leave this package
*/

type Fetcher interface {
	GetResponse(ctx context.Context, fetchUrl url.URL) (Response, failure.ClassifiedError)
	Fetch(ctx context.Context, fetchUrl url.URL) (Document, failure.ClassifiedError)
	Download(ctx context.Context, fetchUrl url.URL) (Response, failure.ClassifiedError)
}

type Client struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	cache        cache.Cache
	rateLimiter  limiter.RateLimiter
	userAgent    string
	encoding     encoding.Encoding
}

// NewClient builds a fetch client. encodingName is any WHATWG encoding
// label (utf-8, windows-1252, ...); it overrides the server charset.
func NewClient(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	responseCache cache.Cache,
	rateLimiter limiter.RateLimiter,
	userAgent string,
	encodingName string,
) (*Client, error) {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	enc, err := htmlindex.Get(encodingName)
	if err != nil {
		err = fmt.Errorf("unknown text encoding %q: %w", encodingName, err)
		metadataSink.RecordError(
			time.Now(),
			"fetcher",
			"NewClient",
			metadata.CauseConfigInvalid,
			err.Error(),
			nil,
		)
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if rateLimiter == nil {
		rateLimiter = limiter.NewHostRateLimiter()
	}
	return &Client{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		cache:        responseCache,
		rateLimiter:  rateLimiter,
		userAgent:    userAgent,
		encoding:     enc,
	}, nil
}

// Fetch gets fetchUrl and parses it into a Document.
func (c *Client) Fetch(ctx context.Context, fetchUrl url.URL) (Document, failure.ClassifiedError) {
	resp, err := c.GetResponse(ctx, fetchUrl)
	if err != nil {
		return Document{}, err
	}
	return c.ParseDocument(resp)
}

// Download gets fetchUrl for its raw bytes. An HTTP error status or a
// zero-length body is reported as an empty response.
func (c *Client) Download(ctx context.Context, fetchUrl url.URL) (Response, failure.ClassifiedError) {
	callerMethod := "Client.Download"
	resp, err := c.GetResponse(ctx, fetchUrl)
	if err != nil {
		return Response{}, err
	}
	if resp.Code() >= 400 {
		return Response{}, c.fail(callerMethod, fetchUrl, ErrCauseEmptyResponse,
			fmt.Errorf("http status %d", resp.Code()), statusAttr(resp.Code()))
	}
	if len(resp.Body()) == 0 {
		return Response{}, c.fail(callerMethod, fetchUrl, ErrCauseEmptyResponse,
			errors.New("zero-length body"))
	}
	return resp, nil
}

// GetResponse performs a GET through the cache.
func (c *Client) GetResponse(ctx context.Context, fetchUrl url.URL) (Response, failure.ClassifiedError) {
	callerMethod := "Client.GetResponse"
	startTime := time.Now()

	key, hashErr := CacheKey(fetchUrl)
	if hashErr != nil {
		return Response{}, c.fail(callerMethod, fetchUrl, ErrCauseCacheFailure, hashErr)
	}

	if c.cache != nil {
		cached, found, err := c.cache.Get(key)
		if err != nil {
			return Response{}, classify(err)
		}
		if found {
			resp := c.fromCached(fetchUrl, cached)
			c.metadataSink.RecordFetch(metadata.FetchEvent{
				FetchURL:   fetchUrl.String(),
				HTTPStatus: resp.statusCode,
				Duration:   time.Since(startTime),
				FromCache:  true,
			})
			return resp, nil
		}
	}

	resp, err := c.performFetch(ctx, fetchUrl)
	if err != nil {
		c.metadataSink.RecordFetch(metadata.FetchEvent{
			FetchURL: fetchUrl.String(),
			Duration: time.Since(startTime),
		})
		return Response{}, c.fail(callerMethod, fetchUrl, ErrCauseTransport, err)
	}

	c.metadataSink.RecordFetch(metadata.FetchEvent{
		FetchURL:   fetchUrl.String(),
		HTTPStatus: resp.statusCode,
		Duration:   time.Since(startTime),
	})

	if c.cache != nil && resp.statusCode >= 200 && resp.statusCode < 300 {
		putErr := c.cache.Put(key, cache.CachedResponse{
			URL:        fetchUrl.String(),
			StatusCode: resp.statusCode,
			Headers:    resp.headers,
			Body:       resp.body,
			FetchedAt:  time.Now().UTC(),
		})
		if putErr != nil {
			return Response{}, classify(putErr)
		}
	}

	return resp, nil
}

// ParseDocument turns a response into a Document. A whitespace-only body or
// an HTTP error status is reported as an empty response.
func (c *Client) ParseDocument(resp Response) (Document, failure.ClassifiedError) {
	callerMethod := "Client.ParseDocument"
	fetchUrl := resp.URL()

	if resp.Code() >= 400 {
		return Document{}, c.fail(callerMethod, fetchUrl, ErrCauseEmptyResponse,
			fmt.Errorf("http status %d", resp.Code()), statusAttr(resp.Code()))
	}
	if strings.TrimSpace(resp.Text()) == "" {
		return Document{}, c.fail(callerMethod, fetchUrl, ErrCauseEmptyResponse,
			errors.New("blank body"))
	}

	root, err := html.Parse(strings.NewReader(resp.Text()))
	if err != nil {
		return Document{}, c.fail(callerMethod, fetchUrl, ErrCauseParseFailure, err)
	}
	return Document{url: fetchUrl, root: root}, nil
}

// CacheKey is the blake3 digest of the canonical form of fetchUrl.
func CacheKey(fetchUrl url.URL) (string, error) {
	canonical := urlutil.Canonicalize(fetchUrl)
	return hashutil.HashString(canonical.String(), hashutil.HashAlgoBLAKE3)
}

func (c *Client) performFetch(ctx context.Context, fetchUrl url.URL) (Response, error) {
	host := fetchUrl.Hostname()
	if err := c.rateLimiter.Wait(ctx, host); err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return Response{}, err
	}
	for key, value := range requestHeaders(c.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	c.rateLimiter.MarkLastFetchAsNow(host)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response body: %w", err)
	}

	responseHeaders := make(map[string]string)
	for key, values := range resp.Header {
		if len(values) > 0 {
			responseHeaders[key] = values[0]
		}
	}

	return Response{
		url:        fetchUrl,
		statusCode: resp.StatusCode,
		headers:    responseHeaders,
		body:       body,
		text:       c.decode(body),
	}, nil
}

func (c *Client) fromCached(fetchUrl url.URL, cached cache.CachedResponse) Response {
	return Response{
		url:        fetchUrl,
		statusCode: cached.StatusCode,
		headers:    cached.Headers,
		body:       cached.Body,
		text:       c.decode(cached.Body),
		fromCache:  true,
	}
}

// decode ignores the server-declared charset. Undecodable bytes become
// replacement characters, so decoding itself never fails the fetch.
func (c *Client) decode(body []byte) string {
	decoded, err := c.encoding.NewDecoder().Bytes(body)
	if err != nil {
		return string(bytes.ToValidUTF8(body, []byte("�")))
	}
	return string(decoded)
}

func (c *Client) fail(callerMethod string, fetchUrl url.URL, cause FetchErrorCause, err error, attrs ...metadata.Attribute) *FetchError {
	fetchErr := &FetchError{
		Message:   err.Error(),
		Retryable: cause == ErrCauseEmptyResponse,
		Cause:     cause,
		URL:       fetchUrl.String(),
	}
	c.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(fetchErr),
		fetchErr.Message,
		append([]metadata.Attribute{metadata.NewAttr(metadata.AttrURL, fetchUrl.String())}, attrs...),
	)
	return fetchErr
}

func statusAttr(code int) metadata.Attribute {
	return metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(code))
}

// classify keeps classified errors (cache failures) as they are.
func classify(err error) failure.ClassifiedError {
	var classified failure.ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}
	return &FetchError{
		Message:   err.Error(),
		Retryable: false,
		Cause:     ErrCauseCacheFailure,
	}
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
