package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/pydocs-scraper/internal/metadata"
	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the cache database inside the cache directory.
const FileName = "http_cache.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS responses (
	key         TEXT PRIMARY KEY,
	url         TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	headers     TEXT NOT NULL,
	body        BLOB NOT NULL,
	fetched_at  INTEGER NOT NULL
);`

// SQLiteCache persists responses in a single SQLite file so that entries
// survive across process runs.
type SQLiteCache struct {
	db           *sql.DB
	path         string
	metadataSink metadata.MetadataSink
}

// OpenSQLiteCache opens (creating when missing) the cache database in dir.
func OpenSQLiteCache(ctx context.Context, dir string, metadataSink metadata.MetadataSink) (*SQLiteCache, error) {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	c := &SQLiteCache{
		path:         filepath.Join(dir, FileName),
		metadataSink: metadataSink,
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, c.fail("OpenSQLiteCache", ErrCauseOpenFailed, err)
	}

	db, err := sql.Open("sqlite", c.path+"?mode=rwc")
	if err != nil {
		return nil, c.fail("OpenSQLiteCache", ErrCauseOpenFailed, err)
	}
	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, c.fail("OpenSQLiteCache", ErrCauseOpenFailed, err)
	}

	c.db = db
	return c, nil
}

// Path returns the location of the database file.
func (c *SQLiteCache) Path() string {
	return c.path
}

func (c *SQLiteCache) Get(key string) (CachedResponse, bool, error) {
	var (
		resp        CachedResponse
		headersJSON string
		fetchedAt   int64
	)
	row := c.db.QueryRow(
		`SELECT url, status_code, headers, body, fetched_at FROM responses WHERE key = ?`,
		key,
	)
	err := row.Scan(&resp.URL, &resp.StatusCode, &headersJSON, &resp.Body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CachedResponse{}, false, nil
	}
	if err != nil {
		return CachedResponse{}, false, c.fail("SQLiteCache.Get", ErrCauseReadFailed, err)
	}

	if err := json.Unmarshal([]byte(headersJSON), &resp.Headers); err != nil {
		return CachedResponse{}, false, c.fail("SQLiteCache.Get", ErrCauseReadFailed, err)
	}
	resp.FetchedAt = time.Unix(0, fetchedAt).UTC()
	return resp, true, nil
}

func (c *SQLiteCache) Put(key string, resp CachedResponse) error {
	headers := resp.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return c.fail("SQLiteCache.Put", ErrCauseWriteFailed, err)
	}
	body := resp.Body
	if body == nil {
		body = []byte{}
	}

	_, err = c.db.Exec(`
		INSERT INTO responses (key, url, status_code, headers, body, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			url = excluded.url,
			status_code = excluded.status_code,
			headers = excluded.headers,
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		key, resp.URL, resp.StatusCode, string(headersJSON), body, resp.FetchedAt.UnixNano(),
	)
	if err != nil {
		return c.fail("SQLiteCache.Put", ErrCauseWriteFailed, err)
	}
	return nil
}

func (c *SQLiteCache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM responses`); err != nil {
		return c.fail("SQLiteCache.Clear", ErrCauseClearFailed, err)
	}
	return nil
}

// Size returns the number of stored entries.
func (c *SQLiteCache) Size() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM responses`).Scan(&n); err != nil {
		return 0, c.fail("SQLiteCache.Size", ErrCauseReadFailed, err)
	}
	return n, nil
}

func (c *SQLiteCache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *SQLiteCache) fail(action string, cause CacheErrorCause, err error) *CacheError {
	cacheErr := &CacheError{
		Message:   fmt.Sprintf("%s: %v", c.path, err),
		Retryable: false,
		Cause:     cause,
	}
	c.metadataSink.RecordError(
		time.Now(),
		"cache",
		action,
		mapCacheErrorToMetadataCause(cacheErr),
		cacheErr.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, c.path),
		},
	)
	return cacheErr
}
