package og

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// RenderCache persists rendered preview images in SQLite so identical
// requests across restarts skip the render pipeline entirely.
type RenderCache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewRenderCache opens (or creates) the cache database at path, ensures the
// data directory exists, and runs schema setup. Entries older than ttl are
// treated as misses and pruned lazily.
func NewRenderCache(path string, ttl time.Duration) (*RenderCache, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout so concurrent render handlers wait instead of
	// failing with SQLITE_BUSY; synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	c := &RenderCache{db: db, ttl: ttl}
	if err := c.ensureSchema(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RenderCache) ensureSchema() error {
	_, err := c.db.Exec(`
CREATE TABLE IF NOT EXISTS renders (
    key TEXT PRIMARY KEY,
    content_type TEXT NOT NULL,
    body BLOB NOT NULL,
    rendered_at INTEGER NOT NULL
);
`)
	return err
}

// Get returns the cached bytes and content type for key, or ok=false on a
// miss or expired entry.
func (c *RenderCache) Get(key string) (body []byte, contentType string, ok bool, err error) {
	var renderedAt int64
	err = c.db.QueryRow(`SELECT content_type, body, rendered_at FROM renders WHERE key = ?`, key).
		Scan(&contentType, &body, &renderedAt)
	if err == sql.ErrNoRows {
		return nil, "", false, nil
	}
	if err != nil {
		return nil, "", false, err
	}
	if c.ttl > 0 && time.Since(time.Unix(renderedAt, 0)) > c.ttl {
		_, _ = c.db.Exec(`DELETE FROM renders WHERE key = ?`, key)
		return nil, "", false, nil
	}
	return body, contentType, true, nil
}

// Put upserts a rendered image.
func (c *RenderCache) Put(key, contentType string, body []byte) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO renders (key, content_type, body, rendered_at) VALUES (?, ?, ?, ?)`,
		key, contentType, body, time.Now().Unix())
	return err
}

// Close closes the underlying database.
func (c *RenderCache) Close() error {
	return c.db.Close()
}
