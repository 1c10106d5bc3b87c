package og

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestCache(t *testing.T, ttl time.Duration) *RenderCache {
	t.Helper()
	c, err := NewRenderCache(filepath.Join(t.TempDir(), "og.db"), ttl)
	if err != nil {
		t.Fatalf("NewRenderCache failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRenderCachePutGet(t *testing.T) {
	c := setupTestCache(t, time.Hour)

	if err := c.Put("/writing/foo?v=1", MIMEJPEG, []byte("bytes")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	body, ct, ok, err := c.Get("/writing/foo?v=1")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if string(body) != "bytes" || ct != MIMEJPEG {
		t.Errorf("Get = %q %q", body, ct)
	}
}

func TestRenderCacheMiss(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	_, _, ok, err := c.Get("/nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected miss for unknown key")
	}
}

func TestRenderCacheExpiry(t *testing.T) {
	c := setupTestCache(t, time.Nanosecond)
	if err := c.Put("k", MIMESVG, []byte("old")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	_, _, ok, err := c.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expired entry should be a miss")
	}
}

func TestRenderCacheOverwrite(t *testing.T) {
	c := setupTestCache(t, time.Hour)
	if err := c.Put("k", MIMEJPEG, []byte("one")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := c.Put("k", MIMESVG, []byte("two")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	body, ct, ok, _ := c.Get("k")
	if !ok || string(body) != "two" || ct != MIMESVG {
		t.Errorf("Get after overwrite = %q %q ok=%v", body, ct, ok)
	}
}
