package og

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

// Fetcher retrieves a binary asset (font file, fallback image) by its
// relative path. Injected so the renderer can be exercised against a double.
type Fetcher func(ctx context.Context, path string) ([]byte, error)

// StatusError reports a non-success HTTP status from an HTTP-backed Fetcher.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// statusCode extracts an HTTP status from err, or 0 when the failure did not
// go over the wire.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

// FontLoadError means a font fetch failed; no image can be produced without
// fonts, so it propagates to the caller. It names the failing path and, for
// HTTP fetches, the status.
type FontLoadError struct {
	Path   string
	Status int
	Err    error
}

func (e *FontLoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("og: load font %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("og: load font %s: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// FallbackLoadError means the fallback raster fetch failed. It never escapes
// Render; it only disables the fallback path for that render.
type FallbackLoadError struct {
	Path string
	Err  error
}

func (e *FallbackLoadError) Error() string {
	return fmt.Sprintf("og: load fallback %s: %v", e.Path, e.Err)
}

func (e *FallbackLoadError) Unwrap() error { return e.Err }

// FSFetcher returns a Fetcher that reads assets from fsys.
func FSFetcher(fsys fs.FS) Fetcher {
	return func(_ context.Context, path string) ([]byte, error) {
		return fs.ReadFile(fsys, strings.TrimPrefix(path, "/"))
	}
}

// HTTPFetcher returns a Fetcher that resolves paths against baseURL using
// client. Non-2xx responses surface as *StatusError.
func HTTPFetcher(client *http.Client, baseURL string) Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	base := strings.TrimSuffix(baseURL, "/")
	return func(ctx context.Context, path string) ([]byte, error) {
		url := base + "/" + strings.TrimPrefix(path, "/")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Code: resp.StatusCode}
		}
		return io.ReadAll(resp.Body)
	}
}
