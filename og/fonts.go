package og

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FontFile describes one typeface needed to render a preview image.
type FontFile struct {
	Family string
	Weight int
	Style  string
	Path   string
}

// Font pairs a descriptor with its fetched bytes.
type Font struct {
	FontFile
	Data []byte
}

// DefaultFonts is the descriptor set used when none is configured. Paths are
// relative to whatever the configured Fetcher resolves against.
var DefaultFonts = []FontFile{
	{Family: "Inter", Weight: 400, Style: "normal", Path: "fonts/inter-regular.ttf"},
	{Family: "Inter", Weight: 700, Style: "normal", Path: "fonts/inter-bold.ttf"},
}

// lazyAsset is a fetch-once cache with three states: empty, one shared
// in-flight load, and ready forever. A failed load leaves the cache empty so
// the next caller retries; concurrent callers always share a single load and
// observe the same outcome.
type lazyAsset[T any] struct {
	mu    sync.Mutex
	ready bool
	value T
	sf    singleflight.Group
}

func (l *lazyAsset[T]) get(ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	l.mu.Lock()
	if l.ready {
		v := l.value
		l.mu.Unlock()
		return v, nil
	}
	l.mu.Unlock()

	v, err, _ := l.sf.Do("asset", func() (any, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.value = val
		l.ready = true
		l.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
