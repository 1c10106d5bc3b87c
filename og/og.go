// Package og renders Open Graph preview images for site pages. Images are
// composed as a 1200x630 SVG document using lazily fetched fonts, then
// rasterized to JPEG. A failing rasterizer never surfaces as an error: the
// renderer degrades to a cached fallback raster, and past that to the raw
// SVG bytes.
package og

import (
	"context"
	"log"
	"sync/atomic"
)

// Canvas dimensions, the conventional Open Graph preview size.
const (
	Width  = 1200
	Height = 630
)

// Options describes one preview image. Created per request; it has no
// identity beyond the request it serves.
type Options struct {
	Title       string
	Description string
	Background  string // hex color, e.g. "#0f172a"
	Foreground  string
	Accent      string
	HideFooter  bool
	Handle      string
	URL         string
}

// Card is everything a Rasterizer needs: the request options, the loaded
// fonts, and the already-composed vector document.
type Card struct {
	Options Options
	Fonts   []Font
	SVG     []byte
}

// Rasterizer converts a composed card into compressed raster bytes.
type Rasterizer interface {
	Rasterize(card *Card) ([]byte, error)
}

// Renderer produces preview image bytes. Safe for concurrent use: the font
// set and the fallback raster are each fetched at most once across all
// in-flight requests, and a failed fetch resets so the next request retries.
type Renderer struct {
	fetch        Fetcher
	fonts        []FontFile
	fallbackPath string
	raster       Rasterizer
	logf         func(format string, args ...any)

	fontCache lazyAsset[[]Font]
	fbCache   lazyAsset[[]byte]
	warned    atomic.Bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithFonts replaces the default font descriptor set.
func WithFonts(fonts []FontFile) RendererOption {
	return func(r *Renderer) { r.fonts = fonts }
}

// WithFallbackPath sets the fetch path of the fallback raster image.
func WithFallbackPath(path string) RendererOption {
	return func(r *Renderer) { r.fallbackPath = path }
}

// WithRasterizer replaces the default JPEG rasterizer.
func WithRasterizer(rz Rasterizer) RendererOption {
	return func(r *Renderer) { r.raster = rz }
}

// WithLogf replaces the logger used for the one-time rasterizer warning.
func WithLogf(logf func(format string, args ...any)) RendererOption {
	return func(r *Renderer) { r.logf = logf }
}

// NewRenderer creates a Renderer that retrieves fonts and the fallback image
// through fetch.
func NewRenderer(fetch Fetcher, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fetch:        fetch,
		fonts:        DefaultFonts,
		fallbackPath: "images/og-fallback.png",
		raster:       &JPEGRasterizer{Quality: 90},
		logf:         log.Printf,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render turns opts into image bytes. Font loading failures propagate as
// *FontLoadError (and reset the font cache so a later request retries);
// rasterization failures degrade through the fallback raster down to the raw
// SVG and never propagate.
func (r *Renderer) Render(ctx context.Context, opts Options) ([]byte, error) {
	fonts, err := r.loadFonts(ctx)
	if err != nil {
		return nil, err
	}

	svg := ComposeSVG(opts, fonts)

	out, rerr := r.raster.Rasterize(&Card{Options: opts, Fonts: fonts, SVG: svg})
	if rerr == nil {
		return out, nil
	}
	if r.warned.CompareAndSwap(false, true) {
		r.logf("og: rasterizer unavailable, serving fallback image: %v", rerr)
	}

	if fb, ferr := r.loadFallback(ctx); ferr == nil {
		return fb, nil
	}
	return svg, nil
}

func (r *Renderer) loadFonts(ctx context.Context) ([]Font, error) {
	return r.fontCache.get(ctx, func(ctx context.Context) ([]Font, error) {
		fonts := make([]Font, 0, len(r.fonts))
		for _, ff := range r.fonts {
			data, err := r.fetch(ctx, ff.Path)
			if err != nil {
				return nil, &FontLoadError{Path: ff.Path, Status: statusCode(err), Err: err}
			}
			fonts = append(fonts, Font{FontFile: ff, Data: data})
		}
		return fonts, nil
	})
}

func (r *Renderer) loadFallback(ctx context.Context) ([]byte, error) {
	return r.fbCache.get(ctx, func(ctx context.Context) ([]byte, error) {
		data, err := r.fetch(ctx, r.fallbackPath)
		if err != nil {
			return nil, &FallbackLoadError{Path: r.fallbackPath, Err: err}
		}
		return data, nil
	})
}
