package inkwell

import (
	"io/fs"
	"time"

	"github.com/hollowaylabs/inkwell/og"
)

// SiteConfig holds all configuration for an inkwell site.
type SiteConfig struct {
	Name        string // Site name (default "Site")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS, meta tags, and OG fallbacks
	Author      string // Author name for JSON-LD
	Handle      string // Social handle shown in the OG image footer

	Addr       string // Listen address (default ":3000")
	ContentDir string // Markdown content root (default "content")
	StaticDir  string // Static assets, incl. fonts and the OG fallback image (default "public")

	OGCachePath string        // SQLite path for the rendered-image cache; empty disables
	OGCacheTTL  time.Duration // Rendered-image cache TTL (default 24h)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Site"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OGCacheTTL == 0 {
		c.OGCacheTTL = 24 * time.Hour
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithContentFS overrides the content filesystem (default: os.DirFS of
// SiteConfig.ContentDir). Useful for embedded content and tests.
func WithContentFS(fsys fs.FS) Option {
	return func(a *App) {
		a.contentFS = fsys
	}
}

// WithFetcher overrides the asset fetcher used by the OG renderer
// (default: an FS fetcher over the static dir).
func WithFetcher(fetch og.Fetcher) Option {
	return func(a *App) {
		a.fetcher = fetch
	}
}

// WithRasterizer overrides the OG rasterizer backend.
func WithRasterizer(rz og.Rasterizer) Option {
	return func(a *App) {
		a.rasterizer = rz
	}
}
