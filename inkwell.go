// Package inkwell is a personal-site engine built with Go, Echo, and templ.
// It serves markdown writing posts and courses from a content directory and
// renders Open Graph preview images for every page it knows about.
package inkwell

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hollowaylabs/inkwell/content"
	"github.com/hollowaylabs/inkwell/og"
)

// App is the central inkwell application. It wires together the content
// resolver, the metadata resolver, the OG image renderer, middleware, and
// routes.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *content.Resolver
	Meta    *MetaResolver
	OG      *og.Renderer

	renderCache  *og.RenderCache
	limiter      *renderLimiter
	customRoutes []func(*App)
	contentFS    fs.FS
	fetcher      og.Fetcher
	rasterizer   og.Rasterizer
}

// New creates an App with the given configuration. Content is not read until
// Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start scans the content directory, builds the resolvers and the renderer,
// and starts the server. It blocks until the server stops.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) init() error {
	contentFS := a.contentFS
	if contentFS == nil {
		contentFS = os.DirFS(a.Config.ContentDir)
	}
	resolver, err := content.NewResolver(contentFS)
	if err != nil {
		return fmt.Errorf("inkwell: scan content: %w", err)
	}
	a.Content = resolver

	meta, err := NewMetaResolver(a.Config, resolver)
	if err != nil {
		return fmt.Errorf("inkwell: build metadata index: %w", err)
	}
	a.Meta = meta

	fetch := a.fetcher
	if fetch == nil {
		fetch = og.FSFetcher(os.DirFS(a.Config.StaticDir))
	}
	ogOpts := []og.RendererOption{}
	if a.rasterizer != nil {
		ogOpts = append(ogOpts, og.WithRasterizer(a.rasterizer))
	}
	a.OG = og.NewRenderer(fetch, ogOpts...)

	if a.Config.OGCachePath != "" {
		cache, err := og.NewRenderCache(a.Config.OGCachePath, a.Config.OGCacheTTL)
		if err != nil {
			return fmt.Errorf("inkwell: open render cache: %w", err)
		}
		a.renderCache = cache
	}

	a.limiter = newRenderLimiter(30, time.Minute)
	return nil
}

// Close releases resources. Call when the app is shutting down.
func (a *App) Close() error {
	if a.renderCache != nil {
		return a.renderCache.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkwell: required environment variable %s is not set", key)
	}
	return v
}
