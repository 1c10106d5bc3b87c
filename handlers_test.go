package inkwell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hollowaylabs/inkwell/og"
)

type fixedRasterizer struct{ out []byte }

func (f *fixedRasterizer) Rasterize(*og.Card) ([]byte, error) {
	return f.out, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	fsys := fstest.MapFS{
		"writing/hello-world.md": contentFile("title: Hello World\ndescription: A first post\ndate: \"2024-01-01\"\n", "Post body here."),
		"writing/draft.md":       contentFile("title: Draft\ndescription: hidden\npublished: false\n", "not yet"),
		"courses/testing/README.md":          contentFile("title: Testing Fundamentals\ndescription: Learn testing\n", "Course readme."),
		"courses/testing/intro-to-vitest.md": contentFile("title: Intro to Vitest\ndescription: Getting started\n", "Lesson body."),
	}
	fetch := func(ctx context.Context, path string) ([]byte, error) {
		return []byte("asset:" + path), nil
	}
	app := New(
		SiteConfig{Name: "Example Site", URL: "http://example.com", Handle: "@example"},
		WithContentFS(fsys),
		WithFetcher(fetch),
		WithRasterizer(&fixedRasterizer{out: []byte{0xff, 0xd8, 0xff, 0xe0}}),
	)
	if err := app.init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func get(app *App, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleHome(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Hello World", "Testing Fundamentals", `property="og:image"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(body, "Draft") {
		t.Error("home page should not list unpublished posts")
	}
}

func TestHandlePost(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/writing/hello-world/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET post = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Post body here.") {
		t.Error("post body missing")
	}
	if !strings.Contains(body, `"@type":"Article"`) {
		t.Error("article JSON-LD missing")
	}
}

func TestHandlePostUnpublished(t *testing.T) {
	app := newTestApp(t)
	if rec := get(app, "/writing/draft/"); rec.Code != http.StatusNotFound {
		t.Errorf("unpublished post = %d, want 404", rec.Code)
	}
}

func TestHandlePostNotFound(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/writing/never-written/")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing post = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Page not found") {
		t.Error("404 should render the styled page")
	}
}

func TestHandleCourseAndLesson(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/courses/testing/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET course = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Intro to Vitest") {
		t.Error("course page should list its lessons")
	}

	rec = get(app, "/courses/testing/intro-to-vitest/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET lesson = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Lesson body.") {
		t.Error("lesson body missing")
	}
}

func TestHandleCourseRedirectsBareLessonSlug(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/courses/intro-to-vitest/")
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("bare lesson slug = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/courses/testing/intro-to-vitest/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHandleOGImage(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/api/og/?path=%2Fwriting%2Fhello-world")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET og = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != og.MIMEJPEG {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != og.CacheRevalidate {
		t.Errorf("unversioned Cache-Control = %q", cc)
	}

	rec = get(app, "/api/og/?path=%2F&v=abc123")
	if cc := rec.Header().Get("Cache-Control"); cc != og.CacheImmutable {
		t.Errorf("versioned Cache-Control = %q", cc)
	}
}

func TestHandleSitemapAndFeed(t *testing.T) {
	app := newTestApp(t)
	rec := get(app, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET sitemap = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"http://example.com/writing/hello-world/",
		"http://example.com/courses/testing/intro-to-vitest/",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}

	rec = get(app, "/feed.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET feed = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Hello World") {
		t.Error("feed missing published post")
	}
}
