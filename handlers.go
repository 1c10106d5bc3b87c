package inkwell

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/hollowaylabs/inkwell/content"
	"github.com/hollowaylabs/inkwell/og"
	"github.com/hollowaylabs/inkwell/views"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/writing/", a.handleWritingIndex)
	e.GET("/writing/:slug/", a.handlePost)
	e.GET("/courses/", a.handleCoursesIndex)
	e.GET("/courses/:course/", a.handleCourse)
	e.GET("/courses/:course/:lesson/", a.handleLesson)

	e.GET("/api/og/", a.handleOGImage)
}

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

// head builds per-page metadata, pointing og:image at the render endpoint so
// crawlers get a generated preview for every page.
func (a *App) head(path, ogType, jsonLD string) views.Head {
	h := views.Head{
		Canonical: BuildURL(a.Config.URL, strings.Split(strings.Trim(path, "/"), "/")...),
		OGType:    ogType,
		JsonLD:    jsonLD,
		ImageURL:  a.Config.URL + "/api/og/?path=" + url.QueryEscape(path),
	}
	if path == "/" {
		h.Canonical = a.Config.URL + "/"
	}
	if meta := a.Meta.Resolve(path); meta != nil {
		h.Title = meta.Title
		h.Description = meta.Description
	}
	return h
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Content.PostIndex()
	if err != nil {
		return err
	}
	courses, err := a.Content.CourseIndex()
	if err != nil {
		return err
	}
	body := views.Home(a.site(), postEntries(posts), courseEntries(courses))
	return Render(c, views.Shell(a.site(), a.head("/", "website", WebsiteJsonLD(a.Config)), body))
}

func (a *App) handleWritingIndex(c echo.Context) error {
	posts, err := a.Content.PostIndex()
	if err != nil {
		return err
	}
	body := views.Home(a.site(), postEntries(posts), nil)
	return Render(c, views.Shell(a.site(), a.head("/writing", "website", ""), body))
}

func (a *App) handleCoursesIndex(c echo.Context) error {
	courses, err := a.Content.CourseIndex()
	if err != nil {
		return err
	}
	body := views.Home(a.site(), nil, courseEntries(courses))
	return Render(c, views.Shell(a.site(), a.head("/courses", "website", ""), body))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	mod, err := a.Content.LoadWriting(slug)
	if err != nil {
		return err // NotFoundError becomes the 404 page in the error handler
	}
	if !mod.Meta.IsPublished() {
		return a.renderStatusPage(c, http.StatusNotFound)
	}
	fileSlug := strings.TrimPrefix(mod.Key, "writing/")
	jsonLD := ArticleJsonLD(content.PostInfo{
		Slug:        fileSlug,
		Title:       mod.Meta.Title,
		Description: mod.Meta.Description,
		Date:        mod.Meta.Date,
		Modified:    mod.Meta.Modified,
	}, a.Config)
	body := views.Post(mod.Meta.Title, mod.Meta.Date, mod.Body)
	return Render(c, views.Shell(a.site(), a.head("/writing/"+fileSlug, "article", jsonLD), body))
}

func (a *App) handleCourse(c echo.Context) error {
	slug := c.Param("course")
	if !a.Content.HasCourseReadme(slug) {
		// A bare lesson slug with exactly one owning course redirects there.
		if owner, ok := a.Content.CourseForLesson(slug); ok {
			return c.Redirect(http.StatusMovedPermanently, "/courses/"+owner+"/"+slug+"/")
		}
		return a.renderStatusPage(c, http.StatusNotFound)
	}
	readme, err := a.Content.LoadCourseReadme(slug)
	if err != nil {
		return err
	}
	if !readme.Meta.IsPublished() {
		return a.renderStatusPage(c, http.StatusNotFound)
	}
	contents, err := a.Content.LoadCourseContents(slug)
	if err != nil {
		return err
	}
	lessons, err := a.courseLessons(slug)
	if err != nil {
		return err
	}
	body := views.Course(readme.Meta.Title, readme.Body, moduleBody(contents), lessons)
	return Render(c, views.Shell(a.site(), a.head("/courses/"+slug, "website", ""), body))
}

func (a *App) handleLesson(c echo.Context) error {
	courseSlug := c.Param("course")
	lessonSlug := c.Param("lesson")
	mod, err := a.Content.LoadCourseLesson(courseSlug, lessonSlug)
	if err != nil {
		return err
	}
	if !mod.Meta.IsPublished() {
		return a.renderStatusPage(c, http.StatusNotFound)
	}
	courseTitle := courseSlug
	if readme, err := a.Content.LoadCourseReadme(courseSlug); err == nil {
		courseTitle = readme.Meta.Title
	}
	fileSlug := strings.TrimPrefix(mod.Key, "courses/"+courseSlug+"/")
	body := views.Lesson(mod.Meta.Title, courseTitle, "/courses/"+courseSlug+"/", mod.Body)
	return Render(c, views.Shell(a.site(), a.head("/courses/"+courseSlug+"/"+fileSlug, "article", ""), body))
}

// handleOGImage serves the social preview image for ?path=<page>, consulting
// the persistent render cache first. A non-empty ?v= marks the URL as
// versioned, which switches the response to immutable caching.
func (a *App) handleOGImage(c echo.Context) error {
	if a.limiter != nil && !a.limiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many render requests. Try again later.")
	}

	page := c.QueryParam("path")
	if page == "" {
		page = "/"
	}
	version := c.QueryParam("v")
	versioned := version != ""
	key := page + "#" + version

	if a.renderCache != nil {
		if body, contentType, ok, err := a.renderCache.Get(key); err == nil && ok {
			return og.WriteResponseAs(c, body, contentType, versioned)
		}
	}

	opts := og.Options{
		Handle: a.Config.Handle,
		URL:    hostOf(a.Config.URL),
	}
	if meta := a.Meta.Resolve(page); meta != nil {
		opts.Title = meta.Title
		opts.Description = meta.Description
	} else {
		opts.Title = a.Config.Name
		opts.Description = a.Config.Description
	}

	body, err := a.OG.Render(c.Request().Context(), opts)
	if err != nil {
		return err // font loading failed, recoverable on retry
	}
	if a.renderCache != nil {
		_ = a.renderCache.Put(key, og.ContentType(body), body)
	}
	return og.WriteResponse(c, body, versioned)
}

func (a *App) renderStatusPage(c echo.Context, code int) error {
	page := views.ServerError()
	if code == http.StatusNotFound {
		page = views.NotFound()
	}
	return RenderStatus(c, code, views.Shell(a.site(), views.Head{}, page))
}

// courseLessons lists the published lessons of one course as view entries,
// in the resolver's sorted key order.
func (a *App) courseLessons(courseSlug string) ([]views.Entry, error) {
	prefix := "courses/" + courseSlug + "/"
	var entries []views.Entry
	for _, key := range a.Content.CoursePaths() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		fileSlug := strings.TrimPrefix(key, prefix)
		mod, err := a.Content.LoadCourseLesson(courseSlug, fileSlug)
		if err != nil {
			return nil, err
		}
		if !mod.Meta.IsPublished() {
			continue
		}
		entries = append(entries, views.Entry{
			Title:       mod.Meta.Title,
			Href:        "/courses/" + courseSlug + "/" + fileSlug + "/",
			Description: mod.Meta.Description,
		})
	}
	return entries, nil
}

func moduleBody(mod *content.Module) templ.Component {
	if mod == nil {
		return nil
	}
	return mod.Body
}

func postEntries(posts []content.PostInfo) []views.Entry {
	entries := make([]views.Entry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, views.Entry{
			Title:       p.Title,
			Href:        "/writing/" + p.Slug + "/",
			Description: p.Description,
			Date:        p.Date,
		})
	}
	return entries
}

func courseEntries(courses []content.CourseInfo) []views.Entry {
	entries := make([]views.Entry, 0, len(courses))
	for _, c := range courses {
		entries = append(entries, views.Entry{
			Title:       c.Title,
			Href:        "/courses/" + c.Slug + "/",
			Description: c.Description,
		})
	}
	return entries
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
