package inkwell

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// handleSitemap serves the sitemap: the listing pages, every published post,
// every course with a readme, and each course's lessons.
func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Content.PostIndex()
	if err != nil {
		return err
	}
	courses, err := a.Content.CourseIndex()
	if err != nil {
		return err
	}

	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "writing")},
		{Loc: BuildURL(base, "courses")},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "writing", p.Slug),
			LastMod: firstNonEmpty(p.Modified, p.Date),
		})
	}
	for _, course := range courses {
		urls = append(urls, sitemapURL{Loc: BuildURL(base, "courses", course.Slug)})
		prefix := "courses/" + course.Slug + "/"
		for _, key := range a.Content.CoursePaths() {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			urls = append(urls, sitemapURL{
				Loc: BuildURL(base, "courses", course.Slug, strings.TrimPrefix(key, prefix)),
			})
		}
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
