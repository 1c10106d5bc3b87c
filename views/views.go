// Package views holds the minimal page components the engine renders with.
// Components are plain templ.ComponentFunc values so the package needs no
// code generation step.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Site holds the site-wide values templates read.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// Entry is one row in a listing: a post, a course, or a lesson.
type Entry struct {
	Title       string
	Href        string
	Description string
	Date        string
}

// Head is the per-page metadata rendered into <head>.
type Head struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	ImageURL    string
	JsonLD      string
}

func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

// Shell wraps body in the page chrome: head metadata, OG tags, header, footer.
func Shell(site Site, head Head, body templ.Component) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		title := head.Title
		if title == "" {
			title = site.Name
		}
		desc := head.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := head.OGType
		if ogType == "" {
			ogType = "website"
		}
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/><title>%s</title><meta name="description" content="%s"/><meta property="og:title" content="%s"/><meta property="og:description" content="%s"/><meta property="og:type" content="%s"/>`,
			html.EscapeString(title), html.EscapeString(desc), html.EscapeString(title), html.EscapeString(desc), html.EscapeString(ogType))
		if head.Canonical != "" {
			fmt.Fprintf(w, `<link rel="canonical" href="%s"/><meta property="og:url" content="%s"/>`, html.EscapeString(head.Canonical), html.EscapeString(head.Canonical))
		}
		if head.ImageURL != "" {
			fmt.Fprintf(w, `<meta property="og:image" content="%s"/><meta name="twitter:card" content="summary_large_image"/>`, html.EscapeString(head.ImageURL))
		}
		if head.JsonLD != "" {
			fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, head.JsonLD)
		}
		fmt.Fprintf(w, `<link rel="stylesheet" href="/public/site.css"/></head><body><header><a href="/">%s</a><nav><a href="/writing/">Writing</a> <a href="/courses/">Courses</a></nav></header><main>`,
			html.EscapeString(site.Name))
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		footer := site.Name
		if site.Author != "" {
			footer = site.Author
		}
		_, err := fmt.Fprintf(w, `</main><footer>&copy; %s</footer></body></html>`, html.EscapeString(footer))
		return err
	})
}

func entryList(w io.Writer, heading string, entries []Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, `<section><h2>%s</h2><ul>`, html.EscapeString(heading))
	for _, e := range entries {
		fmt.Fprintf(w, `<li><a href="%s">%s</a>`, html.EscapeString(e.Href), html.EscapeString(e.Title))
		if e.Date != "" {
			fmt.Fprintf(w, ` <time datetime="%s">%s</time>`, html.EscapeString(e.Date), html.EscapeString(e.Date))
		}
		if e.Description != "" {
			fmt.Fprintf(w, `<p>%s</p>`, html.EscapeString(e.Description))
		}
		io.WriteString(w, `</li>`)
	}
	io.WriteString(w, `</ul></section>`)
}

// Home lists recent posts and available courses.
func Home(site Site, posts, courses []Entry) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		entryList(w, "Writing", posts)
		entryList(w, "Courses", courses)
		return nil
	})
}

// Post renders a single writing post.
func Post(title, date string, body templ.Component) templ.Component {
	return article(title, date, body, nil)
}

// Course renders a course landing page: readme, optional contents, lessons.
func Course(title string, readme, contents templ.Component, lessons []Entry) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<article><h1>%s</h1>`, html.EscapeString(title))
		if err := readme.Render(ctx, w); err != nil {
			return err
		}
		if contents != nil {
			io.WriteString(w, `<section class="contents">`)
			if err := contents.Render(ctx, w); err != nil {
				return err
			}
			io.WriteString(w, `</section>`)
		}
		entryList(w, "Lessons", lessons)
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

// Lesson renders a single course lesson with a link back to its course.
func Lesson(title, courseTitle, courseHref string, body templ.Component) templ.Component {
	backlink := component(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p><a href="%s">&larr; %s</a></p>`, html.EscapeString(courseHref), html.EscapeString(courseTitle))
		return err
	})
	return article(title, "", body, backlink)
}

func article(title, date string, body, footer templ.Component) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<article><h1>%s</h1>`, html.EscapeString(title))
		if date != "" {
			fmt.Fprintf(w, `<time datetime="%s">%s</time>`, html.EscapeString(date), html.EscapeString(date))
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if footer != nil {
			if err := footer.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</article>`)
		return err
	})
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<article><h1>Page not found</h1><p>Nothing lives at this address. <a href="/">Head home.</a></p></article>`)
		return err
	})
}

// ServerError is the 500 page body.
func ServerError() templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<article><h1>Something broke</h1><p>Try again in a moment.</p></article>`)
		return err
	})
}
