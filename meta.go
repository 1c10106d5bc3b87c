package inkwell

import (
	"net/url"
	"strings"

	"github.com/hollowaylabs/inkwell/content"
)

// MetaResolver turns a request path into the page metadata used for Open
// Graph rendering. It is a pure lookup over the static route table, the
// precomputed post/course indexes, and the content resolver; it never
// returns an error — an unrecognized path yields nil ("no opinion").
type MetaResolver struct {
	static      map[string]PageMeta
	posts       []content.PostInfo
	courses     []content.CourseInfo
	content     *content.Resolver
	defaultDesc string
}

// NewMetaResolver builds a resolver over the site's indexes. The indexes are
// materialized here once; lookups afterwards are read-only.
func NewMetaResolver(cfg SiteConfig, r *content.Resolver) (*MetaResolver, error) {
	posts, err := r.PostIndex()
	if err != nil {
		return nil, err
	}
	courses, err := r.CourseIndex()
	if err != nil {
		return nil, err
	}
	return &MetaResolver{
		static: map[string]PageMeta{
			"/":        {Title: cfg.Name, Description: cfg.Description},
			"/writing": {Title: "Writing | " + cfg.Name, Description: cfg.Description},
			"/courses": {Title: "Courses | " + cfg.Name, Description: cfg.Description},
		},
		posts:       posts,
		courses:     courses,
		content:     r,
		defaultDesc: cfg.Description,
	}, nil
}

// Resolve maps a request path to page metadata, first match wins: static
// routes, then /writing/<slug> against the post index, then
// /courses/<course>[/<lesson>]. Returns nil when the path isn't recognized.
func (m *MetaResolver) Resolve(path string) *PageMeta {
	path = normalizePath(path)

	if meta, ok := m.static[path]; ok {
		return &meta
	}

	if rest, ok := strings.CutPrefix(path, "/writing/"); ok && !strings.Contains(rest, "/") {
		slug := decodeSegment(rest)
		for _, p := range m.posts {
			if p.Slug == slug {
				return &PageMeta{
					Title:       p.Title,
					Description: firstNonEmpty(p.Description, m.defaultDesc),
				}
			}
		}
		// Unknown post: fall through, nothing below matches this prefix.
	}

	if rest, ok := strings.CutPrefix(path, "/courses/"); ok {
		segs := strings.Split(rest, "/")
		if len(segs) > 2 {
			return nil
		}
		course := m.findCourse(decodeSegment(segs[0]))
		if course == nil {
			return nil
		}
		if len(segs) == 1 {
			return &PageMeta{
				Title:       course.Title,
				Description: firstNonEmpty(course.Description, m.defaultDesc),
			}
		}
		return m.lessonMeta(course, decodeSegment(segs[1]))
	}

	return nil
}

// lessonMeta resolves lesson-level metadata. Any failure — module missing,
// frontmatter invalid — is treated as absence, never propagated.
func (m *MetaResolver) lessonMeta(course *content.CourseInfo, lessonSlug string) *PageMeta {
	mod, err := m.content.LoadCourseLesson(course.Slug, lessonSlug)
	if err != nil || mod == nil {
		return nil
	}
	if mod.Body == nil || mod.Meta.Validate() != nil {
		return nil
	}
	title := course.Title
	if mod.Meta.Title != "" {
		title = mod.Meta.Title + " | " + course.Title
	}
	return &PageMeta{
		Title:       title,
		Description: firstNonEmpty(mod.Meta.Description, course.Description, m.defaultDesc),
	}
}

func (m *MetaResolver) findCourse(slug string) *content.CourseInfo {
	for i := range m.courses {
		if m.courses[i].Slug == slug {
			return &m.courses[i]
		}
	}
	return nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// decodeSegment percent-decodes a path segment, falling back to the raw
// value when decoding fails.
func decodeSegment(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
