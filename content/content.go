// Package content resolves logical slugs to markdown modules discovered at
// startup. The registry key space is fixed after construction; lookups are
// pure map reads and loaders are lazy and memoized.
package content

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"

	"github.com/hollowaylabs/inkwell/markdown"
)

// Frontmatter is the metadata block at the top of every content file.
type Frontmatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Modified    string   `yaml:"modified"`
	Published   *bool    `yaml:"published"`
	Tags        []string `yaml:"tags"`
}

// IsPublished reports whether the module is published. Unset means published.
func (f Frontmatter) IsPublished() bool {
	return f.Published == nil || *f.Published
}

// Validate checks the frontmatter against the schema required for metadata
// resolution: non-empty title and description.
func (f Frontmatter) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("frontmatter: missing title")
	}
	if strings.TrimSpace(f.Description) == "" {
		return fmt.Errorf("frontmatter: missing description")
	}
	return nil
}

// Module is a loaded content unit: parsed frontmatter plus a renderable body.
type Module struct {
	Key  string
	Meta Frontmatter
	Body templ.Component
}

// NotFoundError is returned when no module is registered for a key. It always
// carries the attempted key so callers can tell missing content apart from
// other failures.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "content: no module registered for " + e.Key
}

// entry is a single registered module: a lazy, memoized loader.
type entry struct {
	once sync.Once
	path string
	key  string
	mod  *Module
	err  error
}

func (e *entry) load(fsys fs.FS) (*Module, error) {
	e.once.Do(func() {
		data, err := fs.ReadFile(fsys, e.path)
		if err != nil {
			e.err = fmt.Errorf("content: read %s: %w", e.path, err)
			return
		}
		var fm Frontmatter
		body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
		if err != nil {
			e.err = fmt.Errorf("content: parse frontmatter of %s: %w", e.path, err)
			return
		}
		cmp, err := markdown.Component(body)
		if err != nil {
			e.err = fmt.Errorf("content: render %s: %w", e.path, err)
			return
		}
		e.mod = &Module{Key: e.key, Meta: fm, Body: cmp}
	})
	return e.mod, e.err
}

// Resolver maps logical slugs to registered modules. Two registries exist: one
// for writing posts, one for course files (readmes, contents pages, lessons).
type Resolver struct {
	fsys    fs.FS
	writing map[string]*entry
	courses map[string]*entry

	ownerOnce sync.Once
	owner     map[string]string

	postOnce sync.Once
	posts    []PostInfo
	postErr  error

	courseOnce sync.Once
	courseIdx  []CourseInfo
	courseErr  error
}

// normalizeSlug strips a trailing markdown extension, case-insensitively, so
// "intro" and "intro.md" resolve to the same key.
func normalizeSlug(s string) string {
	if len(s) >= 3 && strings.EqualFold(s[len(s)-3:], ".md") {
		return s[:len(s)-3]
	}
	return s
}

// LoadWriting resolves a writing post by slug.
func (r *Resolver) LoadWriting(slug string) (*Module, error) {
	return r.require(r.writing, "writing/"+normalizeSlug(slug))
}

// LoadCourseReadme resolves a course's landing documentation.
func (r *Resolver) LoadCourseReadme(courseSlug string) (*Module, error) {
	return r.require(r.courses, "courses/"+courseSlug+"/README")
}

// LoadCourseContents resolves a course's optional table-of-contents file.
// A missing contents file is not an error: it returns nil, nil.
func (r *Resolver) LoadCourseContents(courseSlug string) (*Module, error) {
	e, ok := r.courses["courses/"+courseSlug+"/_index"]
	if !ok {
		return nil, nil
	}
	return e.load(r.fsys)
}

// LoadCourseLesson resolves a single lesson within a course.
func (r *Resolver) LoadCourseLesson(courseSlug, lessonSlug string) (*Module, error) {
	return r.require(r.courses, "courses/"+courseSlug+"/"+normalizeSlug(lessonSlug))
}

// HasCourseReadme reports whether a course readme is registered, without
// invoking its loader.
func (r *Resolver) HasCourseReadme(courseSlug string) bool {
	_, ok := r.courses["courses/"+courseSlug+"/README"]
	return ok
}

func (r *Resolver) require(reg map[string]*entry, key string) (*Module, error) {
	e, ok := reg[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return e.load(r.fsys)
}

// CourseForLesson returns the course that uniquely owns a lesson slug. When no
// course, or more than one course, has a file with that slug, ok is false:
// guessing an owner could misattribute content, so ambiguity fails closed.
func (r *Resolver) CourseForLesson(lessonSlug string) (string, bool) {
	r.ownerOnce.Do(r.buildOwnerIndex)
	course, ok := r.owner[normalizeSlug(lessonSlug)]
	if !ok || course == "" {
		return "", false
	}
	return course, true
}

func (r *Resolver) buildOwnerIndex() {
	idx := make(map[string]string)
	for key := range r.courses {
		rest := strings.TrimPrefix(key, "courses/")
		course, file, ok := strings.Cut(rest, "/")
		if !ok || file == "README" || file == "_index" {
			continue
		}
		if prev, seen := idx[file]; seen && prev != course {
			idx[file] = "" // ambiguous: owned by more than one course
			continue
		}
		idx[file] = course
	}
	r.owner = idx
}
