package content

import (
	"sort"
	"strings"
)

// PostInfo is a lightweight index record for a writing post.
type PostInfo struct {
	Slug        string
	Title       string
	Description string
	Date        string
	Modified    string
}

// CourseInfo is a lightweight index record for a course, built from the
// course's readme frontmatter.
type CourseInfo struct {
	Slug        string
	Title       string
	Description string
	Date        string
	Modified    string
}

// PostIndex returns index records for every published writing post, newest
// first. The index is built once and immutable afterwards.
func (r *Resolver) PostIndex() ([]PostInfo, error) {
	r.postOnce.Do(func() {
		for _, key := range r.WritingPaths() {
			mod, err := r.require(r.writing, key)
			if err != nil {
				r.postErr = err
				return
			}
			if !mod.Meta.IsPublished() {
				continue
			}
			r.posts = append(r.posts, PostInfo{
				Slug:        strings.TrimPrefix(key, "writing/"),
				Title:       mod.Meta.Title,
				Description: mod.Meta.Description,
				Date:        mod.Meta.Date,
				Modified:    mod.Meta.Modified,
			})
		}
		sort.SliceStable(r.posts, func(i, j int) bool {
			return r.posts[i].Date > r.posts[j].Date
		})
	})
	return r.posts, r.postErr
}

// CourseIndex returns index records for every course that has a published
// readme, sorted by slug. Built once, immutable afterwards.
func (r *Resolver) CourseIndex() ([]CourseInfo, error) {
	r.courseOnce.Do(func() {
		seen := make(map[string]bool)
		for key := range r.courses {
			rest := strings.TrimPrefix(key, "courses/")
			course, _, _ := strings.Cut(rest, "/")
			seen[course] = true
		}
		var slugs []string
		for c := range seen {
			slugs = append(slugs, c)
		}
		sort.Strings(slugs)
		for _, c := range slugs {
			if !r.HasCourseReadme(c) {
				continue
			}
			mod, err := r.LoadCourseReadme(c)
			if err != nil {
				r.courseErr = err
				return
			}
			if !mod.Meta.IsPublished() {
				continue
			}
			r.courseIdx = append(r.courseIdx, CourseInfo{
				Slug:        c,
				Title:       mod.Meta.Title,
				Description: mod.Meta.Description,
				Date:        mod.Meta.Date,
				Modified:    mod.Meta.Modified,
			})
		}
	})
	return r.courseIdx, r.courseErr
}
