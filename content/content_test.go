package content

import (
	"errors"
	"testing"
	"testing/fstest"
)

func mdFile(title, desc, body string, extra ...string) *fstest.MapFile {
	fm := "---\ntitle: " + title + "\ndescription: " + desc + "\n"
	for _, line := range extra {
		fm += line + "\n"
	}
	fm += "---\n" + body
	return &fstest.MapFile{Data: []byte(fm)}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"writing/hello-world.md":         mdFile("Hello World", "A first post", "# Hi", "date: \"2024-03-01\""),
		"writing/older.md":               mdFile("Older", "An older post", "old", "date: \"2023-01-01\""),
		"writing/draft.md":               mdFile("Draft", "Not yet", "wip", "published: false"),
		"courses/testing/README.md":      mdFile("Testing Fundamentals", "Learn testing", "# Testing"),
		"courses/testing/_index.md":      mdFile("Contents", "Table of contents", "- intro"),
		"courses/testing/intro.md":       mdFile("Intro", "Getting started", "lesson"),
		"courses/testing/setup.md":       mdFile("Setup", "Install things", "lesson"),
		"courses/debugging/README.md":    mdFile("Debugging", "Find bugs", "# Debugging"),
		"courses/debugging/intro.md":     mdFile("Intro", "Getting started", "lesson"),
		"courses/debugging/breakpts.md":  mdFile("Breakpoints", "Pause execution", "lesson"),
		"courses/no-readme/orphaned.md":  mdFile("Orphaned", "No readme here", "lesson"),
		"courses/testing/notes.txt":      {Data: []byte("ignored")},
	}
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(testFS())
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	return r
}

func TestLoadWritingNormalization(t *testing.T) {
	r := newTestResolver(t)
	for _, slug := range []string{"hello-world", "hello-world.md", "hello-world.MD"} {
		mod, err := r.LoadWriting(slug)
		if err != nil {
			t.Fatalf("LoadWriting(%q) failed: %v", slug, err)
		}
		if mod.Key != "writing/hello-world" {
			t.Errorf("LoadWriting(%q).Key = %q, want writing/hello-world", slug, mod.Key)
		}
	}

	// Memoized loaders mean every spelling resolves to the identical module.
	a, _ := r.LoadWriting("hello-world")
	b, _ := r.LoadWriting("hello-world.MD")
	if a != b {
		t.Error("normalized slugs should resolve to the same module instance")
	}
}

func TestLoadWritingNotFound(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.LoadWriting("does-not-exist")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Key != "writing/does-not-exist" {
		t.Errorf("NotFoundError.Key = %q, want writing/does-not-exist", nf.Key)
	}
}

func TestLoadCourseContentsOptional(t *testing.T) {
	r := newTestResolver(t)

	mod, err := r.LoadCourseContents("testing")
	if err != nil || mod == nil {
		t.Fatalf("LoadCourseContents(testing) = %v, %v; want module", mod, err)
	}

	mod, err = r.LoadCourseContents("debugging")
	if err != nil {
		t.Fatalf("missing contents should not fail: %v", err)
	}
	if mod != nil {
		t.Errorf("missing contents should return nil, got %v", mod)
	}
}

func TestLoadCourseLesson(t *testing.T) {
	r := newTestResolver(t)
	mod, err := r.LoadCourseLesson("testing", "intro")
	if err != nil {
		t.Fatalf("LoadCourseLesson failed: %v", err)
	}
	if mod.Meta.Title != "Intro" {
		t.Errorf("lesson title = %q, want Intro", mod.Meta.Title)
	}

	_, err = r.LoadCourseLesson("testing", "missing")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Key != "courses/testing/missing" {
		t.Errorf("expected NotFoundError for courses/testing/missing, got %v", err)
	}
}

func TestHasCourseReadme(t *testing.T) {
	r := newTestResolver(t)
	if !r.HasCourseReadme("testing") {
		t.Error("testing course should have a readme")
	}
	if r.HasCourseReadme("no-readme") {
		t.Error("no-readme course should not have a readme")
	}
}

func TestCourseForLesson(t *testing.T) {
	r := newTestResolver(t)

	// "intro" exists in both testing and debugging: ambiguity fails closed.
	if course, ok := r.CourseForLesson("intro"); ok {
		t.Errorf("ambiguous lesson should have no owner, got %q", course)
	}

	course, ok := r.CourseForLesson("setup")
	if !ok || course != "testing" {
		t.Errorf("CourseForLesson(setup) = %q, %v; want testing, true", course, ok)
	}

	// Normalization applies to reverse lookups too.
	course, ok = r.CourseForLesson("setup.md")
	if !ok || course != "testing" {
		t.Errorf("CourseForLesson(setup.md) = %q, %v; want testing, true", course, ok)
	}

	if _, ok := r.CourseForLesson("nonexistent"); ok {
		t.Error("unknown lesson should have no owner")
	}

	// README and _index never count as lessons.
	if _, ok := r.CourseForLesson("README"); ok {
		t.Error("README should not be owned as a lesson")
	}
}

func TestWritingPaths(t *testing.T) {
	r := newTestResolver(t)
	got := r.WritingPaths()
	want := []string{"writing/draft", "writing/hello-world", "writing/older"}
	if len(got) != len(want) {
		t.Fatalf("WritingPaths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("WritingPaths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCoursePathsExcludesMarkers(t *testing.T) {
	r := newTestResolver(t)
	for _, key := range r.CoursePaths() {
		if key == "courses/testing/README" || key == "courses/testing/_index" {
			t.Errorf("CoursePaths should exclude %q", key)
		}
	}
	found := false
	for _, key := range r.CoursePaths() {
		if key == "courses/debugging/breakpts" {
			found = true
		}
	}
	if !found {
		t.Error("CoursePaths should include lesson keys")
	}
}

func TestFrontmatterValidate(t *testing.T) {
	tests := []struct {
		name    string
		fm      Frontmatter
		wantErr bool
	}{
		{"valid", Frontmatter{Title: "T", Description: "D"}, false},
		{"missing title", Frontmatter{Description: "D"}, true},
		{"missing description", Frontmatter{Title: "T"}, true},
		{"blank title", Frontmatter{Title: "  ", Description: "D"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fm.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrontmatterPublishedDefault(t *testing.T) {
	if !(Frontmatter{}).IsPublished() {
		t.Error("unset published should default to true")
	}
	f := false
	if (Frontmatter{Published: &f}).IsPublished() {
		t.Error("published: false should be unpublished")
	}
}

func TestPostIndex(t *testing.T) {
	r := newTestResolver(t)
	posts, err := r.PostIndex()
	if err != nil {
		t.Fatalf("PostIndex failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("PostIndex returned %d posts, want 2 (draft excluded)", len(posts))
	}
	if posts[0].Slug != "hello-world" || posts[1].Slug != "older" {
		t.Errorf("PostIndex order = [%s %s], want newest first", posts[0].Slug, posts[1].Slug)
	}
	if posts[0].Title != "Hello World" || posts[0].Description != "A first post" {
		t.Errorf("PostIndex[0] = %+v", posts[0])
	}
}

func TestCourseIndex(t *testing.T) {
	r := newTestResolver(t)
	courses, err := r.CourseIndex()
	if err != nil {
		t.Fatalf("CourseIndex failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("CourseIndex returned %d courses, want 2 (no-readme excluded)", len(courses))
	}
	if courses[0].Slug != "debugging" || courses[1].Slug != "testing" {
		t.Errorf("CourseIndex slugs = [%s %s]", courses[0].Slug, courses[1].Slug)
	}
	if courses[1].Title != "Testing Fundamentals" {
		t.Errorf("course title = %q, want Testing Fundamentals", courses[1].Title)
	}
}
