package content

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const (
	writingDir = "writing"
	coursesDir = "courses"
)

// NewResolver scans fsys once and builds the immutable registries. Writing
// posts live at writing/<slug>.md; course files at courses/<course>/<file>.md.
// No entries are added or removed after construction.
func NewResolver(fsys fs.FS) (*Resolver, error) {
	r := &Resolver{
		fsys:    fsys,
		writing: make(map[string]*entry),
		courses: make(map[string]*entry),
	}

	files, err := listMarkdown(fsys, writingDir)
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		key := "writing/" + strings.TrimSuffix(name, ".md")
		r.writing[key] = &entry{path: writingDir + "/" + name, key: key}
	}

	dirs, err := fs.ReadDir(fsys, coursesDir)
	if err != nil {
		if isNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("content: scan %s: %w", coursesDir, err)
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		course := d.Name()
		files, err := listMarkdown(fsys, coursesDir+"/"+course)
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			key := "courses/" + course + "/" + strings.TrimSuffix(name, ".md")
			r.courses[key] = &entry{path: coursesDir + "/" + course + "/" + name, key: key}
		}
	}
	return r, nil
}

func listMarkdown(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: scan %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// WritingPaths returns every registered writing key, sorted, for enumeration
// by static-generation collaborators.
func (r *Resolver) WritingPaths() []string {
	return sortedKeys(r.writing, func(string) bool { return true })
}

// CoursePaths returns every registered lesson key, sorted. Contents pages and
// readmes are excluded: lesson routes are generated from this list, while
// course routes come from the course index.
func (r *Resolver) CoursePaths() []string {
	return sortedKeys(r.courses, func(key string) bool {
		file := key[strings.LastIndex(key, "/")+1:]
		return file != "README" && file != "_index"
	})
}

func sortedKeys(reg map[string]*entry, keep func(string) bool) []string {
	keys := make([]string, 0, len(reg))
	for k := range reg {
		if keep(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
