package scanner

import (
	"path/filepath"
	"strings"
)

// FilterCondition is one allow or deny rule in a file filter.
type FilterCondition struct {
	Test  func(path string) bool
	Allow bool
}

// FileFilter decides which files enter the analysis pipeline.
type FileFilter struct {
	conditions []*FilterCondition
}

// NewFileFilter creates an empty FileFilter.
func NewFileFilter() *FileFilter {
	return &FileFilter{conditions: make([]*FilterCondition, 0)}
}

// Allow adds an allow condition.
func (f *FileFilter) Allow(test func(path string) bool) {
	f.conditions = append(f.conditions, &FilterCondition{Test: test, Allow: true})
}

// Deny adds a deny condition. Any matching deny takes precedence over every
// allow.
func (f *FileFilter) Deny(test func(path string) bool) {
	f.conditions = append(f.conditions, &FilterCondition{Test: test, Allow: false})
}

// Filter returns true if the path should be analyzed.
func (f *FileFilter) Filter(path string) bool {
	allowed := false
	for _, cond := range f.conditions {
		if cond.Allow && allowed {
			continue // a single allow suffices
		}
		if cond.Test(path) {
			if !cond.Allow {
				return false
			}
			allowed = true
		}
	}
	return allowed
}

// DefaultExtensions are the source file types scanned when the configuration
// does not override them. Extraction itself is language-agnostic; this list
// just keeps the walk away from binaries and build output.
var DefaultExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs",
	".vue", ".svelte", ".html", ".go", ".py", ".rb", ".php", ".java",
}

// FilterAny always returns true.
func FilterAny(string) bool { return true }

// FilterFilename creates a filter that matches a specific base filename.
func FilterFilename(filename string) func(string) bool {
	return func(path string) bool {
		return filepath.Base(path) == filename
	}
}

// FilterExtensions creates a filter for a set of file extensions.
func FilterExtensions(exts ...string) func(string) bool {
	extMap := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extMap[strings.ToLower(ext)] = true
	}
	return func(path string) bool {
		return extMap[strings.ToLower(filepath.Ext(path))]
	}
}

// DefaultFilter allows the default source extensions and skips dependency
// and VCS directories.
func DefaultFilter() *FileFilter {
	f := NewFileFilter()
	f.Allow(FilterExtensions(DefaultExtensions...))
	f.Deny(inDirectory("node_modules"))
	f.Deny(inDirectory(".git"))
	f.Deny(FilterSuffix(".min.js"))
	return f
}

// FilterSuffix creates a filter matching a literal path suffix, for compound
// extensions like .min.js that filepath.Ext cannot see.
func FilterSuffix(suffix string) func(string) bool {
	suffix = strings.ToLower(suffix)
	return func(path string) bool {
		return strings.HasSuffix(strings.ToLower(path), suffix)
	}
}

// AllFilesFilter allows every file.
func AllFilesFilter() *FileFilter {
	f := NewFileFilter()
	f.Allow(FilterAny)
	return f
}

// inDirectory matches paths with the named directory as a component.
func inDirectory(name string) func(string) bool {
	return func(path string) bool {
		for _, part := range strings.Split(filepath.ToSlash(path), "/") {
			if part == name {
				return true
			}
		}
		return false
	}
}
