package scanner

import (
	"path/filepath"
	"testing"
)

func TestDefaultFilter(t *testing.T) {
	filter := DefaultFilter()

	tests := []struct {
		path     string
		expected bool
	}{
		// Should include
		{"test.js", true},
		{"test.JS", true},
		{"app.tsx", true},
		{"component.vue", true},
		{"page.html", true},
		{"main.go", true},
		{"script.py", true},
		{"index.php", true},
		{filepath.Join("src", "deep", "util.mjs"), true},

		// Should exclude
		{"binary.exe", false},
		{"archive.tar.gz", false},
		{"image.png", false},
		{"noextension", false},
		{"bundle.min.js", false},
		{filepath.Join("node_modules", "lib", "index.js"), false},
		{filepath.Join(".git", "hooks", "pre-commit.py"), false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.Filter(tt.path); got != tt.expected {
				t.Errorf("Filter(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDenyPrecedence(t *testing.T) {
	f := NewFileFilter()
	f.Allow(FilterAny)
	f.Deny(FilterFilename("secret.js"))

	if !f.Filter("normal.js") {
		t.Error("expected normal.js to pass")
	}
	if f.Filter(filepath.Join("dir", "secret.js")) {
		t.Error("expected secret.js to be denied despite the allow-all rule")
	}
}

func TestEmptyFilterDeniesAll(t *testing.T) {
	f := NewFileFilter()
	if f.Filter("anything.js") {
		t.Error("a filter with no allow conditions should deny everything")
	}
}

func TestAllFilesFilter(t *testing.T) {
	f := AllFilesFilter()
	for _, path := range []string{"a.js", "b.exe", "noext", filepath.Join("x", "y.bin")} {
		if !f.Filter(path) {
			t.Errorf("AllFilesFilter should allow %q", path)
		}
	}
}

func TestFilterExtensionsNormalizesDots(t *testing.T) {
	test := FilterExtensions("js", ".ts")
	if !test("a.js") || !test("b.ts") {
		t.Error("extensions with and without leading dot should both match")
	}
	if test("c.go") {
		t.Error("unlisted extension matched")
	}
}

func TestFilterSuffix(t *testing.T) {
	test := FilterSuffix(".min.js")
	if !test("bundle.min.js") || !test("BUNDLE.MIN.JS") {
		t.Error("suffix filter should match case-insensitively")
	}
	if test("bundle.js") {
		t.Error("plain .js should not match the .min.js suffix")
	}
}
