package static

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mfadel/weblet/pkg/wire"
)

// newTestRoot builds a document root:
//
//	about.txt
//	data.bin
//	docs/guide.html
//	site/index.html
func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "about.txt"), "about page")
	writeFile(t, filepath.Join(root, "data.bin"), "\x00\x01\x02")
	writeFile(t, filepath.Join(root, "docs", "guide.html"), "<h1>guide</h1>")
	writeFile(t, filepath.Join(root, "site", "index.html"), "<h1>site</h1>")

	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newResolver(t *testing.T, root string, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(root, opts...)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestResolveFile(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	content, err := r.Resolve("/about.txt")
	if err != nil {
		t.Fatalf("Resolve(/about.txt) error = %v", err)
	}
	if string(content.Data) != "about page" {
		t.Errorf("Data = %q, want \"about page\"", content.Data)
	}
	if content.Type != "text/plain" {
		t.Errorf("Type = %q, want \"text/plain\"", content.Type)
	}
}

func TestResolveUnknownExtension(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	content, err := r.Resolve("/data.bin")
	if err != nil {
		t.Fatalf("Resolve(/data.bin) error = %v", err)
	}
	if content.Type != "application/octet-stream" {
		t.Errorf("Type = %q, want \"application/octet-stream\"", content.Type)
	}
}

func TestResolveMissing(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	_, err := r.Resolve("/missing.txt")
	if !errors.Is(err, wire.ErrNotFound) {
		t.Errorf("Resolve(/missing.txt) error = %v, want ErrNotFound", err)
	}
}

func TestResolveTraversalForbidden(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	paths := []string{
		"/../../etc/passwd",
		"/../secret",
		"/docs/../../outside",
	}
	for _, p := range paths {
		_, err := r.Resolve(p)
		if !errors.Is(err, wire.ErrForbiddenPath) {
			t.Errorf("Resolve(%q) error = %v, want ErrForbiddenPath", p, err)
		}
	}
}

// Dot segments that stay inside the root are legitimate.
func TestResolveInternalDotDot(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	content, err := r.Resolve("/docs/../about.txt")
	if err != nil {
		t.Fatalf("Resolve(/docs/../about.txt) error = %v", err)
	}
	if string(content.Data) != "about page" {
		t.Errorf("Data = %q, want \"about page\"", content.Data)
	}
}

func TestResolveSymlinkEscapeForbidden(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.txt"), "secret")

	root := newTestRoot(t)
	if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	r := newResolver(t, root)
	_, err := r.Resolve("/link.txt")
	if !errors.Is(err, wire.ErrForbiddenPath) {
		t.Errorf("Resolve(/link.txt) error = %v, want ErrForbiddenPath", err)
	}
}

func TestResolveDirectoryWithIndex(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	content, err := r.Resolve("/site")
	if err != nil {
		t.Fatalf("Resolve(/site) error = %v", err)
	}
	if string(content.Data) != "<h1>site</h1>" {
		t.Errorf("Data = %q, want index.html contents", content.Data)
	}
	if content.Type != "text/html" {
		t.Errorf("Type = %q, want \"text/html\"", content.Type)
	}
}

func TestResolveCustomIndexFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "home.html"), "<h1>home</h1>")

	r := newResolver(t, root, WithIndexFile("home.html"))
	content, err := r.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve(/) error = %v", err)
	}
	if string(content.Data) != "<h1>home</h1>" {
		t.Errorf("Data = %q, want custom index contents", content.Data)
	}
}

func TestResolveDirectoryListing(t *testing.T) {
	r := newResolver(t, newTestRoot(t))

	content, err := r.Resolve("/docs")
	if err != nil {
		t.Fatalf("Resolve(/docs) error = %v", err)
	}
	if content.Type != "text/html" {
		t.Errorf("Type = %q, want \"text/html\"", content.Type)
	}

	html := string(content.Data)
	if !strings.Contains(html, `<a href="guide.html">guide.html</a>`) {
		t.Errorf("listing missing file link:\n%s", html)
	}
	if !strings.Contains(html, `<a href="../">..</a>`) {
		t.Errorf("listing missing parent link:\n%s", html)
	}
}

func TestResolveRootListingHasNoParentLink(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := newResolver(t, root)
	content, err := r.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve(/) error = %v", err)
	}

	html := string(content.Data)
	if strings.Contains(html, `href="../"`) {
		t.Errorf("root listing has a parent link:\n%s", html)
	}
	if !strings.Contains(html, `<a href="a.txt">a.txt</a>`) {
		t.Errorf("root listing missing file entry:\n%s", html)
	}
	// Directories link with a trailing slash.
	if !strings.Contains(html, `<a href="sub/">sub/</a>`) {
		t.Errorf("root listing missing directory entry:\n%s", html)
	}
}

func TestResolveListingEscapesNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "<script>.txt"), "x")

	r := newResolver(t, root)
	content, err := r.Resolve("/")
	if err != nil {
		t.Fatalf("Resolve(/) error = %v", err)
	}
	if strings.Contains(string(content.Data), "<script>") {
		t.Errorf("listing leaks unescaped HTML:\n%s", content.Data)
	}
}

func TestResolveListingsDisabled(t *testing.T) {
	r := newResolver(t, newTestRoot(t), WithListings(false))

	_, err := r.Resolve("/docs")
	if !errors.Is(err, wire.ErrNotFound) {
		t.Errorf("Resolve(/docs) error = %v, want ErrNotFound", err)
	}
}

func TestNewResolverCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "public")

	r := newResolver(t, root)
	if _, err := os.Stat(root); err != nil {
		t.Errorf("document root not created: %v", err)
	}
	if r.Root() == "" {
		t.Error("Root() is empty")
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"index.html", "text/html"},
		{"style.CSS", "text/css"},
		{"app.js", "application/javascript"},
		{"photo.jpeg", "image/jpeg"},
		{"archive.tar.gz", "application/gzip"},
		{"noext", "application/octet-stream"},
		{"weird.xyz", "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := contentTypeFor(tc.path); got != tc.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
