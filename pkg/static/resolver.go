// Package static resolves URL paths to files under a document root.
//
// The document root is the security boundary: any request whose
// canonical target is not a descendant of the canonical root is refused
// with wire.ErrForbiddenPath, before any file I/O happens.
package static

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfadel/weblet/pkg/wire"
)

// Content is a resolved static resource: the full body and the content
// type detected from the file extension (or text/html for listings).
type Content struct {
	Data []byte
	Type string
}

// Resolver serves files under a single document root.
type Resolver struct {
	root     string // absolute, symlinks resolved
	index    string
	listings bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithIndexFile sets the file served when a directory is requested.
// Default: index.html.
func WithIndexFile(name string) Option {
	return func(r *Resolver) { r.index = name }
}

// WithListings enables or disables generated directory listings.
// Default: enabled.
func WithListings(enabled bool) Option {
	return func(r *Resolver) { r.listings = enabled }
}

// NewResolver creates a resolver rooted at root, creating the directory
// if it does not exist. The root is canonicalized once here; requests
// are checked against the canonical form.
func NewResolver(root string, opts ...Option) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving document root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating document root: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("canonicalizing document root: %w", err)
	}

	r := &Resolver{
		root:     canonical,
		index:    "index.html",
		listings: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Root returns the canonical document root.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve maps a decoded URL path to content under the document root.
//
// Escaping the root yields wire.ErrForbiddenPath; a missing target
// yields wire.ErrNotFound. Directories serve their index file when one
// exists, otherwise a generated listing (when listings are enabled).
func (r *Resolver) Resolve(urlPath string) (*Content, error) {
	target, err := r.locate(urlPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, wire.ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return nil, wire.ErrForbiddenPath
	case err != nil:
		return nil, err
	}

	if info.IsDir() {
		return r.serveDir(urlPath, target)
	}
	return r.serveFile(target)
}

// locate joins the request path onto the root and verifies the result,
// after cleaning and symlink resolution, is still inside the root.
func (r *Resolver) locate(urlPath string) (string, error) {
	rel := strings.TrimPrefix(urlPath, "/")
	target := filepath.Join(r.root, filepath.FromSlash(rel))

	if !r.contains(target) {
		return "", wire.ErrForbiddenPath
	}

	// A contained-looking path may still be a symlink pointing outside
	// the root; re-check the canonical form when the target exists.
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return target, nil
		}
		if errors.Is(err, os.ErrPermission) {
			return "", wire.ErrForbiddenPath
		}
		return "", err
	}
	if !r.contains(resolved) {
		return "", wire.ErrForbiddenPath
	}
	return resolved, nil
}

func (r *Resolver) contains(path string) bool {
	return path == r.root || strings.HasPrefix(path, r.root+string(os.PathSeparator))
}

func (r *Resolver) serveFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, wire.ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return nil, wire.ErrForbiddenPath
	case err != nil:
		return nil, err
	}
	return &Content{Data: data, Type: contentTypeFor(path)}, nil
}

func (r *Resolver) serveDir(urlPath, dir string) (*Content, error) {
	index := filepath.Join(dir, r.index)
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		return r.serveFile(index)
	}
	if !r.listings {
		return nil, wire.ErrNotFound
	}
	return r.listing(urlPath, dir)
}
