package static

import (
	"os"
	"path/filepath"
	"strings"

	"particle-wui/core/utils"
)

// IndexFile is served for the root URI.
const IndexFile = "index.html"

// Router maps request URIs to files under a content root.
// It holds no mutable state and is safe for concurrent use.
type Router struct {
	root string
}

// NewRouter anchors the content root at processDir/contentRoot.
// Symlinks in the root itself are resolved when it exists.
func NewRouter(processDir, contentRoot string) *Router {
	root := filepath.Clean(filepath.Join(processDir, contentRoot))
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &Router{root: root}
}

// Root returns the absolute content root.
func (r *Router) Root() string {
	return r.root
}

// Route returns the handler for a raw request URI, or nil when nothing should
// be served. The query and fragment are dropped before routing.
func (r *Router) Route(uri string) *FileHandler {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	return r.RoutePath(uri)
}

// RoutePath is Route for an already decoded path. Every byte names the file,
// so an escaped '?' or '#' stays part of the name.
func (r *Router) RoutePath(uri string) *FileHandler {
	if uri == "/" {
		return &FileHandler{Path: filepath.Join(r.root, IndexFile)}
	}

	candidate := filepath.Join(r.root, filepath.FromSlash(uri))
	if !utils.Within(r.root, candidate) {
		return nil
	}

	if _, err := os.Stat(candidate); err != nil {
		return nil
	}

	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil || !utils.Within(r.root, resolved) {
		return nil
	}

	return &FileHandler{Path: resolved}
}
