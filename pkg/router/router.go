// Package router maps (method, exact path) pairs to handlers.
package router

import "github.com/mfadel/weblet/pkg/wire"

// Handler produces the response for a request. A non-nil error (or a
// panic) is converted by the dispatcher into a 500 response.
type Handler func(*wire.Request) (*wire.Response, error)

type routeKey struct {
	method string
	path   string
}

// Table is an exact-match route table. Routes are registered before the
// server starts and must not be added concurrently with active traffic;
// lookups during traffic are read-only and need no locking.
type Table struct {
	routes map[routeKey]Handler
}

// New returns an empty route table.
func New() *Table {
	return &Table{routes: make(map[routeKey]Handler)}
}

// Add registers a handler for an exact method and path. Registering the
// same pair again replaces the previous handler: the last registration
// wins.
func (t *Table) Add(method, path string, h Handler) {
	t.routes[routeKey{method: method, path: path}] = h
}

// Handle registers a GET handler for the path.
func (t *Table) Handle(path string, h Handler) {
	t.Add("GET", path, h)
}

// Resolve returns the handler for an exact method+path match. A known
// path with a different method is a miss, indistinguishable from an
// unknown path; both fall through to static file resolution.
func (t *Table) Resolve(method, path string) (Handler, bool) {
	h, ok := t.routes[routeKey{method: method, path: path}]
	return h, ok
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}
