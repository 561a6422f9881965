package wire

import "strings"

// Header holds request headers with case-insensitive name lookup.
// Names are stored lower-cased; on duplicate names the last value wins.
type Header map[string]string

// Get returns the value for the given header name, or "" if absent.
func (h Header) Get(name string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(name)]
}

// Set stores the value under the lower-cased name, replacing any
// previous value.
func (h Header) Set(name, value string) {
	if h == nil {
		return
	}
	h[strings.ToLower(name)] = value
}

// Has reports whether the header is present.
func (h Header) Has(name string) bool {
	if h == nil {
		return false
	}
	_, ok := h[strings.ToLower(name)]
	return ok
}

// Del removes the header.
func (h Header) Del(name string) {
	if h == nil {
		return
	}
	delete(h, strings.ToLower(name))
}

// Field is a single response header. Response headers keep insertion
// order for serialization, so they are a slice of fields rather than
// a map.
type Field struct {
	Name  string
	Value string
}
