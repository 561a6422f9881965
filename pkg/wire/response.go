package wire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// serverName is the default Server response header value.
const serverName = "weblet/1.0"

// Response is one fully materialized HTTP response. Headers keep their
// insertion order on the wire; names are unique (Set replaces in place).
// A Response is built once per request and never reused.
type Response struct {
	Status     int    // 100–599
	StatusText string // e.g. "OK"
	Version    string // defaults to "HTTP/1.1" when empty
	Body       []byte

	fields []Field
}

// Build constructs a response from a status, status text, body, and any
// number of headers, preserving the given header order. It is the
// convenience constructor handlers and middleware are expected to use.
func Build(status int, statusText string, body []byte, fields ...Field) *Response {
	r := &Response{
		Status:     status,
		StatusText: statusText,
		Body:       body,
	}
	for _, f := range fields {
		r.SetHeader(f.Name, f.Value)
	}
	return r
}

// SetHeader sets a header, replacing an existing one of the same name
// (compared case-insensitively) in place so serialization order is stable.
func (r *Response) SetHeader(name, value string) {
	for i, f := range r.fields {
		if strings.EqualFold(f.Name, name) {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// GetHeader returns the value of the named header, or "" if absent.
func (r *Response) GetHeader(name string) string {
	for _, f := range r.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

// Fields returns the headers in serialization order. The returned slice
// is the response's own backing storage and must not be modified.
func (r *Response) Fields() []Field {
	return r.fields
}

// Encode writes the response to w: status line, headers in stored order,
// blank line, body.
//
// Content-Length is always set to the body's byte length, overriding any
// caller-supplied value, so the wire framing cannot lie about the body.
// Server and Connection headers are injected when the caller set none.
func (r *Response) Encode(w io.Writer) error {
	version := r.Version
	if version == "" {
		version = "HTTP/1.1"
	}

	r.SetHeader("Content-Length", strconv.Itoa(len(r.Body)))
	if r.GetHeader("Server") == "" {
		r.SetHeader("Server", serverName)
	}
	if r.GetHeader("Connection") == "" {
		r.SetHeader("Connection", "close")
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s %d %s\r\n", version, r.Status, r.StatusText); err != nil {
		return err
	}
	for _, f := range r.fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, f.Value); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\r\n"); err != nil {
		return err
	}
	if _, err := bw.Write(r.Body); err != nil {
		return err
	}
	return bw.Flush()
}
