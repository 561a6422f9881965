package wire

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single request or header line so a hostile
// client cannot grow memory without ever sending a line terminator.
const maxLineBytes = 64 * 1024

// Request is one decoded HTTP request. It is constructed by Decode and
// treated as read-only afterwards: middleware that wants to pass a
// changed request downstream returns a copy (see Clone).
type Request struct {
	Method  string // upper-case HTTP verb as sent by the client
	Path    string // percent-decoded path, query string stripped
	Version string // e.g. "HTTP/1.1"
	Header  Header
	Body    []byte
	Query   map[string]string // later duplicate keys overwrite earlier ones
}

// Clone returns a shallow copy of the request with its own Header and
// Query maps, suitable for middleware that rewrites fields.
func (r *Request) Clone() *Request {
	c := *r
	c.Header = make(Header, len(r.Header))
	for k, v := range r.Header {
		c.Header[k] = v
	}
	c.Query = make(map[string]string, len(r.Query))
	for k, v := range r.Query {
		c.Query[k] = v
	}
	return &c
}

// Decode reads exactly one request from r.
//
// It returns io.EOF if the connection closes before any byte arrives
// (port scanners and health probes do this; it is not an error worth a
// response). Any other malformation is reported as ErrBadRequest, and a
// body shorter than its declared Content-Length as ErrIncompleteBody.
func Decode(r io.Reader) (*Request, error) {
	br := bufio.NewReader(r)

	line, err := readLine(br)
	if err != nil {
		if err == io.EOF && line == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: reading request line: %v", ErrBadRequest, err)
	}

	parts := strings.Fields(line)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: request line %q", ErrBadRequest, line)
	}
	method, target, version := parts[0], parts[1], parts[2]

	path, query, err := splitTarget(target)
	if err != nil {
		return nil, err
	}

	header, err := readHeaders(br)
	if err != nil {
		return nil, err
	}

	body, err := readBody(br, header)
	if err != nil {
		return nil, err
	}

	return &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Header:  header,
		Body:    body,
		Query:   query,
	}, nil
}

// splitTarget separates the request target into a decoded path and the
// decoded query parameters.
func splitTarget(target string) (string, map[string]string, error) {
	rawPath, rawQuery, _ := strings.Cut(target, "?")

	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", nil, fmt.Errorf("%w: path %q: %v", ErrBadRequest, rawPath, err)
	}

	query := make(map[string]string)
	if rawQuery != "" {
		values, err := url.ParseQuery(rawQuery)
		if err != nil {
			return "", nil, fmt.Errorf("%w: query %q: %v", ErrBadRequest, rawQuery, err)
		}
		for key, vv := range values {
			// ParseQuery keeps values in wire order; the last one wins.
			query[key] = vv[len(vv)-1]
		}
	}

	return path, query, nil
}

func readHeaders(br *bufio.Reader) (Header, error) {
	h := make(Header)
	for {
		line, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: reading headers: %v", ErrBadRequest, err)
		}
		if line == "" {
			return h, nil
		}
		i := strings.IndexByte(line, ':')
		if i < 1 {
			return nil, fmt.Errorf("%w: header line %q", ErrBadRequest, line)
		}
		name := strings.ToLower(strings.TrimSpace(line[:i]))
		value := strings.TrimSpace(line[i+1:])
		h[name] = value
	}
}

func readBody(br *bufio.Reader, h Header) ([]byte, error) {
	cl := h.Get("Content-Length")
	if cl == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(cl)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: content-length %q", ErrBadRequest, cl)
	}
	if n == 0 {
		return nil, nil
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, fmt.Errorf("%w: declared %d bytes: %v", ErrIncompleteBody, n, err)
	}
	return body, nil
}

// readLine reads up to the next LF, dropping a trailing CR. A bare LF
// terminator is tolerated the way most servers in the wild tolerate it.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		if b == '\n' {
			s := sb.String()
			return strings.TrimSuffix(s, "\r"), nil
		}
		sb.WriteByte(b)
		if sb.Len() > maxLineBytes {
			return "", fmt.Errorf("line exceeds %d bytes", maxLineBytes)
		}
	}
}
