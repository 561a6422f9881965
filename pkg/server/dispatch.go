package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/mfadel/weblet/pkg/wire"
)

// handleConn serves exactly one request on c and closes it. It runs on
// its own goroutine; nothing it does may affect other connections.
func (s *Server) handleConn(c net.Conn) {
	defer c.Close()

	if s.recorder != nil {
		s.recorder.ConnOpened()
		defer s.recorder.ConnClosed()
	}

	start := time.Now()

	if s.readTimeout > 0 {
		c.SetReadDeadline(time.Now().Add(s.readTimeout))
	}

	req, err := wire.Decode(c)
	var resp *wire.Response
	switch {
	case err == nil:
		resp = s.dispatch(req)
	case errors.Is(err, io.EOF):
		// Connection opened and closed without a request; nothing to answer.
		return
	default:
		s.logger.Debug("decode failed", "remote", c.RemoteAddr().String(), "error", err)
		resp = statusResponse(400, "Bad Request")
	}

	if s.recorder != nil {
		method := "-"
		if req != nil {
			method = req.Method
		}
		s.recorder.ObserveRequest(method, resp.Status, time.Since(start))
	}

	if s.writeTimeout > 0 {
		c.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
	if err := resp.Encode(c); err != nil {
		// Best-effort write; the client may already be gone.
		s.logger.Debug("write failed", "remote", c.RemoteAddr().String(), "error", err)
	}
}

// dispatch runs the middleware chain, routing, and static resolution for
// one decoded request. Panics anywhere in the pipeline become a 500; a
// panic on one connection never takes down the server.
func (s *Server) dispatch(req *wire.Request) (resp *wire.Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while handling request",
				"method", req.Method, "path", req.Path, "panic", r)
			resp = statusResponse(500, "Internal Server Error")
		}
	}()

	for _, mw := range s.middleware {
		v := mw(req)
		if v.halted {
			return v.resp
		}
		req = v.req
	}

	if handler, ok := s.routes.Resolve(req.Method, req.Path); ok {
		r, err := handler(req)
		if err != nil {
			s.logger.Error("handler failed",
				"method", req.Method, "path", req.Path, "error", err)
			return statusResponse(500, "Internal Server Error")
		}
		return r
	}

	content, err := s.static.Resolve(req.Path)
	switch {
	case err == nil:
		return wire.Build(200, "OK", content.Data,
			wire.Field{Name: "Content-Type", Value: content.Type})
	case errors.Is(err, wire.ErrForbiddenPath):
		return statusResponse(403, "Forbidden")
	case errors.Is(err, wire.ErrNotFound):
		// Fall through to 404.
	default:
		s.logger.Error("static resolution failed", "path", req.Path, "error", err)
		return statusResponse(500, "Internal Server Error")
	}

	return statusResponse(404, "Not Found")
}

// statusResponse builds the minimal plain-text response for a status.
func statusResponse(status int, text string) *wire.Response {
	body := fmt.Sprintf("%d %s\n", status, text)
	return wire.Build(status, text, []byte(body),
		wire.Field{Name: "Content-Type", Value: "text/plain; charset=utf-8"})
}
