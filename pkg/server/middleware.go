package server

import (
	"log/slog"

	"github.com/mfadel/weblet/pkg/wire"
)

// Middleware inspects a request before routing. It returns either
// Continue with the request to hand to the next stage (the same value
// or a rewritten copy), or Halt with the response to emit immediately,
// skipping the rest of the chain and all routing.
type Middleware func(*wire.Request) Verdict

// Verdict is the tagged result of one middleware step. Construct it
// with Continue or Halt; the zero value is not valid.
type Verdict struct {
	req    *wire.Request
	resp   *wire.Response
	halted bool
}

// Continue passes req to the next middleware (or to routing, for the
// last one in the chain).
func Continue(req *wire.Request) Verdict {
	return Verdict{req: req}
}

// Halt stops processing and emits resp as the response for this request.
func Halt(resp *wire.Response) Verdict {
	return Verdict{resp: resp, halted: true}
}

// HaltUnauthorized halts with the fixed 401 response.
func HaltUnauthorized() Verdict {
	return Halt(statusResponse(401, "Unauthorized"))
}

// Halted reports whether the verdict stops processing.
func (v Verdict) Halted() bool {
	return v.halted
}

// Request returns the request to pass downstream; nil for a halt.
func (v Verdict) Request() *wire.Request {
	return v.req
}

// Response returns the halt response; nil for a continue.
func (v Verdict) Response() *wire.Response {
	return v.resp
}

// Logging returns middleware that logs every request's method and path.
// It always continues.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(req *wire.Request) Verdict {
		logger.Info("request",
			slog.String("method", req.Method),
			slog.String("path", req.Path),
		)
		return Continue(req)
	}
}
