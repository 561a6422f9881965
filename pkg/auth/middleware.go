package auth

import (
	"log/slog"

	"github.com/mfadel/weblet/pkg/server"
	"github.com/mfadel/weblet/pkg/wire"
)

// Middleware turns an authentication chain into a server middleware.
// Requests whose path is on the bypass list pass through untouched;
// everything else must authenticate or the chain halts with 401 and the
// request never reaches routing.
func Middleware(chain *Chain, logger *slog.Logger, bypassPaths ...string) server.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	bypass := make(map[string]bool, len(bypassPaths))
	for _, p := range bypassPaths {
		bypass[p] = true
	}

	return func(req *wire.Request) server.Verdict {
		if bypass[req.Path] {
			return server.Continue(req)
		}

		result := chain.Authenticate(req)

		if result.Decision != Yes || result.Identity == nil {
			logger.Warn("authentication failed",
				slog.String("method", req.Method),
				slog.String("path", req.Path),
			)
			return server.HaltUnauthorized()
		}

		if result.Identity.Subject == "" {
			logger.Error("authenticator returned identity with empty subject")
			return server.HaltUnauthorized()
		}

		logger.Debug("authentication succeeded",
			slog.String("subject", result.Identity.Subject),
			slog.String("path", req.Path),
		)
		return server.Continue(req)
	}
}
