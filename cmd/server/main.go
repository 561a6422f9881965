// Command server runs a weblet HTTP server over a document root, with a
// demo JSON route and request logging.
//
// Configuration is layered: built-in defaults, then a YAML config file
// (-config flag, WEBLET_CONFIG, ./config.yaml, /etc/weblet/config.yaml),
// then WEBLET_* environment variables:
//
//	WEBLET_HOST           - listen host (default: localhost)
//	WEBLET_PORT           - listen port (default: 8080)
//	WEBLET_DOCUMENT_ROOT  - static file root (default: ./public)
//	WEBLET_AUTH           - auth type: none, apikey, or jwt (default: none)
//	WEBLET_JWT_SECRET     - HS256 secret for auth type jwt
//	WEBLET_LOG_LEVEL      - debug, info, warn, or error (default: info)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mfadel/weblet/pkg/auth"
	"github.com/mfadel/weblet/pkg/auth/apikey"
	authjwt "github.com/mfadel/weblet/pkg/auth/jwt"
	"github.com/mfadel/weblet/pkg/config"
	"github.com/mfadel/weblet/pkg/observability"
	"github.com/mfadel/weblet/pkg/server"
	"github.com/mfadel/weblet/pkg/wire"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	srv, err := server.New(server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		DocumentRoot: cfg.Static.DocumentRoot,
	},
		server.WithLogger(logger),
		server.WithReadTimeout(cfg.Server.ReadTimeout),
		server.WithWriteTimeout(cfg.Server.WriteTimeout),
		server.WithIndexFile(cfg.Static.IndexFile),
		server.WithListings(cfg.Static.Listings),
		server.WithRecorder(observability.Recorder{}),
	)
	if err != nil {
		return err
	}

	srv.AddMiddleware(server.Logging(logger))

	if err := addAuth(srv, cfg, logger); err != nil {
		return err
	}

	srv.Handle("/api/hello", helloHandler)

	if cfg.Metrics.Enabled {
		srv.Handle(cfg.Metrics.Path, observability.Handler(prometheus.DefaultGatherer))
	}

	// Run until SIGINT/SIGTERM; Shutdown closes the listener and
	// unblocks ListenAndServe.
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	return srv.ListenAndServe()
}

// addAuth wires the configured authenticator chain as halting
// middleware. The metrics path is always bypassed so scrapes keep
// working behind auth.
func addAuth(srv *server.Server, cfg *config.Config, logger *slog.Logger) error {
	var chain *auth.Chain

	switch cfg.Auth.Type {
	case "none":
		return nil
	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			entries = append(entries, apikey.RawKeyEntry{
				Key:      k.Key,
				Identity: auth.Identity{Subject: k.Subject},
			})
		}
		chain = &auth.Chain{
			Authenticators:  []auth.Authenticator{apikey.New(entries)},
			DefaultDecision: auth.No,
		}
	case "jwt":
		authn, err := authjwt.New(authjwt.Config{
			Secret:   cfg.Auth.JWT.Secret,
			Issuer:   cfg.Auth.JWT.Issuer,
			Audience: cfg.Auth.JWT.Audience,
		})
		if err != nil {
			return err
		}
		chain = &auth.Chain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}
	default:
		return fmt.Errorf("unknown auth type %q", cfg.Auth.Type)
	}

	srv.AddMiddleware(auth.Middleware(chain, logger, cfg.Metrics.Path))
	return nil
}

// helloHandler is the demo JSON route.
func helloHandler(req *wire.Request) (*wire.Response, error) {
	payload := map[string]string{
		"message":   "Hello from the API!",
		"method":    req.Method,
		"path":      req.Path,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return wire.Build(200, "OK", body,
		wire.Field{Name: "Content-Type", Value: "application/json"},
	), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
