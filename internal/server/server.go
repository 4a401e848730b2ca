package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/frontkit/internal/logger"
)

// Config describes where a server listens.
type Config struct {
	Host       string
	Port       int
	StrictPort bool
	// Base is the public path reported in the URLs.
	Base string
}

// Option customizes [NewServer].
type Option func(*server)

// WithOnShutdown registers fn to run when shutdown starts. Long-lived
// responses such as event streams must be ended there, or graceful shutdown
// waits for them until it times out.
func WithOnShutdown(fn func()) Option {
	return func(s *server) {
		s.httpServer.server.RegisterOnShutdown(fn)
	}
}

type server struct {
	name       string
	httpServer *httpServer
	urls       URLs
	logger     *logger.Logger

	shutdownOnce sync.Once
}

// NewServer binds the listener for cfg and returns a [Server] serving
// handler. name labels the log lines ("dev", "preview").
func NewServer(name string, handler http.Handler, cfg Config, logger *logger.Logger, opts ...Option) (Server, error) {
	logger.Info().Str("server", name).Msg("creating new server...")

	ln, err := Listen(cfg.Host, cfg.Port, cfg.StrictPort)
	if err != nil {
		return nil, err
	}
	port := ln.Addr().(*net.TCPAddr).Port
	if port != cfg.Port && cfg.Port != 0 {
		logger.Warn().Int("requested", cfg.Port).Int("port", port).Msg("port is in use, trying another one")
	}

	s := &server{
		name: name,
		httpServer: &httpServer{
			server: &http.Server{
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			},
			listener: ln,
			logger:   logger,
		},
		urls:   ResolveURLs(cfg.Host, port, cfg.Base),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *server) URLs() URLs {
	return s.urls
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()
	s.logger.Info().Str("server", s.name).Str("local", s.urls.Local).Strs("network", s.urls.Network).Msg("Launching HTTP server")

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	s.Shutdown()
	<-serveErr
	s.logger.Info().Str("server", s.name).Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(s.httpServer.Shutdown)
}
