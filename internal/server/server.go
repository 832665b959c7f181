// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/OgnjenAdzic28/portfolio/internal/site"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	*http.Server
	startupTime time.Time
}

type router struct {
	hub            *Hub
	acceptedOrigin []string
	accessLog      io.Writer
	startupTime    time.Time
}

// Option configures the router of a Server.
type Option func(*router)

// WithLiveReload serves the hub at /ws and injects the reload script into pages.
func WithLiveReload(hub *Hub) Option {
	return func(r *router) {
		r.hub = hub
	}
}

// WithAcceptedOrigins sets the origins allowed to call the JSON API.
func WithAcceptedOrigins(origins []string) Option {
	return func(r *router) {
		r.acceptedOrigin = origins
	}
}

// WithAccessLog redirects the request log, stderr by default.
func WithAccessLog(out io.Writer) Option {
	return func(r *router) {
		r.accessLog = out
	}
}

func NewServer(pages *site.Site, port int, opts ...Option) Server {
	startupTime := time.Now()
	opts = append([]Option{func(r *router) { r.startupTime = startupTime }}, opts...)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(pages, opts...),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return Server{server, startupTime}
}

// NewRouter builds the handler tree of the site.
func NewRouter(pages *site.Site, opts ...Option) *chi.Mux {
	rt := router{
		acceptedOrigin: pages.Config().AcceptedOrigins,
		accessLog:      os.Stderr,
		startupTime:    time.Now(),
	}
	for _, opt := range opts {
		opt(&rt)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestIDMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(ColoredHTTPLoggingMiddleware(rt.accessLog))
	chiRouter.Use(middleware.StripSlashes)
	chiRouter.Use(corsMiddleware(rt.acceptedOrigin))

	handlers := initializeHandlers(pages, rt.startupTime)
	setupAPIRoutes(chiRouter, handlers)
	setupStaticRoutes(chiRouter)
	setupPageRoutes(chiRouter, handlers, rt.hub)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: http://localhost%s", s.Addr)
	err := s.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	errChannel <- err
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s Server) Run(ctx context.Context) error {
	errChannel := make(chan error, 1)
	go s.Start(errChannel)

	select {
	case err := <-errChannel:
		return err
	case <-ctx.Done():
		s.ShutdownGracefully(shutdownTimeout)
		return <-errChannel
	}
}
