package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/feed"
	"github.com/umputun/newsdeck/pkg/session"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session
//go:generate moq -out mocks/history.go -pkg mocks -skip-ensure -fmt goimports . History
//go:generate moq -out mocks/overrides.go -pkg mocks -skip-ensure -fmt goimports . Overrides

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	session   Session
	history   History
	overrides Overrides
	generator *feed.Generator
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Session is the feed owner the server exposes
type Session interface {
	Load(ctx context.Context) error
	State() session.State
	Sources() []domain.Source
	SourcesByCategory() map[string][]domain.Source
	ToggleSource(ctx context.Context, source domain.Source, enabled bool)
	Subscribe(ctx context.Context) <-chan session.State
}

// History records visited articles, optional
type History interface {
	RecordVisit(ctx context.Context, url string) error
}

// Overrides resets stored source flags, optional
type Overrides interface {
	DeleteOverride(ctx context.Context, publisherID string) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
	GetLayout() domain.Metrics
}

// New initializes a new server instance, history and overrides may be nil
func New(cfg ConfigProvider, sess Session, history History, overrides Overrides, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		session:   sess,
		history:   history,
		overrides: overrides,
		generator: feed.NewGenerator(cfg.GetBaseURL()),
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		BaseContext:       func(net.Listener) context.Context { return ctx }, // ends event streams on shutdown
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdeck", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB, requests are tiny json bodies
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /feed", s.feedHandler)
		r.HandleFunc("GET /feed/events", s.feedEventsHandler)
		r.HandleFunc("POST /feed/load", s.loadHandler)
		r.HandleFunc("GET /sources", s.sourcesHandler)
		r.HandleFunc("PUT /sources/{id}", s.toggleSourceHandler)
		r.HandleFunc("DELETE /sources/{id}/override", s.resetSourceHandler)
		r.HandleFunc("POST /visits", s.visitHandler)
	})

	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
}
