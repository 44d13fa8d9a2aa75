// Package rest exposes the review backend over HTTP/JSON and serves the
// pre-built frontend.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/logging"
	"github.com/dmitrijs2005/codereviewer/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address   string
	users     *services.UserService
	reviews   *services.ReviewService
	staticDir string
	logger    logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, rs *services.ReviewService, staticDir string) *HTTPServer {
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		reviews:   rs,
		staticDir: staticDir,
	}
}

// Routes builds the router. Exposed for tests.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/ping", s.ping)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/review", s.review)
		r.Get("/models", s.listModels)
	})

	r.With(s.authGate).Get("/profile", s.profile)

	r.Get("/*", http.FileServer(http.Dir(s.staticDir)).ServeHTTP)

	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled. It returns only
// after in-flight requests have drained or shutdownTimeout has passed.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	// ErrServerClosed means Shutdown has started; wait for it to drain.
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-stopped

	return nil
}
