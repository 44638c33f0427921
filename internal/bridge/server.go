// Package bridge serves the web view: the event stream, health and metrics
// endpoints, and the optional static front-end.
package bridge

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/appmenu/internal/events"
	"github.com/example/appmenu/internal/ipc"
	"github.com/example/appmenu/internal/logging"
	"github.com/example/appmenu/internal/metrics"
	"github.com/example/appmenu/internal/security"
)

const (
	listenerBuffer = 32
	writeTimeout   = 10 * time.Second
	pongTimeout    = 60 * time.Second
	pingInterval   = 50 * time.Second
)

//go:embed about.html
var aboutPage []byte

// Options configures a Server.
type Options struct {
	Endpoint    ipc.Endpoint
	Token       string
	FrontendDir string
	Events      *events.Broadcaster
	Metrics     *metrics.Metrics
}

// Server is the HTTP side of the presentation layer.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	router   chi.Router
}

// New constructs a Server. Events must be non-nil.
func New(opts Options) (*Server, error) {
	if opts.Events == nil {
		return nil, errors.New("bridge requires an event broadcaster")
	}
	if opts.Endpoint.Address == "" {
		opts.Endpoint = ipc.NewEndpoint("")
	}

	s := &Server{
		opts: opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/healthz", s.handleHealth)
	router.Get("/events", s.handleEvents)
	if registry := s.opts.Metrics.Registry(); registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	if dir := strings.TrimSpace(s.opts.FrontendDir); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			router.Handle("/*", http.FileServer(http.Dir(dir)))
			return router
		}
		log.Printf("front-end directory %s unavailable; static files disabled", dir)
	}
	router.Get("/about", s.handleAbout)
	return router
}

// Handler exposes the routes for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured endpoint until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.opts.Endpoint.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("bridge listening on %s", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleAbout serves the built-in about page when no front-end is mounted.
func (s *Server) handleAbout(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(aboutPage)
}

func (s *Server) authorized(r *http.Request) bool {
	presented := strings.TrimSpace(r.URL.Query().Get("token"))
	if presented == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			presented = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	return security.TokenMatches(s.opts.Token, presented)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.LogRequest(r)
		next.ServeHTTP(w, r)
	})
}
