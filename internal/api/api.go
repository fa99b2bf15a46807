// Package api provides the HTTP server for ZaloGen.
//
// It renders the persona/offer form, accepts the generate action as an HTML form post or a
// JSON request, and exposes the current Controller state as JSON.
package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BTreeMap/ZaloGen/internal/controller"
	"github.com/BTreeMap/ZaloGen/internal/genai"
)

// Default server configuration constants
const (
	// DefaultServerAddr is the listen address used when none is configured
	DefaultServerAddr = ":8080"
	// DefaultReadHeaderTimeout bounds how long a client may take to send request headers
	DefaultReadHeaderTimeout = 10 * time.Second
	// DefaultShutdownTimeout bounds graceful shutdown, including an in-flight generation
	DefaultShutdownTimeout = 90 * time.Second
)

//go:embed web/index.html
var webFS embed.FS

// Opts holds configuration options for the API server.
type Opts struct {
	Addr string // listen address
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// Server serves the form page and the generation API on top of a Controller.
type Server struct {
	ctrl *controller.Controller
	tmpl *template.Template
	addr string
}

// NewServer creates a Server for ctrl.
func NewServer(ctrl *controller.Controller, opts ...Option) (*Server, error) {
	if ctrl == nil {
		return nil, errors.New("controller is required")
	}
	cfg := Opts{Addr: DefaultServerAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultServerAddr
	}
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Server{ctrl: ctrl, tmpl: tmpl, addr: cfg.Addr}, nil
}

// Run builds the GenAI client, the Controller and the Server, then serves until SIGINT or
// SIGTERM. A GenAI configuration error is returned before anything listens.
func Run(genaiOpts []genai.Option, apiOpts []Option) error {
	gaClient, err := genai.NewClient(genaiOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize GenAI client: %w", err)
	}

	ctrl, err := controller.New(gaClient, controller.WithObserver(func(st controller.State) {
		slog.Debug("Controller state changed", "state", st.Name())
	}))
	if err != nil {
		return fmt.Errorf("failed to initialize controller: %w", err)
	}

	srv, err := NewServer(ctrl, apiOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/generate", s.generateFormHandler)
	mux.HandleFunc("/api/generate", s.generateHandler)
	mux.HandleFunc("/api/state", s.stateHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	return loggingMiddleware(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("ZaloGen API server listening", "addr", s.addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown failed", "error", err)
		return err
	}
	return nil
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
