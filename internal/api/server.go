package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dnrgps/dnrgps/pkg/controller"
)

// maxBody caps request bodies. Tables posted to /graphics are the largest.
const maxBody = 32 << 20

// shutdownTimeout bounds how long ListenAndServe waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server serves one controller.
type Server struct {
	Logger *log.Logger

	mu     sync.Mutex
	ctl    *controller.Controller
	router chi.Router
}

// New returns a server for ctl. If logger is nil, log.Default() is used.
func New(ctl *controller.Controller, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		Logger: logger.WithPrefix("api"),
		ctl:    ctl,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.RequestSize(maxBody))

	r.Get("/health", s.health)

	r.Route("/layers", func(r chi.Router) {
		r.Get("/", s.serialized(s.layers))
		r.Get("/all", s.serialized(s.allLayers))
		r.Get("/data", s.serialized(s.layerData))
	})

	r.Get("/graphics", s.serialized(s.graphics))
	r.Post("/graphics", s.serialized(s.addGraphics))

	r.Route("/gps", func(r chi.Router) {
		r.Post("/point", s.serialized(s.drawPoint))
		r.Post("/cep", s.serialized(s.drawCEP))
		r.Delete("/graphics", s.serialized(s.clearAll))
		r.Delete("/graphics/{id}", s.serialized(s.clear))
	})

	r.Post("/display/refresh", s.serialized(s.refresh))
	return r
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// serialized runs h while holding the controller lock.
func (s *Server) serialized(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		h(w, r)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
