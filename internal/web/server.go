package web

import (
	"context"
	"crypto/rand"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/content"
	"github.com/anoonan/folio/internal/render"
	"github.com/anoonan/folio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Templates returns the page templates with the "templates/" prefix stripped.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the embedded stylesheet tree with the "static/" prefix stripped.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewHandler builds the routed handler for the portfolio site.
func NewHandler(cat *content.Catalog, cfg *config.Config, logger *slog.Logger, version string) http.Handler {
	h := &Handlers{
		cat:      cat,
		renderer: NewRenderer(Templates(), logger),
		pages: &Pages{
			Catalog:   cat,
			Blocks:    render.New("/assets/"),
			Links:     view.QueryLinker{Base: "/"},
			Version:   version,
			StyleHref: "/static/style.css",
		},
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(securityHeaders)

	r.Get("/", h.HandleIndex)
	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", h.HandleAPIProjects)
		r.Get("/projects/{id}", h.HandleAPIProject)
		r.Get("/experiences", h.HandleAPIExperiences)
		r.Get("/experiences/{id}", h.HandleAPIExperience)
		r.Get("/categories", h.HandleAPICategories)
		r.Get("/about", h.HandleAPIAbout)
		r.Get("/documents", h.HandleAPIDocuments)
		r.NotFound(h.HandleAPINotFound)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(Static())))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.Dir(cfg.AssetsDir))))

	r.NotFound(h.HandleNotFound)

	return r
}

// NewServer creates and configures the HTTP server for the portfolio site.
func NewServer(cat *content.Catalog, cfg *config.Config, logger *slog.Logger, version string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           NewHandler(cat, cfg, logger, version),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFrom returns the request id stored by the requestID middleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags every request with a ULID, reusing an inbound X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// accessLog logs one line per request after it completes.
func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"request_id", RequestIDFrom(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		})
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
// frame-src allows the same-origin PDF viewer on the Resume and Thesis tabs.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-src 'self'; frame-ancestors 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and shuts it down gracefully on SIGINT/SIGTERM
// or when ctx is cancelled.
func Run(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("folio running", "url", "http://"+srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
