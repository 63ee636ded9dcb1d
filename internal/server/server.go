// Package server serves the generated documents straight from the CMS so
// they can be previewed without writing anything to disk.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Paintersrp/modular/internal/feed"
	"github.com/Paintersrp/modular/internal/graph"
	"github.com/Paintersrp/modular/internal/logger"
)

const (
	cacheControl    = "public, max-age=3600"
	shutdownTimeout = 5 * time.Second
)

// Config holds what each route needs to render its document.
type Config struct {
	Site    feed.Site
	Graph   graph.Options
	Collect feed.CollectOptions
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	src feed.Source
	cfg Config
	log *zap.SugaredLogger
}

func New(src feed.Source, cfg Config) *Server {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Server{src: src, cfg: cfg, log: logger.Named("server")}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.health)
	r.Get("/"+feed.RSSName, s.rss)
	r.Get("/"+feed.AtomName, s.atom)
	r.Get("/"+feed.SitemapName, s.sitemap)
	r.Get("/graph/graph-data.json", s.graph)

	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) rss(w http.ResponseWriter, r *http.Request) {
	posts, err := s.src.FetchAllPosts(r.Context(), s.cfg.Collect.Locale)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := feed.RSS(s.cfg.Site, posts, s.cfg.Now())
	s.xml(w, r, body, err)
}

func (s *Server) atom(w http.ResponseWriter, r *http.Request) {
	posts, err := s.src.FetchAllPosts(r.Context(), s.cfg.Collect.Locale)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := feed.Atom(s.cfg.Site, posts, s.cfg.Now())
	s.xml(w, r, body, err)
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	content, err := feed.Collect(r.Context(), s.src, s.cfg.Collect)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := feed.Sitemap(s.cfg.Site, content, s.cfg.Now())
	s.xml(w, r, body, err)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.Graph
	opts.Locale = s.cfg.Collect.Locale

	doc, err := graph.Generate(r.Context(), s.src, opts, s.cfg.Now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := graph.Encode(doc)
	if err != nil {
		s.internal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) xml(w http.ResponseWriter, r *http.Request, body []byte, err error) {
	if err != nil {
		s.internal(w, r, err)
		return
	}
	w.Header().Set("Content-Type", feed.ContentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// fail reports an upstream CMS failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Errorw("content fetch failed",
		logger.FieldEndpoint, r.URL.Path,
		logger.FieldError, err,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
	http.Error(w, "failed to fetch content", http.StatusBadGateway)
}

func (s *Server) internal(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Errorw("render failed",
		logger.FieldEndpoint, r.URL.Path,
		logger.FieldError, err,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
	http.Error(w, "failed to render document", http.StatusInternalServerError)
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debugw("http request",
				"method", r.Method,
				logger.FieldPath, r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				logger.FieldDurationMS, time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
