// Package server implements the browser-facing HTTP surface: upload,
// selection-to-mask, edit via the external model, and the embedded page.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"maskeraser/internal/config"
	"maskeraser/internal/gemini"
)

// ImageEditor is the slice of the gemini client the server uses.
type ImageEditor interface {
	EditImage(ctx context.Context, req gemini.EditRequest) (*gemini.EditResult, error)
}

// Server wires the core pipeline, the session store and the model client
// behind an HTTP API.
type Server struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *Store
	editor ImageEditor
}

// New constructs a Server. editor may be nil, in which case edit requests
// fail with a configuration error (no API key supplied).
func New(cfg *config.Config, log *logrus.Logger, editor ImageEditor) (*Server, error) {
	store, err := NewStore(cfg.MaxSessions)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, log: log, store: store, editor: editor}, nil
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Post("/images", s.handleUpload)
		r.Route("/images/{id}", func(r chi.Router) {
			r.Post("/selection", s.handleSelection)
			r.Delete("/selection", s.handleClearSelection)
			r.Get("/mask.png", s.handleMaskPNG)
			r.Get("/suggestion", s.handleSuggestion)
			r.Post("/edit", s.handleEdit)
		})
	})

	return r
}

// ListenAndServe runs the HTTP server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.ListenAddr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.WithField("addr", s.cfg.ListenAddr).Info("listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}
