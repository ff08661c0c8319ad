package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"keyphrase/keyword"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port           int
	RequestTimeout time.Duration
	MaxUploadBytes int64
	AllowedOrigins []string
}

// Server represents the API server
type Server struct {
	extractor      keyword.KeywordExtractor
	logger         *zap.Logger
	cfg            ServerConfig
	maxUploadBytes int64
}

// NewServer creates a new API server
func NewServer(extractor keyword.KeywordExtractor, logger *zap.Logger, cfg ServerConfig) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	return &Server{
		extractor:      extractor,
		logger:         logger,
		cfg:            cfg,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.RequestTimeout))

	r.Get("/health", s.HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(CORS(s.cfg.AllowedOrigins))
		r.Options("/extract_keywords", func(w http.ResponseWriter, r *http.Request) {})
		r.Post("/extract_keywords", s.ExtractKeywordsHandler)
	})

	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", zap.Int("port", s.cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
