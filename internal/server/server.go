// Package server exposes the scoring contract and the favorite-party
// endpoint over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/spigell/stemwijzer/internal/favorites"
	"github.com/spigell/stemwijzer/internal/fixtures"
	"github.com/spigell/stemwijzer/internal/matcher"
	"github.com/spigell/stemwijzer/internal/metrics"
	sw "github.com/spigell/stemwijzer/internal/stemwijzer"
)

const (
	defaultListen         = ":8081"
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 15 * time.Second
	maxRequestBody        = 1 << 20
)

// Config holds the HTTP server settings.
type Config struct {
	Listen         string        `mapstructure:"listen"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
}

// Calculator scores answers locally. *matcher.Matcher implements it.
type Calculator interface {
	CalculateLocally(answers sw.Answers) (matcher.Calculation, error)
	Tables() *fixtures.Tables
}

// FavoriteStore persists favorite parties. *favorites.Store implements it.
type FavoriteStore interface {
	Set(ctx context.Context, userID int64, partyID string) (favorites.Favorite, error)
	Get(ctx context.Context, userID int64) (favorites.Favorite, error)
}

type Server struct {
	config     Config
	router     *chi.Mux
	calculator Calculator
	favorites  FavoriteStore
	metrics    *metrics.Recorder
	logger     *zap.Logger
}

func New(cfg Config, calculator Calculator, store FavoriteStore, recorder *metrics.Recorder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		config:     cfg,
		calculator: calculator,
		favorites:  store,
		metrics:    recorder,
		logger:     logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api/stemwijzer", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/questions", s.handleQuestions)
		r.Get("/parties", s.handleParties)

		r.Post("/favorite-party/{userId}", s.handleSetFavorite)
		r.Get("/favorite-party/{userId}", s.handleGetFavorite)
	})

	s.router = r
}

// loggingMiddleware logs each request and records it in metrics.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			elapsed := time.Since(start)
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			s.metrics.HTTPRequest(r.Method, route, ww.Status(), elapsed)

			s.logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", elapsed.Milliseconds()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("remote_addr", r.RemoteAddr),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
