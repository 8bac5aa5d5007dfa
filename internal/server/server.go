// Package server exposes report generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	reportpdf "github.com/porticus-lab/go-report-pdf"
	reportmiddleware "github.com/porticus-lab/go-report-pdf/internal/server/middleware"
)

// GenerateFunc produces a report. reportpdf.Generate is used when none is
// configured.
type GenerateFunc func(ctx context.Context, s *reportpdf.Snapshot, charts reportpdf.ChartSource, opts ...reportpdf.Option) (*reportpdf.Result, error)

type Dependencies struct {
	Logger        zerolog.Logger
	Generate      GenerateFunc
	ReportOptions []reportpdf.Option
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	Dependencies    Dependencies
}

type WebAPI struct {
	router http.Handler
	logger *zerolog.Logger
	server *http.Server
	cfg    Config
}

// ConfigureRouter builds the HTTP routes.
func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	if deps.Generate == nil {
		deps.Generate = reportpdf.Generate
	}
	h := &reportHandler{
		generate: deps.Generate,
		opts:     deps.ReportOptions,
		maxBody:  config.MaxBodyBytes,
	}
	if h.maxBody <= 0 {
		h.maxBody = defaultMaxBody
	}

	router := chi.NewRouter()
	router.Use(reportmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", healthz)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports", h.CreateReport)
	})
	return router
}

func NewWebAPI(config Config) *WebAPI {
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 10 * time.Second
	}
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger
	return &WebAPI{
		router: router,
		logger: &logger,
		cfg:    config,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the configured routes.
func (w *WebAPI) Handler() http.Handler { return w.router }

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (w *WebAPI) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}
	return nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
