package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/chain-atlas/pkg/handlers/session"
	chainmiddleware "github.com/de-tools/chain-atlas/pkg/server/middleware"
	"github.com/de-tools/chain-atlas/pkg/server/metrics"
	"github.com/de-tools/chain-atlas/pkg/services/registry"
	"github.com/de-tools/chain-atlas/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Sessions *session.Manager
	Registry registry.SourceRegistry
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	metrics.Init()

	sessionHandler := handlers.NewHandler(config.Dependencies.Sessions, config.Dependencies.Registry)

	router := chi.NewRouter()

	logger := config.Dependencies.Logger
	router.Use(chainmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/profiles", sessionHandler.ListSources)
		r.Post("/sessions", sessionHandler.CreateSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/summary", sessionHandler.GetSummary)
			r.Get("/correlation", sessionHandler.GetCorrelation)
			r.Get("/kpis", sessionHandler.GetKPIs)
			r.Get("/profile", sessionHandler.GetProfile)
			r.Get("/quality", sessionHandler.GetQuality)
			r.Get("/export", sessionHandler.Export)
			r.Put("/filter", sessionHandler.SetFilter)
			r.Delete("/", sessionHandler.DeleteSession)
		})
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
