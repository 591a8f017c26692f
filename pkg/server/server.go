package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/govern-atlas/pkg/export"
	handlers "github.com/de-tools/govern-atlas/pkg/handlers/assessment"
	"github.com/de-tools/govern-atlas/pkg/services/project"

	governmiddleware "github.com/de-tools/govern-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Controller *project.Controller
	Registry   export.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := handlers.NewHandler(config.Dependencies.Controller, config.Dependencies.Registry)

	router := chi.NewRouter()

	router.Use(governmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/pillars", handler.ListPillars)
		r.Get("/scores", handler.GetScores)
		r.Put("/responses/{question}", handler.SetResponse)
		r.Get("/baseline", handler.GetBaseline)
		r.Post("/baseline", handler.CreateBaseline)
		r.Post("/baseline/reset", handler.ResetBaseline)
		r.Get("/gaps", handler.GetGaps)
		r.Post("/plan", handler.GeneratePlan)
		r.Get("/tasks", handler.ListTasks)
		r.Post("/tasks/{task}/status", handler.UpdateTaskStatus)
		r.Post("/tasks/{task}/evidence", handler.AttachEvidence)
		r.Get("/audit", handler.GetAudit)
		r.Get("/audit/summary", handler.GetAuditSummary)
		r.Post("/import", handler.Import)
		r.Get("/export/{format}", handler.Export)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
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
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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

// Handler exposes the router for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}
