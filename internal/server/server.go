// Package server exposes single-document upload processing over HTTP. It is
// the interactive front-end to the batch pipeline: one POST runs both
// stages for one document.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// WebAPI is the HTTP front-end.
type WebAPI struct {
	router *chi.Mux
	logger zerolog.Logger
	server *http.Server
}

// New builds the router around a document handler.
func New(addr string, handler *Handler, logger zerolog.Logger) *WebAPI {
	router := chi.NewRouter()

	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", handler.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/documents", handler.ProcessDocument)
	})

	return &WebAPI{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
	}
}

// Router exposes the configured routes.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

// Start runs the server until it fails or a shutdown signal arrives, then
// drains outstanding requests.
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

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
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

// requestLogger attaches a request-scoped logger with method, path and
// remote address.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqLogger := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr).
				Logger()

			ctx := reqLogger.WithContext(req.Context())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
