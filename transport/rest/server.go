package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/categoryarena/arena-backend/internal/hub"
)

// Start - starts the HTTP discovery API.
func Start(ctx context.Context, logger *slog.Logger, port string, h *hub.Hub, repo matchReader) error {
	hs := newHandlers(logger, h, repo)

	r := chi.NewRouter()
	r.Get("/healthz", hs.healthz)
	r.Post("/matches", hs.createMatch)
	r.Get("/matches", hs.listMatches)
	r.Get("/matches/{id}", hs.getMatch)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
