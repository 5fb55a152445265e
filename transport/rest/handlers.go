package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/categoryarena/arena-backend/internal/entity"
	"github.com/categoryarena/arena-backend/internal/hub"
	"github.com/categoryarena/arena-backend/internal/repository"
	"github.com/categoryarena/arena-backend/internal/session"
)

type matchReader interface {
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	ListActive(ctx context.Context) ([]*entity.Match, error)
}

type handlers struct {
	logger *slog.Logger
	hub    *hub.Hub
	repo   matchReader
}

func newHandlers(logger *slog.Logger, h *hub.Hub, repo matchReader) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		hub:    h,
		repo:   repo,
	}
}

func (that *handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createMatch registers a new match session and returns its id; players then
// connect over the WebSocket surface.
func (that *handlers) createMatch(w http.ResponseWriter, _ *http.Request) {
	matchID := uuid.NewString()

	reply := make(chan *session.Session, 1)
	that.hub.Inbox() <- hub.EnsureMatch{ID: matchID, Reply: reply}

	if <-reply == nil {
		http.Error(w, "failed to create match", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"match_id": matchID})
}

func (that *handlers) listMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := that.repo.ListActive(r.Context())
	if err != nil {
		that.logger.Error("failed to list active matches", "error", err)
		http.Error(w, "failed to list matches", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*entity.Match{"matches": matches})
}

func (that *handlers) getMatch(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")

	match, err := that.repo.GetByID(r.Context(), matchID)
	if errors.Is(err, repository.ErrMatchNotFound) {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		that.logger.Error("failed to get match", "match_id", matchID, "error", err)
		http.Error(w, "failed to get match", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*entity.Match{"match": match})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
