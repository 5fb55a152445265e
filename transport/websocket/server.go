package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/categoryarena/arena-backend/internal/apperror"
	"github.com/categoryarena/arena-backend/internal/entity"
	"github.com/categoryarena/arena-backend/internal/hub"
	"github.com/categoryarena/arena-backend/internal/session"
)

const (
	writeTimeout = 3 * time.Second
	replyTimeout = 3 * time.Second
	outboxSize   = 16
)

type Server struct {
	logger *slog.Logger
	hub    *hub.Hub
}

func New(logger *slog.Logger, h *hub.Hub) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		hub:    h,
	}
}

// Start - starts the WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleConnection)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

func (that *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	matchID := r.URL.Query().Get("match")
	if matchID == "" {
		http.Error(w, "missing match id", http.StatusBadRequest)
		return
	}

	sess := that.lookupSession(matchID)
	if sess == nil {
		http.Error(w, apperror.ErrMatchNotFound.Error(), http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket connection", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	clientID := uuid.NewString()
	outbox := make(chan session.Event, outboxSize)

	sess.Inbox() <- session.Subscribe{ClientID: clientID, Outbox: outbox}
	defer that.unsubscribe(sess, matchID, clientID)

	log.Info("client connected", "match_id", matchID, "client_id", clientID)

	// Writer: fan session events out to this client.
	writeCtx, cancelWrites := context.WithCancel(r.Context())
	defer cancelWrites()

	go func() {
		for event := range outbox {
			payload, encodeErr := encodeEvent(event)
			if encodeErr != nil {
				log.Error("failed to encode event", "error", encodeErr)
				continue
			}

			ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
			_ = conn.Write(ctx, websocket.MessageText, payload)
			cancel()
		}
	}()

	that.readLoop(r.Context(), conn, sess, log)
}

func (that *Server) readLoop(ctx context.Context, conn *websocket.Conn, sess *session.Session, log *slog.Logger) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				log.Debug("connection read ended", "error", err)
			}
			return
		}

		var message ClientMessage
		if err = json.Unmarshal(data, &message); err != nil {
			that.writeError(ctx, conn, "invalid message format")
			continue
		}

		if err = that.dispatch(sess, message); err != nil {
			that.writeError(ctx, conn, err.Error())
		}
	}
}

// dispatch forwards one client message into the session inbox and waits for
// the synchronous accept/reject verdict.
func (that *Server) dispatch(sess *session.Session, message ClientMessage) error {
	reply := make(chan error, 1)

	switch message.Event {
	case ActionJoinMatch:
		if message.Player == nil {
			return apperror.ErrUnknownAction
		}
		sess.Inbox() <- session.Join{
			Player: entity.Player{
				ID:       message.Player.ID,
				Username: message.Player.Username,
				Address:  message.Player.Address,
			},
			Reply: reply,
		}

	case ActionSubmitPrediction:
		if message.Prediction == nil {
			return apperror.ErrUnknownAction
		}
		sess.Inbox() <- session.SubmitPrediction{
			Prediction: entity.Prediction{
				PlayerID:                  message.Prediction.PlayerID,
				PredictedWinner:           message.Prediction.PredictedWinner,
				PredictedFirstElimination: message.Prediction.PredictedFirstElimination,
			},
			Reply: reply,
		}

	case ActionSubmitAnswer:
		if message.Answer == nil {
			return apperror.ErrUnknownAction
		}
		sess.Inbox() <- session.SubmitAnswer{
			PlayerID: message.Answer.PlayerID,
			Answer:   message.Answer.Answer,
			Reply:    reply,
		}

	default:
		return apperror.ErrUnknownAction
	}

	select {
	case err := <-reply:
		return err
	case <-time.After(replyTimeout):
		return apperror.ErrSessionStopped
	}
}

func (that *Server) lookupSession(matchID string) *session.Session {
	reply := make(chan *session.Session, 1)
	that.hub.Inbox() <- hub.GetMatch{ID: matchID, Reply: reply}

	return <-reply
}

// unsubscribe detaches the client; the last connection leaving tears the
// match down.
func (that *Server) unsubscribe(sess *session.Session, matchID, clientID string) {
	reply := make(chan int, 1)
	sess.Inbox() <- session.Unsubscribe{ClientID: clientID, Reply: reply}

	select {
	case remaining := <-reply:
		if remaining == 0 {
			that.hub.Inbox() <- hub.RemoveMatch{ID: matchID}
			that.logger.Info("last client left, match removed", "match_id", matchID)
		}
	case <-time.After(replyTimeout):
		// Session already stopped; nothing left to tear down.
	}
}

func (that *Server) writeError(ctx context.Context, conn *websocket.Conn, message string) {
	payload, err := encodeError(message)
	if err != nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	_ = conn.Write(writeCtx, websocket.MessageText, payload)
}
