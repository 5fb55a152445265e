package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/categoryarena/arena-backend/internal/entity"
	"github.com/categoryarena/arena-backend/internal/session"
)

// Client -> server actions.
const (
	ActionJoinMatch        = "JOIN_MATCH"
	ActionSubmitPrediction = "SUBMIT_PREDICTION"
	ActionSubmitAnswer     = "SUBMIT_ANSWER"
)

type ClientMessage struct {
	Event      string             `json:"event"`
	Player     *JoinPayload       `json:"player,omitempty"`
	Prediction *PredictionPayload `json:"prediction,omitempty"`
	Answer     *AnswerPayload     `json:"answer,omitempty"`
}

type JoinPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Address  string `json:"address,omitempty"`
}

type PredictionPayload struct {
	PlayerID                  string `json:"player_id"`
	PredictedWinner           string `json:"predicted_winner"`
	PredictedFirstElimination string `json:"predicted_first_elimination"`
}

type AnswerPayload struct {
	PlayerID string `json:"player_id"`
	Answer   string `json:"answer"`
}

type serverMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type playerJoinedPayload struct {
	Player entity.Player `json:"player"`
}

type predictionPhaseStartedPayload struct {
	DurationMS int64 `json:"duration_ms"`
}

type matchPayload struct {
	Match *entity.Match `json:"match"`
}

type turnStartedPayload struct {
	PlayerID    string             `json:"player_id"`
	Timer       float64            `json:"timer"`
	Category    entity.Category    `json:"category"`
	Constraints entity.Constraints `json:"constraints"`
}

type answerSubmittedPayload struct {
	PlayerID string `json:"player_id"`
	Answer   string `json:"answer"`
	IsValid  bool   `json:"is_valid"`
}

type playerEliminatedPayload struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type categoryChangedPayload struct {
	Category entity.Category `json:"category"`
}

type bannedLetterAddedPayload struct {
	Letter string `json:"letter"`
}

type gameEndedPayload struct {
	Winner           entity.Player            `json:"winner"`
	EliminationOrder []string                 `json:"elimination_order"`
	PredictionScores []entity.PredictionScore `json:"prediction_scores"`
	Match            *entity.Match            `json:"match"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// encodeEvent maps every session event variant to its wire envelope.
func encodeEvent(event session.Event) ([]byte, error) {
	switch e := event.(type) {
	case session.PlayerJoined:
		return wrap("PLAYER_JOINED", playerJoinedPayload{Player: e.Player})
	case session.PredictionPhaseStarted:
		return wrap("PREDICTION_PHASE_STARTED", predictionPhaseStartedPayload{DurationMS: e.Duration.Milliseconds()})
	case session.GameStarted:
		return wrap("GAME_STARTED", matchPayload{Match: e.Match})
	case session.TurnStarted:
		return wrap("TURN_STARTED", turnStartedPayload{
			PlayerID:    e.PlayerID,
			Timer:       e.Seconds,
			Category:    e.Category,
			Constraints: e.Constraints,
		})
	case session.AnswerSubmitted:
		return wrap("ANSWER_SUBMITTED", answerSubmittedPayload{PlayerID: e.PlayerID, Answer: e.Answer, IsValid: true})
	case session.PlayerEliminated:
		return wrap("PLAYER_ELIMINATED", playerEliminatedPayload{PlayerID: e.PlayerID, Reason: e.Reason})
	case session.CategoryChanged:
		return wrap("CATEGORY_CHANGED", categoryChangedPayload{Category: e.Category})
	case session.BannedLetterAdded:
		return wrap("BANNED_LETTER_ADDED", bannedLetterAddedPayload{Letter: e.Letter})
	case session.BlitzActivated:
		return wrap("BLITZ_MODE_ACTIVATED", struct{}{})
	case session.BlitzDeactivated:
		return wrap("BLITZ_MODE_DEACTIVATED", struct{}{})
	case session.MatchUpdated:
		return wrap("MATCH_UPDATED", matchPayload{Match: e.Match})
	case session.GameEnded:
		return wrap("GAME_ENDED", gameEndedPayload{
			Winner:           e.Winner,
			EliminationOrder: e.EliminationOrder,
			PredictionScores: e.PredictionScores,
			Match:            e.Match,
		})
	default:
		return nil, fmt.Errorf("unknown event type %T", event)
	}
}

func encodeError(message string) ([]byte, error) {
	return wrap("ERROR", errorPayload{Message: message})
}

func wrap(event string, payload any) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	messageJSON, err := json.Marshal(serverMessage{Event: event, Payload: payloadJSON})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", event, err)
	}

	return messageJSON, nil
}
