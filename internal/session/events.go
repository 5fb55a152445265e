package session

import (
	"time"

	"github.com/categoryarena/arena-backend/internal/entity"
)

// Event is the closed set of outbound notifications a session fans out to
// its subscribers. Every variant carries a fixed, typed payload.
type Event interface{ isEvent() }

type PlayerJoined struct {
	Player entity.Player
}

type PredictionPhaseStarted struct {
	Duration time.Duration
}

type GameStarted struct {
	Match *entity.Match
}

type TurnStarted struct {
	PlayerID    string
	Seconds     float64
	Category    entity.Category
	Constraints entity.Constraints
}

type AnswerSubmitted struct {
	PlayerID string
	Answer   string
}

type PlayerEliminated struct {
	PlayerID string
	Reason   string
}

type CategoryChanged struct {
	Category entity.Category
}

type BannedLetterAdded struct {
	Letter string
}

type BlitzActivated struct{}

type BlitzDeactivated struct{}

type MatchUpdated struct {
	Match *entity.Match
}

type GameEnded struct {
	Winner           entity.Player
	EliminationOrder []string
	PredictionScores []entity.PredictionScore
	Match            *entity.Match
}

func (PlayerJoined) isEvent()           {}
func (PredictionPhaseStarted) isEvent() {}
func (GameStarted) isEvent()            {}
func (TurnStarted) isEvent()            {}
func (AnswerSubmitted) isEvent()        {}
func (PlayerEliminated) isEvent()       {}
func (CategoryChanged) isEvent()        {}
func (BannedLetterAdded) isEvent()      {}
func (BlitzActivated) isEvent()         {}
func (BlitzDeactivated) isEvent()       {}
func (MatchUpdated) isEvent()           {}
func (GameEnded) isEvent()              {}
