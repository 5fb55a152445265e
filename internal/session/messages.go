package session

import "github.com/categoryarena/arena-backend/internal/entity"

// Msg is the closed set of inputs a session worker consumes from its inbox.
// External submissions and internally generated timer expiries travel the
// same path, so every mutation of one match is serialized.
type Msg interface{ isSessionMsg() }

type Join struct {
	Player entity.Player
	Reply  chan error
}

type SubmitPrediction struct {
	Prediction entity.Prediction
	Reply      chan error
}

type SubmitAnswer struct {
	PlayerID string
	Answer   string
	Reply    chan error
}

// Subscribe registers an event outbox; the current snapshot is delivered
// immediately.
type Subscribe struct {
	ClientID string
	Outbox   chan Event
}

// Unsubscribe removes a client; Reply receives the number of subscribers
// left so the transport can decide on teardown.
type Unsubscribe struct {
	ClientID string
	Reply    chan int
}

type GetState struct {
	Reply chan *entity.Match
}

type Shutdown struct{}

type timerKind int

const (
	timerTurn timerKind = iota
	timerPredictionWindow
)

// timerFired carries enough identity for the worker to discard it if the
// state it targeted has already moved on.
type timerFired struct {
	kind     timerKind
	token    int
	playerID string
	round    int
}

func (Join) isSessionMsg()             {}
func (SubmitPrediction) isSessionMsg() {}
func (SubmitAnswer) isSessionMsg()     {}
func (Subscribe) isSessionMsg()        {}
func (Unsubscribe) isSessionMsg()      {}
func (GetState) isSessionMsg()         {}
func (Shutdown) isSessionMsg()         {}
func (timerFired) isSessionMsg()       {}
