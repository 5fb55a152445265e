package session

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/categoryarena/arena-backend/internal/apperror"
	"github.com/categoryarena/arena-backend/internal/config"
	"github.com/categoryarena/arena-backend/internal/entity"
	"github.com/categoryarena/arena-backend/internal/game"
)

const (
	inboxSize      = 64
	persistTimeout = 3 * time.Second
	timeoutReason  = "time expired"
)

type matchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
}

// Session is the single logical owner of one match record. All mutating
// operations arrive through the inbox and are applied one at a time by the
// worker goroutine; snapshots handed out are always clones.
type Session struct {
	logger *slog.Logger
	cfg    config.Game
	repo   matchRepository
	policy *game.Policy

	inbox       chan Msg
	match       *entity.Match
	usedAnswers map[string]bool
	subscribers map[string]chan Event

	// At most one timer of each kind is armed at any instant; the token
	// invalidates anything older.
	timerSeq        int
	turnTimer       *time.Timer
	turnToken       int
	predictionTimer *time.Timer
	predictionToken int
	blitzTurnsLeft  int

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, logger *slog.Logger, id string, cfg config.Game, repo matchRepository) *Session {
	ctx, cancel := context.WithCancel(parent)

	policy := game.NewPolicy(cfg.Timers, game.DefaultCategories)

	that := &Session{
		logger: logger.With("component", "session", "match_id", id),
		cfg:    cfg,
		repo:   repo,
		policy: policy,
		inbox:  make(chan Msg, inboxSize),
		match: &entity.Match{
			ID:              id,
			Players:         []*entity.Player{},
			Phase:           entity.PhasePrediction,
			CurrentCategory: policy.PickCategory(),
			UsedAnswers:     []string{},
			Constraints: entity.Constraints{
				BannedLetters:   []string{},
				MinAnswerLength: cfg.MinAnswerLength,
				MaxAnswerLength: cfg.MaxAnswerLength,
			},
			Predictions:      []entity.Prediction{},
			EliminationOrder: []string{},
			CreatedAt:        time.Now().UnixMilli(),
		},
		usedAnswers: make(map[string]bool),
		subscribers: make(map[string]chan Event),
		ctx:         ctx,
		cancel:      cancel,
	}

	that.persist()

	go that.loop()

	return that
}

func (that *Session) ID() string { return that.match.ID }

// Inbox exposes the ordered input channel to the transport layer and tests.
func (that *Session) Inbox() chan<- Msg { return that.inbox }

func (that *Session) loop() {
	for {
		select {
		case <-that.ctx.Done():
			that.shutdown()
			return

		case m := <-that.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- that.handleJoin(msg.Player)

			case SubmitPrediction:
				msg.Reply <- that.handlePrediction(msg.Prediction)

			case SubmitAnswer:
				msg.Reply <- that.handleAnswer(msg.PlayerID, msg.Answer)

			case Subscribe:
				that.subscribers[msg.ClientID] = msg.Outbox
				msg.Outbox <- MatchUpdated{Match: that.match.Clone()}

			case Unsubscribe:
				if outbox, ok := that.subscribers[msg.ClientID]; ok {
					close(outbox)
					delete(that.subscribers, msg.ClientID)
				}
				msg.Reply <- len(that.subscribers)

			case GetState:
				msg.Reply <- that.match.Clone()

			case timerFired:
				that.handleTimerFired(msg)

			case Shutdown:
				that.shutdown()
				return
			}
		}
	}
}

// --- inbound operations ---

func (that *Session) handleJoin(player entity.Player) error {
	if that.match.IsEnded() {
		return apperror.ErrMatchEnded
	}

	if that.match.Phase != entity.PhasePrediction {
		return apperror.ErrWrongPhase
	}

	if len(that.match.Players) >= that.cfg.MaxPlayers {
		return apperror.ErrMatchFull
	}

	if that.match.HasPlayer(player.ID) {
		return apperror.ErrAlreadyJoined
	}

	player.Status = entity.StatusAlive
	player.EliminatedAt = 0
	that.match.Players = append(that.match.Players, &player)

	that.commit()
	that.broadcast(PlayerJoined{Player: player})

	if len(that.match.Players) >= that.cfg.MinPlayers && that.predictionTimer == nil {
		that.armPredictionWindow()
	}

	return nil
}

func (that *Session) handlePrediction(prediction entity.Prediction) error {
	if that.match.Phase != entity.PhasePrediction {
		return apperror.ErrWrongPhase
	}

	that.match.UpsertPrediction(prediction)
	that.commit()

	return nil
}

func (that *Session) handleAnswer(playerID, answer string) error {
	switch that.match.Phase {
	case entity.PhaseNormal, entity.PhaseAcceleration, entity.PhaseBlitz:
	case entity.PhaseEnded:
		return apperror.ErrMatchEnded
	default:
		return apperror.ErrWrongPhase
	}

	if playerID != that.match.CurrentPlayerID {
		return apperror.ErrNotYourTurn
	}

	// The turn resolves here; a timer firing for this turn afterwards
	// must be a no-op.
	that.stopTurnTimer()

	err := game.ValidateAnswer(answer, that.match.CurrentCategory, that.match.Constraints, that.usedAnswers)
	if err != nil {
		that.eliminate(playerID, err.Error())
		return err
	}

	normalized := game.NormalizeAnswer(answer)
	that.usedAnswers[normalized] = true
	that.match.UsedAnswers = append(that.match.UsedAnswers, normalized)

	that.commit()
	that.broadcast(AnswerSubmitted{PlayerID: playerID, Answer: answer})

	that.advanceTurn()

	return nil
}

// --- timers ---

func (that *Session) handleTimerFired(msg timerFired) {
	switch msg.kind {
	case timerPredictionWindow:
		if msg.token != that.predictionToken {
			that.logger.Debug("discarding stale prediction timer", "token", msg.token)
			return
		}
		that.predictionTimer = nil
		that.predictionToken = 0

		if len(that.match.Players) < that.cfg.MinPlayers {
			// Roster dropped below the minimum; hold in PREDICTION and let
			// a later join arm a fresh window.
			that.logger.Info("prediction window expired below minimum, waiting for joins")
			return
		}

		that.startGame()

	case timerTurn:
		if msg.token != that.turnToken || msg.playerID != that.match.CurrentPlayerID {
			that.logger.Debug("discarding stale turn timer", "token", msg.token, "player_id", msg.playerID)
			return
		}
		that.turnTimer = nil
		that.turnToken = 0

		that.eliminate(msg.playerID, timeoutReason)
	}
}

func (that *Session) armPredictionWindow() {
	that.timerSeq++
	token := that.timerSeq
	that.predictionToken = token

	that.predictionTimer = time.AfterFunc(that.cfg.PredictionWindow, func() {
		that.post(timerFired{kind: timerPredictionWindow, token: token})
	})

	that.broadcast(PredictionPhaseStarted{Duration: that.cfg.PredictionWindow})
}

func (that *Session) armTurnTimer(duration time.Duration) {
	that.stopTurnTimer()

	that.timerSeq++
	token := that.timerSeq
	that.turnToken = token
	playerID := that.match.CurrentPlayerID
	round := that.match.RoundNumber

	that.turnTimer = time.AfterFunc(duration, func() {
		that.post(timerFired{kind: timerTurn, token: token, playerID: playerID, round: round})
	})
}

func (that *Session) stopTurnTimer() {
	if that.turnTimer != nil {
		that.turnTimer.Stop()
		that.turnTimer = nil
	}
	that.turnToken = 0
}

func (that *Session) stopPredictionTimer() {
	if that.predictionTimer != nil {
		that.predictionTimer.Stop()
		that.predictionTimer = nil
	}
	that.predictionToken = 0
}

// post delivers an internally generated message without ever blocking a
// timer goroutine; if the inbox is saturated the token check makes a retry
// unnecessary anyway.
func (that *Session) post(msg Msg) {
	select {
	case that.inbox <- msg:
	case <-that.ctx.Done():
	}
}

// --- game flow ---

func (that *Session) startGame() {
	that.match.Phase = entity.PhaseNormal
	that.match.RoundNumber = 1
	that.match.StartedAt = time.Now().UnixMilli()
	that.match.CurrentPlayerID = that.match.Players[rand.Intn(len(that.match.Players))].ID //nolint: gosec // game randomness

	that.commit()
	that.broadcast(GameStarted{Match: that.match.Clone()})

	that.startTurn()
}

func (that *Session) startTurn() {
	duration := that.policy.TimerForRound(that.match.RoundNumber, that.match.Phase == entity.PhaseBlitz)
	that.match.CurrentTurnTimer = duration.Seconds()

	that.commit()
	that.broadcast(TurnStarted{
		PlayerID:    that.match.CurrentPlayerID,
		Seconds:     duration.Seconds(),
		Category:    that.match.CurrentCategory,
		Constraints: that.match.Constraints,
	})

	that.armTurnTimer(duration)
}

func (that *Session) eliminate(playerID, reason string) {
	player := that.match.PlayerByID(playerID)
	if player == nil || !player.IsAlive() {
		that.logger.Warn("elimination requested for non-alive player", "player_id", playerID)
		return
	}

	player.Status = entity.StatusEliminated
	player.EliminatedAt = time.Now().UnixMilli()
	that.match.EliminationOrder = append(that.match.EliminationOrder, playerID)

	that.broadcast(PlayerEliminated{PlayerID: playerID, Reason: reason})

	that.match.CurrentCategory = that.policy.PickCategory()
	that.broadcast(CategoryChanged{Category: that.match.CurrentCategory})

	if game.ShouldActivateBannedLetter(that.match.Players, that.cfg.BannedLetterThreshold, that.match.Constraints.BannedLetters) {
		letter := that.policy.PickBannedLetter(that.match.Constraints.BannedLetters)
		if letter != "" {
			that.match.Constraints.BannedLetters = append(that.match.Constraints.BannedLetters, letter)
			that.broadcast(BannedLetterAdded{Letter: letter})
		}
	}

	if winner := game.CheckWinner(that.match.Players); winner != nil {
		that.endGame(winner)
		return
	}

	that.commit()
	that.advanceTurn()
}

func (that *Session) advanceTurn() {
	if that.match.Phase == entity.PhaseAcceleration && that.policy.ShouldEnterBlitz(that.cfg.BlitzProbability) {
		that.match.Phase = entity.PhaseBlitz
		that.blitzTurnsLeft = that.cfg.BlitzTurns
		that.broadcast(BlitzActivated{})
	}

	if that.match.Phase == entity.PhaseBlitz {
		that.blitzTurnsLeft--
		if that.blitzTurnsLeft <= 0 {
			that.match.Phase = entity.PhaseAcceleration
			that.broadcast(BlitzDeactivated{})
		}
	}

	next := game.NextPlayer(that.match.Players, that.match.CurrentPlayerID)
	if next == nil {
		that.logger.Error("no alive player to advance to")
		return
	}

	that.match.CurrentPlayerID = next.ID

	// A full round has elapsed once the turn wraps back to the first
	// alive player in roster order.
	alive := game.AlivePlayers(that.match.Players)
	if len(alive) > 0 && alive[0].ID == that.match.CurrentPlayerID {
		that.match.RoundNumber++
		// Blitz outlives a round wrap; only its own countdown ends it.
		if that.match.Phase != entity.PhaseBlitz {
			that.match.Phase = that.policy.NextPhase(that.match.Phase, that.match.RoundNumber, len(alive))
		}
	}

	that.commit()
	that.startTurn()
}

func (that *Session) endGame(winner *entity.Player) {
	winner.Status = entity.StatusWinner
	that.match.Phase = entity.PhaseEnded
	that.match.EndedAt = time.Now().UnixMilli()
	that.match.CurrentPlayerID = ""

	that.stopTurnTimer()
	that.stopPredictionTimer()

	scores := game.ScorePredictions(that.match.Predictions, that.match.EliminationOrder, winner.ID)

	that.commit()
	that.broadcast(GameEnded{
		Winner:           *winner,
		EliminationOrder: that.match.EliminationOrder,
		PredictionScores: scores,
		Match:            that.match.Clone(),
	})

	that.logger.Info("match ended", "winner_id", winner.ID, "rounds", that.match.RoundNumber)
}

// --- persistence & fan-out ---

// commit snapshots the record to storage and announces the update; both are
// best-effort and never stall the worker.
func (that *Session) commit() {
	that.persist()
	that.broadcast(MatchUpdated{Match: that.match.Clone()})
}

func (that *Session) persist() {
	snapshot := that.match.Clone()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := that.repo.Save(ctx, snapshot); err != nil {
			that.logger.Error("failed to persist match snapshot", "error", err)
		}
	}()
}

func (that *Session) broadcast(event Event) {
	for id, outbox := range that.subscribers {
		select {
		case outbox <- event:
		default:
			// Slow or dead subscriber; drop it rather than stall the match.
			close(outbox)
			delete(that.subscribers, id)
			that.logger.Warn("dropped slow subscriber", "client_id", id)
		}
	}
}

func (that *Session) shutdown() {
	that.stopTurnTimer()
	that.stopPredictionTimer()

	for id, outbox := range that.subscribers {
		close(outbox)
		delete(that.subscribers, id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := that.repo.DeleteByID(ctx, that.match.ID); err != nil {
		that.logger.Error("failed to delete match snapshot", "error", err)
	}

	that.cancel()
	that.logger.Info("session torn down")
}
