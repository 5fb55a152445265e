package hub

import (
	"context"
	"log/slog"

	"github.com/categoryarena/arena-backend/internal/config"
	"github.com/categoryarena/arena-backend/internal/entity"
	"github.com/categoryarena/arena-backend/internal/session"
)

type HubMsg interface{ isHubMsg() }

// EnsureMatch creates the session for the id if it does not exist yet and
// replies with it either way.
type EnsureMatch struct {
	ID    string
	Reply chan *session.Session
}

// GetMatch replies with the session or nil.
type GetMatch struct {
	ID    string
	Reply chan *session.Session
}

// RemoveMatch tears the session down and forgets it.
type RemoveMatch struct {
	ID string
}

type ShutdownHub struct{}

func (EnsureMatch) isHubMsg() {}
func (GetMatch) isHubMsg()    {}
func (RemoveMatch) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

type matchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	DeleteByID(ctx context.Context, id string) error
}

// Hub is the process-wide match registry: created empty at startup, entries
// inserted on match creation, removed on teardown. Sessions are only ever
// reached through it.
type Hub struct {
	logger   *slog.Logger
	cfg      config.Game
	repo     matchRepository
	inbox    chan HubMsg
	sessions map[string]*session.Session
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(parent context.Context, logger *slog.Logger, cfg config.Game, repo matchRepository) *Hub {
	ctx, cancel := context.WithCancel(parent)

	that := &Hub{
		logger:   logger.With("component", "hub"),
		cfg:      cfg,
		repo:     repo,
		inbox:    make(chan HubMsg, 64),
		sessions: make(map[string]*session.Session),
		ctx:      ctx,
		cancel:   cancel,
	}

	go that.loop()

	return that
}

func (that *Hub) Inbox() chan<- HubMsg { return that.inbox }

func (that *Hub) loop() {
	for {
		select {
		case <-that.ctx.Done():
			that.shutdown()
			return

		case m := <-that.inbox:
			switch msg := m.(type) {
			case EnsureMatch:
				if existing := that.sessions[msg.ID]; existing != nil {
					msg.Reply <- existing
					break
				}

				created := session.New(that.ctx, that.logger, msg.ID, that.cfg, that.repo)
				that.sessions[msg.ID] = created
				that.logger.Info("match session created", "match_id", msg.ID)
				msg.Reply <- created

			case GetMatch:
				msg.Reply <- that.sessions[msg.ID] // may be nil

			case RemoveMatch:
				if existing := that.sessions[msg.ID]; existing != nil {
					existing.Inbox() <- session.Shutdown{}
					delete(that.sessions, msg.ID)
					that.logger.Info("match session removed", "match_id", msg.ID)
				}

			case ShutdownHub:
				that.shutdown()
				return
			}
		}
	}
}

func (that *Hub) shutdown() {
	for id, sess := range that.sessions {
		sess.Inbox() <- session.Shutdown{}
		delete(that.sessions, id)
	}

	that.cancel()
}
