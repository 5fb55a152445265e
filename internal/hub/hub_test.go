package hub

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/categoryarena/arena-backend/internal/config"
	"github.com/categoryarena/arena-backend/internal/repository"
	"github.com/categoryarena/arena-backend/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	cfg := config.Game{
		MinPlayers:       2,
		MaxPlayers:       8,
		PredictionWindow: 10 * time.Second,
		Timers: config.Timers{
			Initial: 10 * time.Second,
			Blitz:   3 * time.Second,
			Minimum: 3 * time.Second,
		},
		BannedLetterThreshold: 50,
		BlitzTurns:            3,
	}

	h := New(context.Background(), testLogger(), cfg, repository.NewMemoryMatchRepository())
	t.Cleanup(func() { h.Inbox() <- ShutdownHub{} })

	return h
}

func ensure(t *testing.T, h *Hub, id string) *session.Session {
	t.Helper()

	reply := make(chan *session.Session, 1)
	h.Inbox() <- EnsureMatch{ID: id, Reply: reply}

	select {
	case sess := <-reply:
		return sess
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ensure reply")
		return nil
	}
}

func get(t *testing.T, h *Hub, id string) *session.Session {
	t.Helper()

	reply := make(chan *session.Session, 1)
	h.Inbox() <- GetMatch{ID: id, Reply: reply}

	select {
	case sess := <-reply:
		return sess
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for get reply")
		return nil
	}
}

func TestHub_EnsureMatchIsIdempotent(t *testing.T) {
	h := newTestHub(t)

	// When: ensuring the same id twice
	first := ensure(t, h, "m1")
	second := ensure(t, h, "m1")

	// Then: both replies carry the same session
	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestHub_GetMatch(t *testing.T) {
	h := newTestHub(t)

	// Then: an unknown id yields nil
	require.Nil(t, get(t, h, "missing"))

	// When: the match exists
	created := ensure(t, h, "m1")

	// Then: lookups find it
	assert.Same(t, created, get(t, h, "m1"))
}

func TestHub_RemoveMatchForgetsSession(t *testing.T) {
	h := newTestHub(t)
	ensure(t, h, "m1")

	// When: removing the match
	h.Inbox() <- RemoveMatch{ID: "m1"}

	// Then: the registry no longer knows it
	require.Nil(t, get(t, h, "m1"))

	// Then: ensuring again builds a fresh session
	require.NotNil(t, ensure(t, h, "m1"))
}
