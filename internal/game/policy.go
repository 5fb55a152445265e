package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/categoryarena/arena-backend/internal/config"
	"github.com/categoryarena/arena-backend/internal/entity"
)

// commonLetters is the pool banned letters are drawn from first; banning a
// frequent letter bites harder than a random one.
var commonLetters = []string{"E", "A", "R", "T", "I", "O", "S", "N"}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Policy computes turn durations, category rotation, banned-letter selection
// and phase transitions. Its only mutable state is the per-match category
// usage history.
type Policy struct {
	timers          config.Timers
	categories      []entity.Category
	usedCategoryIDs map[string]bool
	rng             *rand.Rand
}

func NewPolicy(timers config.Timers, categories []entity.Category) *Policy {
	return &Policy{
		timers:          timers,
		categories:      categories,
		usedCategoryIDs: make(map[string]bool),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())), //nolint: gosec // game randomness, not crypto
	}
}

// TimerForRound returns the turn duration for the given round. Blitz mode
// uses the fixed blitz duration; otherwise the duration shrinks per round
// but never below the configured floor.
func (that *Policy) TimerForRound(round int, blitzActive bool) time.Duration {
	if blitzActive {
		return that.timers.Blitz
	}

	duration := that.timers.Initial - that.timers.DecrementPerRound*time.Duration(round-1)
	if duration < that.timers.Minimum {
		return that.timers.Minimum
	}

	return duration
}

// PickCategory draws uniformly from the categories not yet used this match.
// When the pool is exhausted the usage history is cleared and the draw
// retried once, so it always terminates as long as the category list is
// non-empty.
func (that *Policy) PickCategory() entity.Category {
	available := make([]entity.Category, 0, len(that.categories))
	for _, category := range that.categories {
		if !that.usedCategoryIDs[category.ID] {
			available = append(available, category)
		}
	}

	if len(available) == 0 {
		that.usedCategoryIDs = make(map[string]bool)
		available = that.categories
	}

	picked := available[that.rng.Intn(len(available))]
	that.usedCategoryIDs[picked.ID] = true

	return picked
}

// ShouldEnterBlitz is an independent Bernoulli trial per eligible turn
// transition.
func (that *Policy) ShouldEnterBlitz(probability float64) bool {
	return that.rng.Float64() < probability
}

// PickBannedLetter draws from the common-letter pool excluding letters that
// are already banned, falling back to the full alphabet when the pool is
// exhausted. It never returns an already-banned letter.
func (that *Policy) PickBannedLetter(alreadyBanned []string) string {
	banned := make(map[string]bool, len(alreadyBanned))
	for _, letter := range alreadyBanned {
		banned[strings.ToUpper(letter)] = true
	}

	available := make([]string, 0, len(commonLetters))
	for _, letter := range commonLetters {
		if !banned[letter] {
			available = append(available, letter)
		}
	}

	if len(available) == 0 {
		for _, letter := range strings.Split(alphabet, "") {
			if !banned[letter] {
				available = append(available, letter)
			}
		}
	}

	if len(available) == 0 {
		// Every letter banned: nothing sensible left to escalate with.
		return ""
	}

	return available[that.rng.Intn(len(available))]
}

// NextPhase resolves the phase for a new round. BLITZ is a transient
// sub-mode layered on ACCELERATION; its turn countdown is owned by the
// session, so both resolve back to ACCELERATION here.
func (that *Policy) NextPhase(currentPhase string, round, aliveCount int) string {
	if aliveCount <= 1 {
		return entity.PhaseEnded
	}

	switch currentPhase {
	case entity.PhasePrediction:
		return entity.PhaseNormal
	case entity.PhaseNormal:
		if round >= 3 {
			return entity.PhaseAcceleration
		}
		return entity.PhaseNormal
	case entity.PhaseAcceleration, entity.PhaseBlitz:
		return entity.PhaseAcceleration
	default:
		return currentPhase
	}
}
