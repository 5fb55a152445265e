package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_UpsertPrediction(t *testing.T) {
	match := &Match{ID: "m1"}

	// When: a player submits twice
	match.UpsertPrediction(Prediction{PlayerID: "P1", PredictedWinner: "P2", PredictedFirstElimination: "P3"})
	match.UpsertPrediction(Prediction{PlayerID: "P1", PredictedWinner: "P4", PredictedFirstElimination: "P2"})

	// Then: only the latest submission is kept
	require.Len(t, match.Predictions, 1)
	assert.Equal(t, "P4", match.Predictions[0].PredictedWinner)

	// When: a second player submits
	match.UpsertPrediction(Prediction{PlayerID: "P2", PredictedWinner: "P1"})

	// Then: predictions from different players coexist
	require.Len(t, match.Predictions, 2)
}

func TestMatch_PlayerByID(t *testing.T) {
	match := &Match{
		Players: []*Player{
			{ID: "P1", Status: StatusAlive},
			{ID: "P2", Status: StatusAlive},
		},
	}

	require.NotNil(t, match.PlayerByID("P2"))
	require.Nil(t, match.PlayerByID("P9"))
	assert.True(t, match.HasPlayer("P1"))
	assert.False(t, match.HasPlayer("P9"))
}

func TestMatch_Clone(t *testing.T) {
	// Given: a populated match
	match := &Match{
		ID:               "m1",
		Players:          []*Player{{ID: "P1", Status: StatusAlive}},
		UsedAnswers:      []string{"capybara"},
		Constraints:      Constraints{BannedLetters: []string{"E"}},
		EliminationOrder: []string{},
	}

	// When: cloning and mutating the original
	clone := match.Clone()
	match.Players[0].Status = StatusEliminated
	match.UsedAnswers = append(match.UsedAnswers, "lynx")
	match.Constraints.BannedLetters[0] = "A"

	// Then: the clone is unaffected
	assert.Equal(t, StatusAlive, clone.Players[0].Status)
	assert.Equal(t, []string{"capybara"}, clone.UsedAnswers)
	assert.Equal(t, []string{"E"}, clone.Constraints.BannedLetters)
}
