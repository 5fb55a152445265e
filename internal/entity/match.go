package entity

import "slices"

const (
	PhasePrediction   = "PREDICTION"
	PhaseNormal       = "NORMAL"
	PhaseAcceleration = "ACCELERATION"
	PhaseBlitz        = "BLITZ"
	PhaseEnded        = "ENDED"
)

// Category is immutable reference data; per-match usage tracking lives in
// the policy, not here.
type Category struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Examples    []string `json:"examples,omitempty"`
}

type Constraints struct {
	BannedLetters   []string `json:"banned_letters"`
	MinAnswerLength int      `json:"min_answer_length,omitempty"`
	MaxAnswerLength int      `json:"max_answer_length,omitempty"`
}

type Prediction struct {
	PlayerID                  string `json:"player_id"`
	PredictedWinner           string `json:"predicted_winner"`
	PredictedFirstElimination string `json:"predicted_first_elimination"`
}

type PredictionScore struct {
	PlayerID                string `json:"player_id"`
	CorrectWinner           bool   `json:"correct_winner"`
	CorrectFirstElimination bool   `json:"correct_first_elimination"`
	TotalScore              int    `json:"total_score"`
}

// Match is the full per-match record. It is owned and mutated exclusively by
// one session worker; everything handed to storage or transport is a clone.
type Match struct {
	ID               string       `json:"id"`
	Players          []*Player    `json:"players"`
	Phase            string       `json:"phase"`
	CurrentCategory  Category     `json:"current_category"`
	CurrentPlayerID  string       `json:"current_player_id,omitempty"`
	CurrentTurnTimer float64      `json:"current_turn_timer"`
	UsedAnswers      []string     `json:"used_answers"`
	Constraints      Constraints  `json:"constraints"`
	RoundNumber      int          `json:"round_number"`
	Predictions      []Prediction `json:"predictions"`
	EliminationOrder []string     `json:"elimination_order"`
	CreatedAt        int64        `json:"created_at"`
	StartedAt        int64        `json:"started_at,omitempty"`
	EndedAt          int64        `json:"ended_at,omitempty"`
}

func (that *Match) IsEnded() bool {
	return that.Phase == PhaseEnded
}

func (that *Match) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

func (that *Match) HasPlayer(id string) bool {
	return that.PlayerByID(id) != nil
}

// UpsertPrediction keeps at most one prediction per player; a later
// submission replaces the earlier one.
func (that *Match) UpsertPrediction(prediction Prediction) {
	for i, existing := range that.Predictions {
		if existing.PlayerID == prediction.PlayerID {
			that.Predictions[i] = prediction
			return
		}
	}

	that.Predictions = append(that.Predictions, prediction)
}

// Clone returns a deep copy safe to hand to storage and transport while the
// session keeps mutating the original.
func (that *Match) Clone() *Match {
	clone := *that

	clone.Players = make([]*Player, len(that.Players))
	for i, player := range that.Players {
		copied := *player
		clone.Players[i] = &copied
	}

	clone.UsedAnswers = slices.Clone(that.UsedAnswers)
	clone.Predictions = slices.Clone(that.Predictions)
	clone.EliminationOrder = slices.Clone(that.EliminationOrder)
	clone.Constraints.BannedLetters = slices.Clone(that.Constraints.BannedLetters)
	clone.CurrentCategory.Examples = slices.Clone(that.CurrentCategory.Examples)

	return &clone
}
