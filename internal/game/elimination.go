package game

import (
	"sort"

	"github.com/categoryarena/arena-backend/internal/entity"
)

const (
	scoreCorrectWinner           = 3
	scoreCorrectFirstElimination = 2
	scoreWrongPrediction         = -1
)

func AlivePlayers(players []*entity.Player) []*entity.Player {
	alive := make([]*entity.Player, 0, len(players))
	for _, player := range players {
		if player.IsAlive() {
			alive = append(alive, player)
		}
	}

	return alive
}

func EliminatedPlayersInOrder(players []*entity.Player) []*entity.Player {
	eliminated := make([]*entity.Player, 0, len(players))
	for _, player := range players {
		if player.IsEliminated() {
			eliminated = append(eliminated, player)
		}
	}

	sort.SliceStable(eliminated, func(i, j int) bool {
		return eliminated[i].EliminatedAt < eliminated[j].EliminatedAt
	})

	return eliminated
}

// NextPlayer returns the next ALIVE player strictly after currentID in
// roster order, wrapping around. With exactly one ALIVE player left it
// returns that player, even if it is the current one. With none it returns
// nil; callers must treat that as anomalous since winner detection runs on
// every elimination.
func NextPlayer(players []*entity.Player, currentID string) *entity.Player {
	if len(players) == 0 {
		return nil
	}

	start := -1
	for i, player := range players {
		if player.ID == currentID {
			start = i
			break
		}
	}

	for offset := 1; offset <= len(players); offset++ {
		candidate := players[(start+offset+len(players))%len(players)]
		if candidate.IsAlive() {
			return candidate
		}
	}

	return nil
}

// CheckWinner returns the sole ALIVE player if exactly one remains.
func CheckWinner(players []*entity.Player) *entity.Player {
	alive := AlivePlayers(players)
	if len(alive) == 1 {
		return alive[0]
	}

	return nil
}

func RemainingPercentage(players []*entity.Player) float64 {
	if len(players) == 0 {
		return 0
	}

	return 100 * float64(len(AlivePlayers(players))) / float64(len(players))
}

// ShouldActivateBannedLetter is true exactly once per match: at the first
// check where the remaining percentage drops to or below the threshold and
// no banned letter is active yet.
func ShouldActivateBannedLetter(players []*entity.Player, thresholdPercent float64, currentlyBanned []string) bool {
	return RemainingPercentage(players) <= thresholdPercent && len(currentlyBanned) == 0
}

// ScorePredictions scores every prediction against the final outcome:
// +3 for the right winner, +2 for the right first elimination, −1 for each
// wrong guess. A match that somehow ends with zero eliminations has no
// first-eliminated player, so no prediction can earn the first-elimination
// credit.
func ScorePredictions(predictions []entity.Prediction, eliminationOrder []string, winnerID string) []entity.PredictionScore {
	var firstEliminatedID string
	if len(eliminationOrder) > 0 {
		firstEliminatedID = eliminationOrder[0]
	}

	scores := make([]entity.PredictionScore, 0, len(predictions))
	for _, prediction := range predictions {
		correctWinner := prediction.PredictedWinner == winnerID
		correctFirstElimination := firstEliminatedID != "" &&
			prediction.PredictedFirstElimination == firstEliminatedID

		total := scoreWrongPrediction
		if correctWinner {
			total = scoreCorrectWinner
		}
		if correctFirstElimination {
			total += scoreCorrectFirstElimination
		} else {
			total += scoreWrongPrediction
		}

		scores = append(scores, entity.PredictionScore{
			PlayerID:                prediction.PlayerID,
			CorrectWinner:           correctWinner,
			CorrectFirstElimination: correctFirstElimination,
			TotalScore:              total,
		})
	}

	return scores
}
