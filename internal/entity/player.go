package entity

const (
	StatusAlive      = "ALIVE"
	StatusEliminated = "ELIMINATED"
	StatusWinner     = "WINNER"
)

type Player struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Address      string `json:"address,omitempty"`
	Status       string `json:"status"`
	EliminatedAt int64  `json:"eliminated_at,omitempty"`
}

func (that *Player) IsAlive() bool {
	return that.Status == StatusAlive
}

func (that *Player) IsEliminated() bool {
	return that.Status == StatusEliminated
}
