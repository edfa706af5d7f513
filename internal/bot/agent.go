package bot

import (
	"tenthousand/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Decide asks the agent for its next move in the given game. The zero Move
// with ActionEndTurn comes back when it is not the agent's turn.
func (a *Agent) Decide(game domain.GameState) (Move, bool) {
	if game.GameOver {
		return Move{}, false
	}
	current := domain.CurrentPlayer(game)
	if current.ID != a.ID {
		return Move{}, false
	}
	return MakeDecision(a.Strategy, game.Turn, current.OnBoard), true
}
