package bot

import (
	"tenthousand/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	Action domain.ActionType
	Keep   domain.Dice
}

// Brain is the interface that all bot strategies must implement. It is only
// consulted for the roll-again-or-bank decision; the mechanical phases are
// handled by MakeDecision.
type Brain interface {
	ChooseAction(turn domain.TurnState, onBoard bool) domain.ActionType
}
