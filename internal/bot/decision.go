package bot

import (
	"tenthousand/internal/domain"
)

// BestKeep returns the highest-scoring legal keep for a roll: every die the
// scorer can use. Keeping a strict subset never scores more, so no strategy
// deviates from it.
func BestKeep(roll domain.Dice) domain.Dice {
	return domain.ScoreSelection(roll).ScoringDice
}

// MakeDecision maps the turn phase to the bot's next move. The mechanical
// phases have exactly one sensible action; only the roll-again-or-bank
// choice consults the brain. A brain vote to bank is overridden when banking
// is illegal for a player still off the board.
func MakeDecision(brain Brain, turn domain.TurnState, onBoard bool) Move {
	switch turn.Phase {
	case domain.TurnRolling, domain.TurnStealRequired:
		return Move{Action: domain.ActionRoll}
	case domain.TurnKeeping:
		return Move{Action: domain.ActionKeep, Keep: BestKeep(turn.CurrentRoll)}
	case domain.TurnDeciding:
		action := brain.ChooseAction(turn, onBoard)
		if action == domain.ActionBank && !domain.CanBank(turn, onBoard) {
			action = domain.ActionRoll
		}
		return Move{Action: action}
	}
	return Move{Action: domain.ActionEndTurn}
}
