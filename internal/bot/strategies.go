package bot

import (
	"math/rand"

	"tenthousand/internal/domain"
)

// ConservativeBot banks as soon as the turn is worth keeping.
type ConservativeBot struct{}

func (b *ConservativeBot) ChooseAction(turn domain.TurnState, onBoard bool) domain.ActionType {
	if turn.TurnScore >= DefaultTuning.ConservativeBankAt {
		return domain.ActionBank
	}
	return domain.ActionRoll
}

// AggressiveBot pushes almost every turn, stopping only when the pile at
// stake gets too large to gamble.
type AggressiveBot struct{}

func (b *AggressiveBot) ChooseAction(turn domain.TurnState, onBoard bool) domain.ActionType {
	if turn.TurnScore >= DefaultTuning.AggressiveBankAt {
		return domain.ActionBank
	}
	return domain.ActionRoll
}

// BalancedBot weighs the turn score against the size of the remaining pool:
// a small pool busts often, so it banks earlier there.
type BalancedBot struct{}

func (b *BalancedBot) ChooseAction(turn domain.TurnState, onBoard bool) domain.ActionType {
	switch {
	case turn.TurnScore >= DefaultTuning.BalancedCeiling:
		return domain.ActionBank
	case turn.DiceRemaining <= DefaultTuning.BalancedFewDice && turn.TurnScore >= DefaultTuning.BalancedBankAt:
		return domain.ActionBank
	case turn.DiceRemaining == domain.DicePerTurn && turn.TurnScore >= DefaultTuning.BalancedBankAt:
		// Hot dice already banked the risk; lock the score in.
		return domain.ActionBank
	}
	return domain.ActionRoll
}

// ChaosBot flips a coin. Useful as a baseline opponent and for soak-testing
// the engine with arbitrary but legal play.
type ChaosBot struct {
	rng *rand.Rand
}

func (b *ChaosBot) ChooseAction(turn domain.TurnState, onBoard bool) domain.ActionType {
	if b.rng.Intn(2) == 0 {
		return domain.ActionBank
	}
	return domain.ActionRoll
}
