package domain

import (
	"errors"
	"fmt"
)

// TurnPhase represents the stage of a single player's turn.
type TurnPhase string

const (
	// TurnRolling is the ordinary opening phase with a fresh pool.
	TurnRolling TurnPhase = "rolling"
	// TurnStealRequired opens a turn that inherited a carryover pot; the
	// inherited dice must be rolled first.
	TurnStealRequired TurnPhase = "steal_required"
	// TurnKeeping follows a scoring roll; the player must keep dice.
	TurnKeeping TurnPhase = "keeping"
	// TurnDeciding is the roll-again-or-bank choice.
	TurnDeciding TurnPhase = "deciding"
	// TurnEnded is terminal for the turn.
	TurnEnded TurnPhase = "ended"
)

// ActionType tags engine actions.
type ActionType string

const (
	ActionRoll             ActionType = "roll"
	ActionKeep             ActionType = "keep"
	ActionBank             ActionType = "bank"
	ActionEndTurn          ActionType = "end_turn"
	ActionDeclineCarryover ActionType = "decline_carryover"
)

// Action is the tagged union fed to the reducers. Dice carries the rolled or
// kept values for roll and keep actions.
type Action struct {
	Type ActionType
	Dice Dice
}

// ErrInvalidTransition signals an action incompatible with the current phase.
// Reducers return it alongside the unchanged state.
var ErrInvalidTransition = errors.New("invalid transition")

// CarryoverPot holds the points and leftover dice a player banked without
// using, offered to the next player as a steal attempt.
type CarryoverPot struct {
	Points    int `json:"points"`
	DiceCount int `json:"dice_count"`
}

// TurnState is the state of one player's turn. Values are immutable: every
// reducer call returns a fresh state. If HasCarryover is set, TurnScore is
// never below CarryoverPoints until a bust zeroes both.
type TurnState struct {
	Phase            TurnPhase `json:"phase"`
	TurnScore        int       `json:"turn_score"`
	DiceRemaining    int       `json:"dice_remaining"`
	CurrentRoll      Dice      `json:"current_roll,omitempty"`
	KeptDice         Dice      `json:"kept_dice,omitempty"`
	HasCarryover     bool      `json:"has_carryover"`
	CarryoverClaimed bool      `json:"carryover_claimed"`
	CarryoverPoints  int       `json:"carryover_points"`
}

// NewTurnState starts a turn. With a pot the turn opens as a steal attempt
// over the inherited dice and points.
func NewTurnState(pot *CarryoverPot) TurnState {
	if pot == nil {
		return TurnState{Phase: TurnRolling, DiceRemaining: DicePerTurn}
	}
	return TurnState{
		Phase:           TurnStealRequired,
		DiceRemaining:   pot.DiceCount,
		TurnScore:       pot.Points,
		CarryoverPoints: pot.Points,
		HasCarryover:    true,
	}
}

// TurnReducer applies one action to a turn and returns the resulting state.
// Actions illegal for the current phase leave the state unchanged and return
// ErrInvalidTransition.
func TurnReducer(s TurnState, a Action) (TurnState, error) {
	switch s.Phase {
	case TurnRolling, TurnStealRequired:
		switch a.Type {
		case ActionRoll:
			return applyRoll(s, a.Dice), nil
		case ActionDeclineCarryover:
			if s.Phase == TurnStealRequired {
				return NewTurnState(nil), nil
			}
		}
	case TurnKeeping:
		if a.Type == ActionKeep {
			return applyKeep(s, a.Dice), nil
		}
	case TurnDeciding:
		switch a.Type {
		case ActionRoll:
			return applyRoll(s, a.Dice), nil
		case ActionBank:
			s.Phase = TurnEnded
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %s in phase %s", ErrInvalidTransition, a.Type, s.Phase)
}

func applyRoll(s TurnState, roll Dice) TurnState {
	s.CurrentRoll = roll.Clone()
	if IsBust(roll) {
		// A bust forfeits everything, carryover included.
		s.Phase = TurnEnded
		s.TurnScore = 0
		return s
	}
	s.Phase = TurnKeeping
	return s
}

func applyKeep(s TurnState, keep Dice) TurnState {
	s.TurnScore += ScoreSelection(keep).Score
	s.KeptDice = append(s.KeptDice.Clone(), keep...)
	s.DiceRemaining -= len(keep)
	s.CurrentRoll = nil
	if s.HasCarryover && !s.CarryoverClaimed {
		s.CarryoverClaimed = true
	}
	if s.DiceRemaining <= 0 {
		// Hot dice: keeping the whole pool grants a fresh one.
		s.DiceRemaining = DicePerTurn
	}
	s.Phase = TurnDeciding
	return s
}

// CanBank reports whether the turn may end on a bank. Players already on the
// board may bank whenever they are deciding; players off the board need the
// entry threshold in self-earned points, with carryover never counting.
func CanBank(s TurnState, onBoard bool) bool {
	if onBoard {
		return s.Phase == TurnDeciding
	}
	return s.TurnScore-s.CarryoverPoints >= EntryThreshold
}
