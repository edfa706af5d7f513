package domain

import "fmt"

// PlayerConfig seats a player at game start.
type PlayerConfig struct {
	ID       string
	Name     string
	AI       bool
	Strategy string
}

// PlayerState holds one player's standing. Score and OnBoard change only at
// the turn-end commit.
type PlayerState struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	OnBoard  bool   `json:"on_board"`
	AI       bool   `json:"ai"`
	Strategy string `json:"strategy,omitempty"`
}

// GameState is the full state of a game. GameOver is terminal. Seat indexes
// into Players are stable for the life of the game; -1 marks the index
// fields as unset.
type GameState struct {
	Players                []PlayerState `json:"players"`
	CurrentPlayerIndex     int           `json:"current_player_index"`
	Turn                   TurnState     `json:"turn"`
	CarryoverPot           *CarryoverPot `json:"carryover_pot,omitempty"`
	FinalRound             bool          `json:"final_round"`
	FinalRoundTriggerIndex int           `json:"final_round_trigger_index"`
	ScoreToBeat            int           `json:"score_to_beat"`
	ScoreToBeatPlayerIndex int           `json:"score_to_beat_player_index"`
	GameOver               bool          `json:"game_over"`
}

// NewGameState seats the players in order, all off the board with zero
// score, and opens the first player's turn.
func NewGameState(configs []PlayerConfig) GameState {
	players := make([]PlayerState, len(configs))
	for i, cfg := range configs {
		players[i] = PlayerState{ID: cfg.ID, Name: cfg.Name, AI: cfg.AI, Strategy: cfg.Strategy}
	}
	return GameState{
		Players:                players,
		Turn:                   NewTurnState(nil),
		FinalRoundTriggerIndex: -1,
		ScoreToBeat:            -1,
		ScoreToBeatPlayerIndex: -1,
	}
}

// GameReducer applies one action to the game. Roll, keep, bank and decline
// delegate to the turn machine; end_turn commits the finished turn and
// advances play.
func GameReducer(s GameState, a Action) (GameState, error) {
	if s.GameOver {
		return s, fmt.Errorf("%w: %s after game over", ErrInvalidTransition, a.Type)
	}
	switch a.Type {
	case ActionRoll, ActionKeep, ActionBank, ActionDeclineCarryover:
		turn, err := TurnReducer(s.Turn, a)
		if err != nil {
			return s, err
		}
		s.Turn = turn
		if a.Type == ActionDeclineCarryover {
			// A declined pot is gone; it does not pass further down the table.
			s.CarryoverPot = nil
		}
		return s, nil
	case ActionEndTurn:
		return endTurn(s)
	}
	return s, fmt.Errorf("%w: unknown action %s", ErrInvalidTransition, a.Type)
}

func endTurn(s GameState) (GameState, error) {
	if s.Turn.Phase != TurnEnded {
		return s, fmt.Errorf("%w: end_turn in phase %s", ErrInvalidTransition, s.Turn.Phase)
	}

	players := make([]PlayerState, len(s.Players))
	copy(players, s.Players)
	s.Players = players
	idx := s.CurrentPlayerIndex
	committed := s.Turn.TurnScore

	// Commit a banked score. A bust zeroed the turn score, so a positive
	// score means the turn ended on a bank.
	if committed > 0 {
		players[idx].Score += committed
		players[idx].OnBoard = true
	}

	// Carryover handoff: a bank with unused dice leaves a pot for the next
	// player; a bust clears any existing pot.
	if committed > 0 && s.Turn.DiceRemaining > 0 {
		s.CarryoverPot = &CarryoverPot{Points: committed, DiceCount: s.Turn.DiceRemaining}
	} else {
		s.CarryoverPot = nil
	}

	// Endgame bookkeeping.
	total := players[idx].Score
	switch {
	case !s.FinalRound && total >= TargetScore:
		s.FinalRound = true
		s.FinalRoundTriggerIndex = idx
		s.ScoreToBeat = total
		s.ScoreToBeatPlayerIndex = idx
	case s.FinalRound && total > s.ScoreToBeat:
		s.ScoreToBeat = total
		s.ScoreToBeatPlayerIndex = idx
	}

	s.CurrentPlayerIndex = (idx + 1) % len(players)

	// The game ends when a full lap passes without unseating the record
	// holder; otherwise the next turn starts, as a steal if a pot exists.
	if s.FinalRound && s.CurrentPlayerIndex == s.ScoreToBeatPlayerIndex {
		s.GameOver = true
		return s, nil
	}
	s.Turn = NewTurnState(s.CarryoverPot)
	return s, nil
}

// CurrentPlayer returns the player whose turn it is.
func CurrentPlayer(s GameState) PlayerState {
	return s.Players[s.CurrentPlayerIndex]
}

// Winner returns the winning player once the game is over. Ties go to the
// earliest seat.
func Winner(s GameState) (PlayerState, bool) {
	if !s.GameOver || len(s.Players) == 0 {
		return PlayerState{}, false
	}
	best := 0
	for i, p := range s.Players {
		if p.Score > s.Players[best].Score {
			best = i
		}
	}
	return s.Players[best], true
}
