package app

import "tenthousand/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted       EventKind = "game_started"
	EventDiceRolled        EventKind = "dice_rolled"
	EventDiceKept          EventKind = "dice_kept"
	EventBusted            EventKind = "busted"
	EventBanked            EventKind = "banked"
	EventCarryoverDeclined EventKind = "carryover_declined"
	EventTurnEnded         EventKind = "turn_ended"
	EventCarryoverOffered  EventKind = "carryover_offered"
	EventGameEnded         EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	Players         []domain.PlayerState `json:"players"`
	FirstTurnUserID string               `json:"first_turn_user_id"`
}

type DiceRolledPayload struct {
	UserID     string      `json:"user_id"`
	Roll       domain.Dice `json:"roll"`
	Selectable []int       `json:"selectable"`
}

type DiceKeptPayload struct {
	UserID        string      `json:"user_id"`
	Kept          domain.Dice `json:"kept"`
	KeepScore     int         `json:"keep_score"`
	TurnScore     int         `json:"turn_score"`
	DiceRemaining int         `json:"dice_remaining"`
	HotDice       bool        `json:"hot_dice"`
}

type BustedPayload struct {
	UserID        string `json:"user_id"`
	ForfeitPoints int    `json:"forfeit_points"`
}

type BankedPayload struct {
	UserID    string `json:"user_id"`
	TurnScore int    `json:"turn_score"`
	Total     int    `json:"total"`
}

type CarryoverDeclinedPayload struct {
	UserID string `json:"user_id"`
}

type TurnEndedPayload struct {
	UserID         string `json:"user_id"`
	NextTurnUserID string `json:"next_turn_user_id,omitempty"`
}

type CarryoverOfferedPayload struct {
	ToUserID  string `json:"to_user_id"`
	Points    int    `json:"points"`
	DiceCount int    `json:"dice_count"`
}

type GameEndedPayload struct {
	WinnerUserID string               `json:"winner_user_id"`
	Players      []domain.PlayerState `json:"players"`
}
