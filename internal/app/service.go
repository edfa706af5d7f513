package app

import (
	"errors"
	"fmt"

	"tenthousand/internal/dice"
	"tenthousand/internal/domain"
)

// Service contains the game use-cases operating on domain state. Methods
// take a state and return the successor; the input is never mutated.
type Service struct {
	roller *dice.Roller
}

// NewService constructs a Service with the provided roller or a randomly
// seeded default.
func NewService(roller *dice.Roller) *Service {
	if roller == nil {
		roller = dice.NewRoller(dice.MustSeed())
	}
	return &Service{roller: roller}
}

var (
	ErrTooFewPlayers = errors.New("not enough players to start")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
	ErrCannotBank    = errors.New("banking not allowed")
	ErrInvalidKeep   = errors.New("invalid keep")
)

// StartGame seats the configured players and opens the first turn.
func (s *Service) StartGame(configs []domain.PlayerConfig) (domain.GameState, []Event, error) {
	if len(configs) < MinPlayersToStartGame {
		return domain.GameState{}, nil, ErrTooFewPlayers
	}
	game := domain.NewGameState(configs)
	events := []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			Players:         game.Players,
			FirstTurnUserID: domain.CurrentPlayer(game).ID,
		},
	}}
	return game, events, nil
}

// Roll rolls the actor's remaining dice. A bust ends and commits the turn in
// the same call.
func (s *Service) Roll(game domain.GameState, actorID string) (domain.GameState, []Event, error) {
	if err := s.checkActor(game, actorID); err != nil {
		return game, nil, err
	}

	roll := s.roller.Roll(game.Turn.DiceRemaining)
	next, err := domain.GameReducer(game, domain.Action{Type: domain.ActionRoll, Dice: roll})
	if err != nil {
		return game, nil, err
	}

	events := []Event{{
		Kind: EventDiceRolled,
		Payload: DiceRolledPayload{
			UserID:     actorID,
			Roll:       roll,
			Selectable: domain.SelectableIndices(roll, nil),
		},
	}}

	if next.Turn.Phase == domain.TurnEnded {
		events = append(events, Event{
			Kind: EventBusted,
			Payload: BustedPayload{
				UserID:        actorID,
				ForfeitPoints: game.Turn.TurnScore,
			},
		})
		return s.endTurn(next, events)
	}
	return next, events, nil
}

// Keep banks the selected dice into the turn score. The selection must be a
// sub-multiset of the current roll with every die contributing.
func (s *Service) Keep(game domain.GameState, actorID string, keep domain.Dice) (domain.GameState, []Event, error) {
	if err := s.checkActor(game, actorID); err != nil {
		return game, nil, err
	}

	if v := domain.ValidateKeep(game.Turn.CurrentRoll, keep); !v.Valid {
		return game, nil, fmt.Errorf("%w: %s", ErrInvalidKeep, v.Reason)
	}

	next, err := domain.GameReducer(game, domain.Action{Type: domain.ActionKeep, Dice: keep})
	if err != nil {
		return game, nil, err
	}

	events := []Event{{
		Kind: EventDiceKept,
		Payload: DiceKeptPayload{
			UserID:        actorID,
			Kept:          keep.Clone(),
			KeepScore:     domain.ScoreSelection(keep).Score,
			TurnScore:     next.Turn.TurnScore,
			DiceRemaining: next.Turn.DiceRemaining,
			HotDice:       next.Turn.DiceRemaining == domain.DicePerTurn,
		},
	}}
	return next, events, nil
}

// Bank ends the actor's turn and commits the turn score, entry threshold
// permitting.
func (s *Service) Bank(game domain.GameState, actorID string) (domain.GameState, []Event, error) {
	if err := s.checkActor(game, actorID); err != nil {
		return game, nil, err
	}

	if !domain.CanBank(game.Turn, domain.CurrentPlayer(game).OnBoard) {
		return game, nil, ErrCannotBank
	}

	next, err := domain.GameReducer(game, domain.Action{Type: domain.ActionBank})
	if err != nil {
		return game, nil, err
	}

	idx := next.CurrentPlayerIndex
	events := []Event{{
		Kind: EventBanked,
		Payload: BankedPayload{
			UserID:    actorID,
			TurnScore: next.Turn.TurnScore,
			Total:     next.Players[idx].Score + next.Turn.TurnScore,
		},
	}}
	return s.endTurn(next, events)
}

// DeclineCarryover refuses an inherited pot and restarts the turn with a
// fresh five-die pool.
func (s *Service) DeclineCarryover(game domain.GameState, actorID string) (domain.GameState, []Event, error) {
	if err := s.checkActor(game, actorID); err != nil {
		return game, nil, err
	}

	next, err := domain.GameReducer(game, domain.Action{Type: domain.ActionDeclineCarryover})
	if err != nil {
		return game, nil, err
	}

	events := []Event{{
		Kind:    EventCarryoverDeclined,
		Payload: CarryoverDeclinedPayload{UserID: actorID},
	}}
	return next, events, nil
}

func (s *Service) checkActor(game domain.GameState, actorID string) error {
	if game.GameOver {
		return ErrGameOver
	}
	if domain.CurrentPlayer(game).ID != actorID {
		return ErrNotYourTurn
	}
	return nil
}

// endTurn commits a finished turn and advances play, emitting the handoff
// events.
func (s *Service) endTurn(game domain.GameState, events []Event) (domain.GameState, []Event, error) {
	endedBy := domain.CurrentPlayer(game).ID
	next, err := domain.GameReducer(game, domain.Action{Type: domain.ActionEndTurn})
	if err != nil {
		return game, events, err
	}

	if next.GameOver {
		winner, _ := domain.Winner(next)
		events = append(events,
			Event{Kind: EventTurnEnded, Payload: TurnEndedPayload{UserID: endedBy}},
			Event{Kind: EventGameEnded, Payload: GameEndedPayload{
				WinnerUserID: winner.ID,
				Players:      next.Players,
			}},
		)
		return next, events, nil
	}

	nextPlayer := domain.CurrentPlayer(next)
	events = append(events, Event{
		Kind: EventTurnEnded,
		Payload: TurnEndedPayload{
			UserID:         endedBy,
			NextTurnUserID: nextPlayer.ID,
		},
	})
	if next.CarryoverPot != nil {
		events = append(events, Event{
			Kind: EventCarryoverOffered,
			Payload: CarryoverOfferedPayload{
				ToUserID:  nextPlayer.ID,
				Points:    next.CarryoverPot.Points,
				DiceCount: next.CarryoverPot.DiceCount,
			},
		})
	}
	return next, events, nil
}
