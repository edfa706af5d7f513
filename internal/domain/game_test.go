package domain

import (
	"errors"
	"testing"
)

func twoSeats() []PlayerConfig {
	return []PlayerConfig{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob", AI: true, Strategy: "balanced"},
	}
}

func TestNewGameState(t *testing.T) {
	game := NewGameState(twoSeats())
	if len(game.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(game.Players))
	}
	for i, p := range game.Players {
		if p.Score != 0 || p.OnBoard {
			t.Errorf("player %d starts at %+v, want zero score off the board", i, p)
		}
	}
	if game.CurrentPlayerIndex != 0 {
		t.Errorf("CurrentPlayerIndex = %d, want 0", game.CurrentPlayerIndex)
	}
	if game.Turn.Phase != TurnRolling {
		t.Errorf("opening phase = %s, want %s", game.Turn.Phase, TurnRolling)
	}
	if game.FinalRound || game.GameOver {
		t.Errorf("fresh game already in endgame: %+v", game)
	}
	if game.ScoreToBeat != -1 || game.ScoreToBeatPlayerIndex != -1 || game.FinalRoundTriggerIndex != -1 {
		t.Errorf("endgame indexes not sentinel: %+v", game)
	}
}

// Banking 1050 with one unused die leaves a one-die pot, and the next turn
// opens as a steal over that die.
func TestGameReducer_BankLeavesCarryoverPot(t *testing.T) {
	game := NewGameState(twoSeats())

	var err error
	for _, a := range []Action{
		{Type: ActionRoll, Dice: Dice{1, 1, 1, 5, 2}},
		{Type: ActionKeep, Dice: Dice{1, 1, 1, 5}},
		{Type: ActionBank},
		{Type: ActionEndTurn},
	} {
		game, err = GameReducer(game, a)
		if err != nil {
			t.Fatalf("%s failed: %v", a.Type, err)
		}
	}

	if game.Players[0].Score != 1050 || !game.Players[0].OnBoard {
		t.Errorf("player 0 = %+v, want 1050 on the board", game.Players[0])
	}
	if game.CarryoverPot == nil || game.CarryoverPot.Points != 1050 || game.CarryoverPot.DiceCount != 1 {
		t.Fatalf("CarryoverPot = %+v, want {1050 1}", game.CarryoverPot)
	}
	if game.CurrentPlayerIndex != 1 {
		t.Errorf("CurrentPlayerIndex = %d, want 1", game.CurrentPlayerIndex)
	}
	if game.Turn.Phase != TurnStealRequired {
		t.Errorf("next phase = %s, want %s", game.Turn.Phase, TurnStealRequired)
	}
	if game.Turn.DiceRemaining != 1 || game.Turn.TurnScore != 1050 {
		t.Errorf("steal turn = %+v, want one die worth 1050", game.Turn)
	}
}

// A busted steal forfeits the pot entirely; the turn after it starts clean.
func TestGameReducer_BustedStealClearsPot(t *testing.T) {
	game := NewGameState(twoSeats())
	for _, a := range []Action{
		{Type: ActionRoll, Dice: Dice{1, 1, 1, 5, 2}},
		{Type: ActionKeep, Dice: Dice{1, 1, 1, 5}},
		{Type: ActionBank},
		{Type: ActionEndTurn},
		{Type: ActionRoll, Dice: Dice{3}},
		{Type: ActionEndTurn},
	} {
		var err error
		game, err = GameReducer(game, a)
		if err != nil {
			t.Fatalf("%s failed: %v", a.Type, err)
		}
	}

	if game.Players[1].Score != 0 {
		t.Errorf("player 1 score = %d, want 0 after busted steal", game.Players[1].Score)
	}
	if game.CarryoverPot != nil {
		t.Errorf("CarryoverPot = %+v, want nil", game.CarryoverPot)
	}
	if game.CurrentPlayerIndex != 0 {
		t.Errorf("CurrentPlayerIndex = %d, want 0", game.CurrentPlayerIndex)
	}
	if game.Turn.Phase != TurnRolling || game.Turn.DiceRemaining != 5 {
		t.Errorf("next turn = %+v, want fresh rolling turn with 5 dice", game.Turn)
	}
}

// Keeping all five dice then banking leaves a full five-die pot behind.
func TestGameReducer_HotDiceBankLeavesFivePot(t *testing.T) {
	game := NewGameState(twoSeats())
	for _, a := range []Action{
		{Type: ActionRoll, Dice: Dice{1, 1, 1, 5, 5}},
		{Type: ActionKeep, Dice: Dice{1, 1, 1, 5, 5}},
		{Type: ActionBank},
		{Type: ActionEndTurn},
	} {
		var err error
		game, err = GameReducer(game, a)
		if err != nil {
			t.Fatalf("%s failed: %v", a.Type, err)
		}
	}

	if game.CarryoverPot == nil || game.CarryoverPot.Points != 1100 || game.CarryoverPot.DiceCount != 5 {
		t.Fatalf("CarryoverPot = %+v, want {1100 5}", game.CarryoverPot)
	}
}

func TestGameReducer_BustPassesTurnWithoutScore(t *testing.T) {
	game := NewGameState(twoSeats())
	for _, a := range []Action{
		{Type: ActionRoll, Dice: Dice{2, 3, 4, 6, 6}},
		{Type: ActionEndTurn},
	} {
		var err error
		game, err = GameReducer(game, a)
		if err != nil {
			t.Fatalf("%s failed: %v", a.Type, err)
		}
	}

	if game.Players[0].Score != 0 || game.Players[0].OnBoard {
		t.Errorf("player 0 = %+v, want unchanged after bust", game.Players[0])
	}
	if game.CurrentPlayerIndex != 1 || game.CarryoverPot != nil {
		t.Errorf("after bust: index=%d pot=%+v", game.CurrentPlayerIndex, game.CarryoverPot)
	}
}

func TestGameReducer_EndTurnRequiresEndedTurn(t *testing.T) {
	game := NewGameState(twoSeats())
	_, err := GameReducer(game, Action{Type: ActionEndTurn})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestGameReducer_RejectsActionsAfterGameOver(t *testing.T) {
	game := NewGameState(twoSeats())
	game.GameOver = true
	_, err := GameReducer(game, Action{Type: ActionRoll, Dice: Dice{1}})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

// bankStraight rolls a full straight, keeps it, banks, and ends the turn.
// The caller must be in a fresh five-die turn.
func bankStraight(t *testing.T, game GameState) GameState {
	t.Helper()
	straight := Dice{1, 2, 3, 4, 5}
	for _, a := range []Action{
		{Type: ActionRoll, Dice: straight},
		{Type: ActionKeep, Dice: straight},
		{Type: ActionBank},
		{Type: ActionEndTurn},
	} {
		var err error
		game, err = GameReducer(game, a)
		if err != nil {
			t.Fatalf("%s failed: %v", a.Type, err)
		}
	}
	return game
}

func TestGameReducer_FinalRoundAndWinner(t *testing.T) {
	game := NewGameState(twoSeats())
	// Put player 0 over the target: 10000 / 1500 per straight = 7 turns.
	game.Players[0].Score = 9000
	game.Players[0].OnBoard = true
	game.Players[1].OnBoard = true

	game = bankStraight(t, game) // player 0 banks to 10500, triggers final round
	if !game.FinalRound {
		t.Fatalf("final round not triggered at %+v", game.Players)
	}
	if game.ScoreToBeat != 10500 || game.ScoreToBeatPlayerIndex != 0 {
		t.Fatalf("score to beat = %d by seat %d, want 10500 by 0", game.ScoreToBeat, game.ScoreToBeatPlayerIndex)
	}
	if game.FinalRoundTriggerIndex != 0 {
		t.Fatalf("trigger index = %d, want 0", game.FinalRoundTriggerIndex)
	}
	if game.GameOver {
		t.Fatal("game over before the final lap completed")
	}

	// Player 1 gets exactly one answering turn; a bust ends the game.
	var err error
	game, err = GameReducer(game, Action{Type: ActionDeclineCarryover})
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	game, err = GameReducer(game, Action{Type: ActionRoll, Dice: Dice{2, 3, 4, 6, 6}})
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	game, err = GameReducer(game, Action{Type: ActionEndTurn})
	if err != nil {
		t.Fatalf("end_turn failed: %v", err)
	}

	if !game.GameOver {
		t.Fatal("game not over after the lap returned to the record holder")
	}
	winner, ok := Winner(game)
	if !ok || winner.ID != "p1" {
		t.Fatalf("winner = %+v ok=%t, want p1", winner, ok)
	}
}

// A higher bank during the final round takes over the record and restarts
// the lap from the new holder.
func TestGameReducer_FinalRoundRecordChangesHands(t *testing.T) {
	game := NewGameState([]PlayerConfig{
		{ID: "p1", Name: "Alice"},
		{ID: "p2", Name: "Bob"},
		{ID: "p3", Name: "Cara"},
	})
	for i := range game.Players {
		game.Players[i].OnBoard = true
	}
	game.Players[0].Score = 9000
	game.Players[1].Score = 9500

	game = bankStraight(t, game) // Alice: 10500, final round begins
	game, _ = GameReducer(game, Action{Type: ActionDeclineCarryover})
	game = bankStraight(t, game) // Bob: 11000, new record

	if game.ScoreToBeat != 11000 || game.ScoreToBeatPlayerIndex != 1 {
		t.Fatalf("score to beat = %d by seat %d, want 11000 by 1", game.ScoreToBeat, game.ScoreToBeatPlayerIndex)
	}
	if game.GameOver {
		t.Fatal("game ended before Cara's answering turn")
	}

	// The lap restarts from Bob: Cara and Alice each get one answering turn.
	game, _ = GameReducer(game, Action{Type: ActionDeclineCarryover})
	game, _ = GameReducer(game, Action{Type: ActionRoll, Dice: Dice{2, 3, 4, 6, 6}})
	game, _ = GameReducer(game, Action{Type: ActionEndTurn})
	if game.GameOver {
		t.Fatal("game ended before Alice's answering turn")
	}
	if game.CurrentPlayerIndex != 0 {
		t.Fatalf("CurrentPlayerIndex = %d, want 0", game.CurrentPlayerIndex)
	}

	// Alice busts too; play returns to Bob, the record holder, ending the game.
	game, _ = GameReducer(game, Action{Type: ActionRoll, Dice: Dice{2, 3, 4, 6, 6}})
	game, err := GameReducer(game, Action{Type: ActionEndTurn})
	if err != nil {
		t.Fatalf("end_turn failed: %v", err)
	}
	if !game.GameOver {
		t.Fatal("game not over")
	}
	winner, ok := Winner(game)
	if !ok || winner.ID != "p2" {
		t.Fatalf("winner = %+v ok=%t, want p2", winner, ok)
	}
}

func TestWinner(t *testing.T) {
	game := NewGameState(twoSeats())
	if _, ok := Winner(game); ok {
		t.Fatal("winner reported before game over")
	}

	game.GameOver = true
	game.Players[0].Score = 10000
	game.Players[1].Score = 10000
	winner, ok := Winner(game)
	if !ok || winner.ID != "p1" {
		t.Fatalf("tie winner = %+v, want earliest seat p1", winner)
	}

	game.Players[1].Score = 10050
	winner, _ = Winner(game)
	if winner.ID != "p2" {
		t.Fatalf("winner = %+v, want p2", winner)
	}
}

func TestCurrentPlayer(t *testing.T) {
	game := NewGameState(twoSeats())
	if CurrentPlayer(game).ID != "p1" {
		t.Fatalf("CurrentPlayer = %+v, want p1", CurrentPlayer(game))
	}
	game.CurrentPlayerIndex = 1
	if CurrentPlayer(game).ID != "p2" {
		t.Fatalf("CurrentPlayer = %+v, want p2", CurrentPlayer(game))
	}
}
