package bot

import (
	"math/rand"
	"testing"

	"tenthousand/internal/domain"
)

func decidingTurn(score, diceRemaining int) domain.TurnState {
	return domain.TurnState{
		Phase:         domain.TurnDeciding,
		TurnScore:     score,
		DiceRemaining: diceRemaining,
	}
}

func TestConservativeBot(t *testing.T) {
	b := &ConservativeBot{}
	if got := b.ChooseAction(decidingTurn(300, 3), true); got != domain.ActionRoll {
		t.Errorf("below threshold: %s, want roll", got)
	}
	if got := b.ChooseAction(decidingTurn(350, 3), true); got != domain.ActionBank {
		t.Errorf("at threshold: %s, want bank", got)
	}
}

func TestAggressiveBot(t *testing.T) {
	b := &AggressiveBot{}
	if got := b.ChooseAction(decidingTurn(1500, 1), true); got != domain.ActionRoll {
		t.Errorf("mid pile: %s, want roll", got)
	}
	if got := b.ChooseAction(decidingTurn(2000, 1), true); got != domain.ActionBank {
		t.Errorf("large pile: %s, want bank", got)
	}
}

func TestBalancedBot(t *testing.T) {
	b := &BalancedBot{}
	tests := []struct {
		name string
		turn domain.TurnState
		want domain.ActionType
	}{
		{name: "SmallScoreManyDice", turn: decidingTurn(300, 4), want: domain.ActionRoll},
		{name: "GoodScoreManyDice", turn: decidingTurn(600, 4), want: domain.ActionRoll},
		{name: "GoodScoreFewDice", turn: decidingTurn(600, 2), want: domain.ActionBank},
		{name: "SmallScoreFewDice", turn: decidingTurn(300, 1), want: domain.ActionRoll},
		{name: "AboveCeiling", turn: decidingTurn(1500, 4), want: domain.ActionBank},
		{name: "HotDiceGoodScore", turn: decidingTurn(700, 5), want: domain.ActionBank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ChooseAction(tt.turn, true); got != tt.want {
				t.Fatalf("ChooseAction(%+v) = %s, want %s", tt.turn, got, tt.want)
			}
		})
	}
}

func TestChaosBotIsLegalEitherWay(t *testing.T) {
	b := &ChaosBot{rng: rand.New(rand.NewSource(1))}
	for i := 0; i < 50; i++ {
		got := b.ChooseAction(decidingTurn(500, 3), true)
		if got != domain.ActionRoll && got != domain.ActionBank {
			t.Fatalf("ChooseAction = %s, want roll or bank", got)
		}
	}
}

func TestNewBrain(t *testing.T) {
	for _, strategy := range []string{StrategyConservative, StrategyAggressive, StrategyBalanced, StrategyChaos} {
		if _, err := NewBrain(strategy, rand.New(rand.NewSource(1))); err != nil {
			t.Errorf("NewBrain(%q): %v", strategy, err)
		}
	}
	if _, err := NewBrain("", nil); err != nil {
		t.Errorf("NewBrain default: %v", err)
	}
	if _, err := NewBrain("bogus", nil); err == nil {
		t.Error("NewBrain accepted an unknown strategy")
	}
	if _, err := NewBrain(StrategyChaos, nil); err == nil {
		t.Error("NewBrain built a chaos bot without a random source")
	}
}
