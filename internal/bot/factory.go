package bot

import (
	"fmt"
	"math/rand"

	"tenthousand/internal/dice"
)

// Strategy names accepted by NewBrain. They double as the PlayerConfig
// strategy values and the match label vocabulary.
const (
	StrategyConservative = "conservative"
	StrategyAggressive   = "aggressive"
	StrategyBalanced     = "balanced"
	StrategyChaos        = "chaos"
)

// NewBrain creates a new AI brain for the named strategy. The rng is only
// used by strategies that randomize; it may be nil for the others.
func NewBrain(strategy string, rng *rand.Rand) (Brain, error) {
	switch strategy {
	case StrategyConservative:
		return &ConservativeBot{}, nil
	case StrategyAggressive:
		return &AggressiveBot{}, nil
	case StrategyBalanced, "":
		return &BalancedBot{}, nil
	case StrategyChaos:
		if rng == nil {
			return nil, fmt.Errorf("strategy %s needs a random source", strategy)
		}
		return &ChaosBot{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
	}
}

// NewAgent builds an agent for a provisioned bot user. The strategy comes
// from the bot's identity, falling back to the balanced brain.
func NewAgent(userID string) (*Agent, error) {
	name := userID
	strategy := StrategyBalanced
	if identity, ok := GetBotConfig(userID); ok {
		if identity.DisplayName != "" {
			name = identity.DisplayName
		}
		if identity.Strategy != "" {
			strategy = identity.Strategy
		}
	}

	brain, err := NewBrain(strategy, rand.New(rand.NewSource(dice.MustSeed())))
	if err != nil {
		return nil, err
	}
	return &Agent{ID: userID, Name: name, Strategy: brain}, nil
}
