package bot

// BotTuning holds the banking thresholds the strategies decide with.
type BotTuning struct {
	// ConservativeBankAt is the turn score at which the conservative bot
	// stops pushing.
	ConservativeBankAt int
	// AggressiveBankAt is the turn score at which even the aggressive bot
	// gives up rolling.
	AggressiveBankAt int
	// BalancedBankAt is the balanced bot's ordinary stopping point.
	BalancedBankAt int
	// BalancedFewDice marks a pool small enough that the balanced bot banks
	// anything it can.
	BalancedFewDice int
	// BalancedCeiling is the score above which the balanced bot banks no
	// matter how many dice remain.
	BalancedCeiling int
}

// DefaultTuning trades bust risk against pushed points per strategy.
var DefaultTuning = BotTuning{
	ConservativeBankAt: 350,
	AggressiveBankAt:   2000,
	BalancedBankAt:     500,
	BalancedFewDice:    2,
	BalancedCeiling:    1500,
}
