package domain

const (
	// DicePerTurn is the size of a fresh dice pool.
	DicePerTurn = 5

	// EntryThreshold is the minimum self-earned turn score required before a
	// player's banked score counts ("on the board"). Carryover points never
	// count toward entry.
	EntryThreshold = 600

	// TargetScore triggers the final round once a player's total reaches it.
	TargetScore = 10000
)

// Scoring values.
const (
	StraightScore      = 1500 // five-die run, 1-5 or 2-6
	ShortStraightScore = 750  // four-die run, 1-4 or 2-5
	TripleOnesScore    = 1000
	SingleOneScore     = 100
	SingleFiveScore    = 50
)
