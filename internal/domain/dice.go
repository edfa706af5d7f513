package domain

// Die is a single die face value, 1 through 6.
type Die int

// Faces on a standard die.
const (
	MinFace Die = 1
	MaxFace Die = 6
)

// Dice is an ordered sequence of die values. Order is significant only for
// index-addressing by a client; scoring treats dice as a multiset.
type Dice []Die

// Clone returns an independent copy of the dice.
func (d Dice) Clone() Dice {
	if d == nil {
		return nil
	}
	out := make(Dice, len(d))
	copy(out, d)
	return out
}

// Counts is a face histogram indexed by face value; index 0 is unused.
type Counts [MaxFace + 1]int

// CountDice returns the face histogram for the given dice. Out-of-range
// values are not counted.
func CountDice(d Dice) Counts {
	var c Counts
	for _, die := range d {
		if die >= MinFace && die <= MaxFace {
			c[die]++
		}
	}
	return c
}

// flatten expands a histogram back into dice, in face order.
func flatten(c Counts) Dice {
	var out Dice
	for f := MinFace; f <= MaxFace; f++ {
		for i := 0; i < c[f]; i++ {
			out = append(out, f)
		}
	}
	return out
}
