package domain

import (
	"fmt"
	"sort"
)

// KeepValidation is the outcome of checking a proposed keep against a roll.
// An invalid keep carries a human-readable reason so the caller can reject
// the move and re-prompt.
type KeepValidation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateKeep reports whether keep is a legal selection from roll: non-empty,
// available at the required multiplicity, and fully scoring. Partial keeps
// with non-scoring dice are illegal even when a subset would score.
func ValidateKeep(roll, keep Dice) KeepValidation {
	if len(keep) == 0 {
		return KeepValidation{Reason: "no dice selected"}
	}
	for _, die := range keep {
		if die < MinFace || die > MaxFace {
			return KeepValidation{Reason: fmt.Sprintf("invalid die value %d", die)}
		}
	}
	rollCounts := CountDice(roll)
	keepCounts := CountDice(keep)
	for f := MinFace; f <= MaxFace; f++ {
		if keepCounts[f] > rollCounts[f] {
			return KeepValidation{Reason: fmt.Sprintf(
				"selection uses %d dice showing %d but the roll has %d", keepCounts[f], f, rollCounts[f])}
		}
	}
	if sel := ScoreSelection(keep); len(sel.RemainingDice) > 0 {
		return KeepValidation{Reason: "every kept die must contribute to the score"}
	}
	return KeepValidation{Valid: true}
}

// straightWindows are the runs a player may build one die at a time.
var straightWindows = []struct{ lo, hi Die }{{1, 4}, {2, 5}, {2, 6}}

// SelectableIndices computes which die positions a client may toggle next.
// Indices already in selected are always returned so they can be deselected.
// An unselected die is offered when it is a 1 or 5, when adding it strictly
// raises the achievable score over the current selection, or when it grows a
// straight or a same-face set the rest of the roll can still complete. The
// last two clauses let a player assemble a straight or a triple one die at a
// time instead of only in one atomic gesture.
func SelectableIndices(roll Dice, selected []int) []int {
	selSet := make(map[int]bool, len(selected))
	for _, idx := range selected {
		selSet[idx] = true
	}
	var selVals Dice
	for _, idx := range selected {
		if idx >= 0 && idx < len(roll) {
			selVals = append(selVals, roll[idx])
		}
	}
	base := ScoreSelection(selVals).Score

	out := append([]int{}, selected...)
	for i, v := range roll {
		if selSet[i] {
			continue
		}
		switch {
		case v == 1 || v == 5:
			out = append(out, i)
		case ScoreSelection(append(selVals.Clone(), v)).Score > base:
			out = append(out, i)
		case buildsStraight(roll, selVals, v):
			out = append(out, i)
		case buildsOfAKind(roll, selVals, v):
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// buildsStraight reports whether selecting candidate keeps the growing
// selection a non-repeating subset of a straight window the roll can still
// complete, even though the incomplete straight currently scores zero.
func buildsStraight(roll, selVals Dice, candidate Die) bool {
	grown := CountDice(append(selVals.Clone(), candidate))
	rollCounts := CountDice(roll)
	for _, w := range straightWindows {
		if fitsWindow(grown, rollCounts, w.lo, w.hi) {
			return true
		}
	}
	return false
}

func fitsWindow(grown, roll Counts, lo, hi Die) bool {
	for f := MinFace; f <= MaxFace; f++ {
		if grown[f] == 0 {
			continue
		}
		if grown[f] > 1 || f < lo || f > hi {
			return false
		}
	}
	// Every face the window still needs must be available in the rest of
	// the roll.
	for f := lo; f <= hi; f++ {
		if grown[f] == 0 && roll[f] < 1 {
			return false
		}
	}
	return true
}

// buildsOfAKind reports whether selecting candidate grows a same-face set
// that the roll holds three or more of, so a triple can be assembled die by
// die before it scores.
func buildsOfAKind(roll, selVals Dice, candidate Die) bool {
	for _, die := range selVals {
		if die != candidate {
			return false
		}
	}
	return CountDice(roll)[candidate] >= 3
}
