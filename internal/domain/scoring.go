package domain

import "fmt"

// ScoreLine is one applied scoring rule in a breakdown.
type ScoreLine struct {
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// ScoreResult reports the best score achievable from a set of dice and how
// each die was used. ScoringDice and RemainingDice together partition the
// input exactly, as multisets.
type ScoreResult struct {
	Score         int         `json:"score"`
	ScoringDice   Dice        `json:"scoring_dice"`
	RemainingDice Dice        `json:"remaining_dice"`
	Breakdown     []ScoreLine `json:"breakdown"`
}

// ScoreSelection computes the maximum legitimately achievable score from the
// given dice, using every die it can. Combinations are discovered in order:
// five-die straight, four-die run, three or more of a kind per face, then
// single 1s and 5s. Dice contributing to no rule are reported unused.
func ScoreSelection(d Dice) ScoreResult {
	var res ScoreResult
	if len(d) == 0 {
		return res
	}
	counts := CountDice(d)

	// Five-die straight consumes everything.
	if len(d) == 5 {
		for _, lo := range []Die{1, 2} {
			if isExactRun(counts, lo, lo+4) {
				res.Score = StraightScore
				res.ScoringDice = flatten(counts)
				res.Breakdown = append(res.Breakdown, ScoreLine{
					Description: fmt.Sprintf("Straight %d-%d", lo, lo+4),
					Points:      StraightScore,
				})
				return res
			}
		}
	}

	// Four-die run; a leftover die scores independently only as a 1 or 5.
	for _, lo := range []Die{1, 2} {
		hi := lo + 3
		if !hasRun(counts, lo, hi) {
			continue
		}
		left := counts
		res.Score = ShortStraightScore
		res.Breakdown = append(res.Breakdown, ScoreLine{
			Description: fmt.Sprintf("Run %d-%d", lo, hi),
			Points:      ShortStraightScore,
		})
		for f := lo; f <= hi; f++ {
			left[f]--
			res.ScoringDice = append(res.ScoringDice, f)
		}
		scoreSingles(&res, &left)
		res.RemainingDice = flatten(left)
		return res
	}

	// Three or more of a kind, per face.
	left := counts
	for f := MinFace; f <= MaxFace; f++ {
		n := left[f]
		if n < 3 {
			continue
		}
		base := int(f) * 100
		if f == 1 {
			base = TripleOnesScore
		}
		points := base
		label := fmt.Sprintf("Three %ds", f)
		switch n {
		case 4:
			points = base * 2
			label = fmt.Sprintf("Four %ds", f)
		case 5:
			points = base * 4
			label = fmt.Sprintf("Five %ds", f)
		}
		res.Score += points
		res.Breakdown = append(res.Breakdown, ScoreLine{Description: label, Points: points})
		for i := 0; i < n; i++ {
			res.ScoringDice = append(res.ScoringDice, f)
		}
		left[f] = 0
	}

	scoreSingles(&res, &left)
	res.RemainingDice = flatten(left)
	return res
}

// scoreSingles consumes leftover 1s and 5s, which always score on their own.
func scoreSingles(res *ScoreResult, left *Counts) {
	for left[1] > 0 {
		res.Score += SingleOneScore
		res.ScoringDice = append(res.ScoringDice, 1)
		res.Breakdown = append(res.Breakdown, ScoreLine{Description: "Single 1", Points: SingleOneScore})
		left[1]--
	}
	for left[5] > 0 {
		res.Score += SingleFiveScore
		res.ScoringDice = append(res.ScoringDice, 5)
		res.Breakdown = append(res.Breakdown, ScoreLine{Description: "Single 5", Points: SingleFiveScore})
		left[5]--
	}
}

// isExactRun reports whether every face in [lo, hi] appears exactly once.
func isExactRun(c Counts, lo, hi Die) bool {
	for f := lo; f <= hi; f++ {
		if c[f] != 1 {
			return false
		}
	}
	return true
}

// hasRun reports whether every face in [lo, hi] appears at least once.
func hasRun(c Counts, lo, hi Die) bool {
	for f := lo; f <= hi; f++ {
		if c[f] == 0 {
			return false
		}
	}
	return true
}

// ScoreSingles sums 100/50 for 1s and 5s only, ignoring combinations.
func ScoreSingles(d Dice) int {
	total := 0
	for _, die := range d {
		switch die {
		case 1:
			total += SingleOneScore
		case 5:
			total += SingleFiveScore
		}
	}
	return total
}

// HasScoring reports whether the dice contain any scoring combination.
func HasScoring(d Dice) bool {
	return ScoreSelection(d).Score > 0
}

// IsBust reports whether a roll scores nothing. An empty roll is a bust.
func IsBust(d Dice) bool {
	return !HasScoring(d)
}
