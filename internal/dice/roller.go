// Package dice provides seedable dice rolling.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"tenthousand/internal/domain"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// MustSeed is NewSeed for call sites that cannot recover from a broken
// entropy source.
func MustSeed() int64 {
	seed, err := NewSeed()
	if err != nil {
		panic(err)
	}
	return seed
}

// Roller rolls six-sided dice from a seeded source. Two rollers built from
// the same seed produce the same sequence, which keeps games replayable.
// Roller is not safe for concurrent use.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a roller seeded with the given value.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns n dice with faces in [1, 6].
func (r *Roller) Roll(n int) domain.Dice {
	if n <= 0 {
		return nil
	}
	out := make(domain.Dice, n)
	for i := range out {
		out[i] = domain.Die(r.rng.Intn(int(domain.MaxFace)) + 1)
	}
	return out
}
