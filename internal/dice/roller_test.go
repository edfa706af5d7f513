package dice

import (
	"testing"

	"tenthousand/internal/domain"
)

func TestRollerDeterministic(t *testing.T) {
	a := NewRoller(42)
	b := NewRoller(42)

	for i := 0; i < 10; i++ {
		ra := a.Roll(5)
		rb := b.Roll(5)
		if domain.CountDice(ra) != domain.CountDice(rb) {
			t.Fatalf("roll %d diverged: %v vs %v", i, ra, rb)
		}
		for j := range ra {
			if ra[j] != rb[j] {
				t.Fatalf("roll %d diverged at die %d: %v vs %v", i, j, ra, rb)
			}
		}
	}
}

func TestRollerFacesInRange(t *testing.T) {
	r := NewRoller(7)
	for i := 0; i < 200; i++ {
		for _, d := range r.Roll(5) {
			if d < domain.MinFace || d > domain.MaxFace {
				t.Fatalf("die %d out of range", d)
			}
		}
	}
}

func TestRollerCounts(t *testing.T) {
	r := NewRoller(1)
	if got := r.Roll(0); got != nil {
		t.Fatalf("Roll(0) = %v, want nil", got)
	}
	if got := r.Roll(-1); got != nil {
		t.Fatalf("Roll(-1) = %v, want nil", got)
	}
	if got := r.Roll(3); len(got) != 3 {
		t.Fatalf("Roll(3) returned %d dice", len(got))
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if a == b {
		t.Fatalf("two seeds identical: %d", a)
	}
}
