// Package dice provides the dice sources a match draws its rolls from.
package dice

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// Faces is the number of faces of the die. Rolling the top face grants an extra roll.
const Faces = 6

// Dice supplies roll values in [1, Faces].
type Dice interface {
	Roll() int
}

// Func adapts a plain function to Dice.
type Func func() int

func (f Func) Roll() int { return f() }

// Random is a seedable uniform die.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Roll() int {
	return Between(r.rng, 1, Faces)
}

// Between returns a uniformly drawn value in [lo, hi].
func Between[T constraints.Integer](rng *rand.Rand, lo, hi T) T {
	if hi <= lo {
		return lo
	}
	return lo + T(rng.Int63n(int64(hi-lo)+1))
}

// Scripted replays a fixed sequence of rolls and starts over once it is exhausted.
type Scripted struct {
	values []int
	next   int
	rolls  int
}

// NewScripted panics on an empty script or a value outside [1, Faces].
func NewScripted(values ...int) *Scripted {
	if len(values) == 0 {
		panic("dice: empty script")
	}
	for i, v := range values {
		if v < 1 || v > Faces {
			panic(fmt.Sprintf("dice: scripted value %d at %d is not a die face", v, i))
		}
	}
	script := make([]int, len(values))
	copy(script, values)
	return &Scripted{values: script}
}

func (s *Scripted) Roll() int {
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	s.rolls++
	return v
}

// Rolls returns how many values have been drawn so far.
func (s *Scripted) Rolls() int {
	return s.rolls
}
