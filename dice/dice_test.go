package dice

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRandom(t *testing.T) {
	t.Run("rolls stay on the die", func(t *testing.T) {
		d := NewRandom(7)
		seen := map[int]int{}
		for i := 0; i < 6000; i++ {
			v := d.Roll()
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, Faces)
			seen[v]++
		}
		require.Len(t, seen, Faces, "every face should show up in 6000 rolls")
	})

	t.Run("same seed gives same sequence", func(t *testing.T) {
		a, b := NewRandom(42), NewRandom(42)
		for i := 0; i < 100; i++ {
			require.Equal(t, a.Roll(), b.Roll())
		}
	})
}

func TestBetween(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		v := Between(rng, int8(-2), int8(2))
		require.GreaterOrEqual(t, v, int8(-2))
		require.LessOrEqual(t, v, int8(2))
	}
	require.Equal(t, 5, Between(rng, 5, 5), "an empty range collapses to its lower bound")
}

func TestScripted(t *testing.T) {
	t.Run("replays and cycles", func(t *testing.T) {
		d := NewScripted(6, 1, 3)
		got := []int{}
		for i := 0; i < 7; i++ {
			got = append(got, d.Roll())
		}
		require.Equal(t, []int{6, 1, 3, 6, 1, 3, 6}, got)
		require.Equal(t, 7, d.Rolls())
	})

	t.Run("rejects bad scripts", func(t *testing.T) {
		require.Panics(t, func() { NewScripted() }, "an empty script cannot roll")
		require.Panics(t, func() { NewScripted(1, 7) }, "7 is not a die face")
		require.Panics(t, func() { NewScripted(0) }, "0 is not a die face")
	})

	t.Run("func adapter", func(t *testing.T) {
		var d Dice = Func(func() int { return 4 })
		require.Equal(t, 4, d.Roll())
	})
}
