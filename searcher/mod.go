// Package searcher picks pieces by playing out random continuations of the match.
package searcher

import (
	"math"

	"madn/board"
)

const C_SQUARED = 2.0

const WIN = 1.0
const LOSS = 0.0

func reward(winner, player board.Color) float64 {
	if player == winner {
		return WIN
	}
	return LOSS
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored arms
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
