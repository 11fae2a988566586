package engine

import (
	"time"

	"madn/board"
	"madn/game"
)

type Engine interface {
	// Run plays a match until there is a winner or the turn cap is reached
	Run() Result
}

// Result is the outcome of a finished match.
type Result struct {
	ID       string
	Size     board.Size
	Start    board.Color
	Winner   board.Color // board.NoColor when the turn cap was reached
	Turns    int
	History  []game.Move
	Final    game.State
	Duration time.Duration
}

func (r Result) HasWinner() bool {
	return r.Winner != board.NoColor
}
