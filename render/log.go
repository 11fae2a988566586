package render

import (
	"github.com/rs/zerolog"

	"madn/board"
	"madn/game"
)

// Log writes every notification to a zerolog logger at debug level.
type Log struct {
	logger zerolog.Logger
}

func NewLog(logger zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) DrawBoard(size board.Size) {
	l.logger.Debug().Stringer("size", size).Int("unit", size.Unit()).Msg("board")
}

func (l *Log) PlacePiece(v game.PieceView) {
	l.logger.Debug().
		Stringer("color", v.Color).
		Int("slot", v.Slot).
		Int("x", v.Pos.X).
		Int("y", v.Pos.Y).
		Int("heading", int(v.Heading)).
		Stringer("state", v.State).
		Msg("piece")
}

func (l *Log) DrawWinner(c board.Color) {
	l.logger.Info().Msgf("%s has won the game", c)
}
