// Package render contains the sinks a match reports its board changes to.
package render

import (
	"madn/board"
	"madn/game"
)

// Renderer receives every visible change of a match: the board once at setup, each piece
// whenever it is released, moved or sent home, and the winner.
type Renderer interface {
	DrawBoard(size board.Size)
	PlacePiece(v game.PieceView)
	DrawWinner(c board.Color)
}

type nop struct{}

// Nop discards everything.
func Nop() Renderer { return nop{} }

func (nop) DrawBoard(board.Size)      {}
func (nop) PlacePiece(game.PieceView) {}
func (nop) DrawWinner(board.Color)    {}

// Multi fans out to several renderers in order.
type Multi []Renderer

func (m Multi) DrawBoard(size board.Size) {
	for _, r := range m {
		r.DrawBoard(size)
	}
}

func (m Multi) PlacePiece(v game.PieceView) {
	for _, r := range m {
		r.PlacePiece(v)
	}
}

func (m Multi) DrawWinner(c board.Color) {
	for _, r := range m {
		r.DrawWinner(c)
	}
}
