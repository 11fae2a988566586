package game

import (
	"fmt"

	"github.com/samber/lo"

	"madn/board"
)

// Player owns the four pieces of one color and decides which of them uses a roll.
type Player struct {
	Color  board.Color
	Pieces []*Piece

	geo *board.Geometry
}

// NewPlayer creates a player with every piece on its home cell.
func NewPlayer(geo *board.Geometry, c board.Color) *Player {
	pl := &Player{Color: c, geo: geo}
	for slot := 0; slot < board.NumHomeCells; slot++ {
		pl.Pieces = append(pl.Pieces, NewPiece(geo, c, slot))
	}
	return pl
}

func (pl *Player) AllHome() bool {
	return lo.EveryBy(pl.Pieces, func(p *Piece) bool { return p.InHome() })
}

// HasPlayablePiece reports whether a piece of the player is out of home and not done.
func (pl *Player) HasPlayablePiece() bool {
	return lo.SomeBy(pl.Pieces, playable)
}

// HasWon reports whether every piece of the player sits on its goal lane.
func (pl *Player) HasWon() bool {
	return lo.EveryBy(pl.Pieces, func(p *Piece) bool { return p.InGoal() >= 0 })
}

func playable(p *Piece) bool {
	return p.State() == OnTrack
}

// LegalPieces returns the pieces that may use a roll of steps.
//
// When every piece is at home all of them are returned: they are the candidates for
// leaving home. Otherwise pieces at home or done are dropped, then pieces that would
// run past the innermost goal cell, then pieces that would land on another piece of
// the same player.
func (pl *Player) LegalPieces(steps int) []*Piece {
	if pl.AllHome() {
		return append([]*Piece(nil), pl.Pieces...)
	}

	chain := pl.geo.FinishChain(pl.Color)
	return lo.Filter(pl.Pieces, func(p *Piece, _ int) bool {
		if !playable(p) {
			return false
		}
		// the chain index is the number of cells left to the innermost goal cell
		if idx := lo.IndexOf(chain[:], p.Pos); idx >= 0 && idx < steps {
			return false
		}
		future, _ := p.FuturePos(steps)
		return !lo.SomeBy(pl.Pieces, func(other *Piece) bool {
			return other.Slot != p.Slot && other.Pos == future
		})
	})
}

// Candidates returns the pieces on the track that may move by steps.
func (pl *Player) Candidates(steps int) []*Piece {
	return lo.Filter(pl.LegalPieces(steps), func(p *Piece, _ int) bool { return playable(p) })
}

// PickPiece chooses the piece that moves on a roll of steps, or nil if none can.
//
// Small rolls go to the first piece on the goal lane that still has room for them.
// Every other roll goes to the piece that has travelled furthest, the first one on ties.
func (pl *Player) PickPiece(steps int) *Piece {
	candidates := pl.Candidates(steps)
	if len(candidates) == 0 {
		return nil
	}

	if steps < 4 {
		if p, ok := lo.Find(candidates, func(p *Piece) bool { return p.InGoal() >= steps }); ok {
			return p
		}
	}

	return lo.MaxBy(candidates, func(a, b *Piece) bool { return a.Steps > b.Steps })
}

// Move moves the picked piece and locks it if it reached the goal lane. It returns the
// moved piece, or nil if the roll is forfeited.
func (pl *Player) Move(steps int) *Piece {
	return pl.MovePiece(pl.PickPiece(steps), steps)
}

// MovePiece moves p, which must be one of the candidates for steps, and locks it if it
// reached the goal lane. A nil piece is a forfeited roll.
func (pl *Player) MovePiece(p *Piece, steps int) *Piece {
	if p == nil {
		return nil
	}
	if !lo.Contains(pl.Candidates(steps), p) {
		panic(fmt.Sprintf("game: %s may not move by %d", p, steps))
	}
	p.Move(steps)
	if p.InGoal() >= 0 {
		pl.CheckIfDone()
	}
	return p
}

// CheckIfDone locks every piece standing on any goal lane cell.
func (pl *Player) CheckIfDone() {
	for _, cell := range pl.geo.GoalLane(pl.Color) {
		for _, p := range pl.Pieces {
			if !p.IsDone() && p.Pos == cell {
				p.MarkDone()
			}
		}
	}
}

// PlaceOnStart moves the first piece at home onto the entry point and returns it, or
// nil if no piece is at home.
func (pl *Player) PlaceOnStart() *Piece {
	p, ok := lo.Find(pl.Pieces, func(p *Piece) bool { return p.InHome() })
	if !ok {
		return nil
	}
	p.GetOut()
	return p
}

// Piece returns the piece in home slot slot.
func (pl *Player) Piece(slot int) *Piece {
	return pl.Pieces[slot]
}

// Capture sends every piece of another color standing on the cell of p back home.
func Capture(players []*Player, p *Piece) []Hit {
	var hits []Hit
	for _, pl := range players {
		if pl.Color == p.Color {
			continue
		}
		for _, q := range pl.Pieces {
			if q.Pos != p.Pos {
				continue
			}
			hits = append(hits, Hit{PieceID: q.ID(), From: q.Pos})
			q.Reset()
		}
	}
	return hits
}
