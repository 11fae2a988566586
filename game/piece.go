package game

import (
	"fmt"

	"madn/board"
)

type PieceState int

const (
	Home PieceState = iota
	OnTrack
	Done
)

func (s PieceState) String() string {
	switch s {
	case Home:
		return "home"
	case OnTrack:
		return "on-track"
	case Done:
		return "done"
	}
	return fmt.Sprintf("PieceState(%d)", int(s))
}

func (s PieceState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *PieceState) UnmarshalText(text []byte) error {
	for _, st := range []PieceState{Home, OnTrack, Done} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown piece state %q", text)
}

// PieceID identifies a piece by its color and its home slot.
type PieceID struct {
	Color board.Color `json:"color"`
	Slot  int         `json:"slot"`
}

// Piece is a single token. It moves cell by cell along the ring and, once it reaches
// the pre-goal point of its color, into its goal lane.
type Piece struct {
	Color   board.Color
	Slot    int
	Pos     board.Point
	Heading board.Heading
	Steps   int // cells travelled since the piece last left home

	done bool
	geo  *board.Geometry
}

// NewPiece creates a piece sitting on home cell slot of color c.
func NewPiece(geo *board.Geometry, c board.Color, slot int) *Piece {
	if slot < 0 || slot >= board.NumHomeCells {
		panic(fmt.Sprintf("game: invalid home slot %d", slot))
	}
	p := &Piece{Color: c, Slot: slot, geo: geo}
	p.Reset()
	return p
}

func (p *Piece) ID() PieceID {
	return PieceID{Color: p.Color, Slot: p.Slot}
}

func (p *Piece) State() PieceState {
	switch {
	case p.done:
		return Done
	case p.InHome():
		return Home
	default:
		return OnTrack
	}
}

func (p *Piece) IsDone() bool { return p.done }

// MarkDone locks the piece. There is no way back short of a new match.
func (p *Piece) MarkDone() { p.done = true }

func (p *Piece) InHome() bool {
	return p.geo.IsHome(p.Pos, p.Color)
}

// InGoal returns the goal lane index of the piece (0 innermost, 3 lane entrance) or -1.
func (p *Piece) InGoal() int {
	return p.geo.InGoal(p.Pos, p.Color)
}

// HomeCell is the cell the piece starts on and returns to when captured.
func (p *Piece) HomeCell() board.Point {
	return p.geo.HomeCells(p.Color)[p.Slot]
}

// GetOut places the piece on the entry point of its color. The heading is kept.
func (p *Piece) GetOut() {
	if p.done {
		panic(fmt.Sprintf("game: %s piece %d is done and cannot get out", p.Color, p.Slot))
	}
	p.Pos = p.geo.EntryPoint(p.Color)
}

// Move advances the piece by steps cells. Moving a piece that is done or still at home,
// or past the end of its goal lane, panics and leaves the piece untouched.
func (p *Piece) Move(steps int) {
	switch {
	case steps < 0:
		panic(fmt.Sprintf("game: negative move %d", steps))
	case p.done:
		panic(fmt.Sprintf("game: %s piece %d is done", p.Color, p.Slot))
	case p.InHome():
		panic(fmt.Sprintf("game: %s piece %d is still at home", p.Color, p.Slot))
	}

	pos, heading := p.Pos, p.Heading
	for i := 0; i < steps; i++ {
		pos, heading = p.geo.Step(pos, heading, p.Color)
		if !p.geo.IsTrack(pos) && p.geo.InGoal(pos, p.Color) < 0 {
			panic(fmt.Sprintf("game: %s piece %d would leave the board at %v", p.Color, p.Slot, pos))
		}
	}
	p.Pos, p.Heading = pos, heading
	p.Steps += steps
}

// Restore puts the piece back where v says it was. v must describe this piece.
func (p *Piece) Restore(v PieceView) {
	if v.PieceID != p.ID() {
		panic(fmt.Sprintf("game: cannot restore %s#%d from %s#%d", p.Color, p.Slot, v.Color, v.Slot))
	}
	p.Pos, p.Heading, p.Steps = v.Pos, v.Heading, v.Steps
	p.done = v.State == Done
}

// FuturePos returns where Move(steps) would leave the piece without moving it.
func (p *Piece) FuturePos(steps int) (board.Point, board.Heading) {
	pos, heading := p.Pos, p.Heading
	for i := 0; i < steps; i++ {
		pos, heading = p.geo.Step(pos, heading, p.Color)
	}
	return pos, heading
}

// Reset sends the piece back to its home cell.
func (p *Piece) Reset() {
	p.Pos = p.HomeCell()
	p.Heading = p.geo.HomeHeading(p.Color)
	p.Steps = 0
}

// PieceView is a read-only copy of a piece used by snapshots and renderers.
type PieceView struct {
	PieceID
	Pos     board.Point   `json:"pos"`
	Heading board.Heading `json:"heading"`
	Steps   int           `json:"steps"`
	State   PieceState    `json:"state"`
}

func (p *Piece) View() PieceView {
	return PieceView{
		PieceID: p.ID(),
		Pos:     p.Pos,
		Heading: p.Heading,
		Steps:   p.Steps,
		State:   p.State(),
	}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s#%d@(%d,%d)", p.Color, p.Slot, p.Pos.X, p.Pos.Y)
}
