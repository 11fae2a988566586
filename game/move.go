package game

import "madn/board"

type MoveKind int

const (
	// Release is a piece leaving home for the entry point.
	Release MoveKind = iota
	// Advance is a piece moving along the ring or its goal lane.
	Advance
)

func (k MoveKind) String() string {
	if k == Release {
		return "release"
	}
	return "advance"
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Hit records a piece sent home by a capture.
type Hit struct {
	PieceID
	From board.Point `json:"from"`
}

// Move records one change of position made during a turn.
type Move struct {
	Turn  int         `json:"turn"`
	Piece PieceID     `json:"piece"`
	Kind  MoveKind    `json:"kind"`
	Roll  int         `json:"roll"`
	From  board.Point `json:"from"`
	To    board.Point `json:"to"`
	Hits  []Hit       `json:"hits,omitempty"`
}

func (m *Move) Clone() *Move {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Hits = append([]Hit(nil), m.Hits...)
	return &cp
}
