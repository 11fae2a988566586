package game

import (
	"encoding/binary"
	"hash/fnv"

	"madn/board"
)

// State is a snapshot of every piece of a match. It does not share memory with the
// pieces it was taken from.
type State struct {
	Size    board.Size  `json:"size"`
	Turn    int         `json:"turn"`
	Current board.Color `json:"current"`
	Winner  board.Color `json:"winner"`
	Pieces  []PieceView `json:"pieces"`
}

// Snapshot copies the pieces of players in the given order.
func Snapshot(size board.Size, turn int, current, winner board.Color, players []*Player) State {
	s := State{Size: size, Turn: turn, Current: current, Winner: winner}
	for _, pl := range players {
		for _, p := range pl.Pieces {
			s.Pieces = append(s.Pieces, p.View())
		}
	}
	return s
}

func (s State) Copy() State {
	cp := s
	cp.Pieces = append([]PieceView(nil), s.Pieces...)
	return cp
}

// Piece returns the view of piece id and whether it is part of the snapshot.
func (s State) Piece(id PieceID) (PieceView, bool) {
	for _, v := range s.Pieces {
		if v.PieceID == id {
			return v, true
		}
	}
	return PieceView{}, false
}

// Hash fingerprints the board position. Turn and current player are included so two
// snapshots of the same position at different points of a match differ.
func (s State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Size))
	binary.Write(hasher, binary.LittleEndian, int64(s.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(s.Current))
	binary.Write(hasher, binary.LittleEndian, int64(s.Winner))

	for _, v := range s.Pieces {
		binary.Write(hasher, binary.LittleEndian, int64(v.Color))
		binary.Write(hasher, binary.LittleEndian, int64(v.Slot))
		binary.Write(hasher, binary.LittleEndian, int64(v.Pos.X))
		binary.Write(hasher, binary.LittleEndian, int64(v.Pos.Y))
		binary.Write(hasher, binary.LittleEndian, int64(v.Heading))
		binary.Write(hasher, binary.LittleEndian, int64(v.Steps))
		binary.Write(hasher, binary.LittleEndian, int64(v.State))
	}

	return StateHash(hasher.Sum64())
}
