package communication

import (
	"madn/board"
	"madn/game"
)

const (
	EventsPath = "/events"
	StatePath  = "/state"
)

type EventType string

const (
	BoardEvent  EventType = "board"
	PieceEvent  EventType = "piece"
	WinnerEvent EventType = "winner"
)

// Event is one renderer call of a running match, as streamed to watchers.
type Event struct {
	Type EventType `json:"type"`
	Seq  int       `json:"seq"` // starts at 1 for every server

	Size   *board.Size     `json:"size,omitempty"`
	Piece  *game.PieceView `json:"piece,omitempty"`
	Winner *board.Color    `json:"winner,omitempty"`
}

func NewBoardEvent(size board.Size) Event {
	return Event{Type: BoardEvent, Size: &size}
}

func NewPieceEvent(v game.PieceView) Event {
	return Event{Type: PieceEvent, Piece: &v}
}

func NewWinnerEvent(c board.Color) Event {
	return Event{Type: WinnerEvent, Winner: &c}
}
