package game

// Strategy chooses the piece that uses a roll in place of PickPiece. The snapshot is
// taken before the move and its current player is the one moving. Pick must return one
// of the candidates.
type Strategy interface {
	Pick(s State, roll int, candidates []PieceID) PieceID
}
