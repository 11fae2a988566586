package game

// Rules holds the dice related rules a match is played with.
type Rules interface {
	// PermissionRolls is the number of rolls a player gets to release a piece.
	PermissionRolls() int
	// Releases reports whether a permission roll releases a piece.
	Releases(roll int) bool
	// GrantsExtraRoll reports whether roll queues another roll in the same turn.
	GrantsExtraRoll(roll int) bool
	// MaxBonusRolls caps the number of extra rolls queued in one turn.
	MaxBonusRolls() int
}
