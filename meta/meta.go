// meta/meta.go
package meta

// MAX_TURNS is the default number of player turns after which a match is abandoned without a winner.
const MAX_TURNS = 300

// PERMISSION_ROLLS is how many rolls a player gets to throw a six and release a piece.
const PERMISSION_ROLLS = 3

// RELEASE_FACE releases a piece during permission and grants an extra roll.
const RELEASE_FACE = 6

// MAX_BONUS_ROLLS caps the extra rolls queued by consecutive sixes within one turn.
const MAX_BONUS_ROLLS = 3

// GO_ROUTINES defines the size of the worker pool used for batch simulations.
const GO_ROUTINES = 8

// DEFAULT_SIZE is the board size used when none is given.
const DEFAULT_SIZE = "medium"
