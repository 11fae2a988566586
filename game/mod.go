// Package game models the pieces and players of a Mensch ärgere dich nicht match and the
// rules a player follows to pick the piece that uses a roll.
package game

type StateHash uint64
