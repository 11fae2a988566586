package render

import (
	"math"
	"strings"

	"madn/board"
	"madn/game"
)

const gridRadius = 5

var (
	laneGlyph  = [board.NumColors]byte{'y', 'g', 'r', 'b'}
	pieceGlyph = [board.NumColors]byte{'Y', 'G', 'R', 'B'}
)

// Board draws a snapshot as an 11x11 character grid, north up. Track cells are dots,
// goal lanes lower case, home cells 'o' and pieces upper case.
func Board(s game.State) string {
	geo := board.For(s.Size)
	const side = 2*gridRadius + 1
	var grid [side][side]byte
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	set := func(p board.Point, glyph byte) {
		x, y := cell(geo, p)
		if x < 0 || x >= side || y < 0 || y >= side {
			return
		}
		grid[y][x] = glyph
	}

	for _, p := range geo.Track() {
		set(p, '.')
	}
	for _, c := range board.Colors {
		for _, p := range geo.GoalLane(c) {
			set(p, laneGlyph[c])
		}
		for _, p := range geo.HomeCells(c) {
			set(p, 'o')
		}
	}
	for _, v := range s.Pieces {
		set(v.Pos, pieceGlyph[v.Color])
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row[:]), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// cell maps a board coordinate to a grid column and row. Home cells sit slightly off the
// unit grid and are rounded onto it.
func cell(geo *board.Geometry, p board.Point) (int, int) {
	d := float64(geo.Unit())
	x := int(math.Round(float64(p.X)/d)) + gridRadius
	y := gridRadius - int(math.Round(float64(p.Y)/d))
	return x, y
}
