package board

import "fmt"

// Point is a board coordinate. The origin is the centre of the board.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// rotateCW rotates p by 90° clockwise around the origin.
func (p Point) rotateCW() Point {
	return Point{X: p.Y, Y: -p.X}
}

// Heading is an absolute direction in degrees: 0 east, 90 north, 180 west, 270 south.
type Heading int

func (h Heading) Left() Heading {
	return (h + 90) % 360
}

func (h Heading) Right() Heading {
	return (h + 270) % 360
}

// Delta returns the unit vector of h.
func (h Heading) Delta() Point {
	switch h {
	case 0:
		return Point{X: 1}
	case 90:
		return Point{Y: 1}
	case 180:
		return Point{X: -1}
	case 270:
		return Point{Y: -1}
	}
	panic(fmt.Sprintf("board: invalid heading %d", int(h)))
}

const (
	LaneLength   = 4
	NumHomeCells = 4
	TrackLength  = 40
)

type colorGeometry struct {
	entry       Point
	preGoal     Point
	approach    Point
	lane        [LaneLength]Point
	home        [NumHomeCells]Point
	homeHeading Heading
}

// Geometry holds every fixed coordinate of a board of one size. Values returned by For are
// shared and must be treated as read-only.
type Geometry struct {
	size   Size
	unit   int
	colors [NumColors]colorGeometry
	track  []Point
	onRing map[Point]int
}

var geometries [numSizes]*Geometry

func init() {
	for _, s := range Sizes {
		geometries[s] = newGeometry(s)
	}
}

// For returns the precomputed geometry of size s.
func For(s Size) *Geometry {
	if !s.Valid() {
		panic(fmt.Sprintf("board: unknown size %d", int(s)))
	}
	return geometries[s]
}

func newGeometry(s Size) *Geometry {
	d := s.Unit()
	e := 5*d - d/8

	yellow := colorGeometry{
		entry:    Point{X: -5 * d, Y: d},
		preGoal:  Point{X: -5 * d},
		approach: Point{X: -5 * d, Y: -d},
		home: [NumHomeCells]Point{
			{X: -e, Y: e},
			{X: -4 * d, Y: e},
			{X: -e, Y: 4 * d},
			{X: -4 * d, Y: 4 * d},
		},
		homeHeading: 90,
	}
	for i := range yellow.lane {
		yellow.lane[i] = Point{X: -(i + 1) * d}
	}

	g := &Geometry{size: s, unit: d}
	cg := yellow
	for _, c := range Colors {
		g.colors[c] = cg
		cg = cg.rotateCW()
	}
	g.buildTrack()
	return g
}

func (cg colorGeometry) rotateCW() colorGeometry {
	out := colorGeometry{
		entry:       cg.entry.rotateCW(),
		preGoal:     cg.preGoal.rotateCW(),
		approach:    cg.approach.rotateCW(),
		homeHeading: cg.homeHeading.Right(),
	}
	for i, p := range cg.lane {
		out.lane[i] = p.rotateCW()
	}
	for i, p := range cg.home {
		out.home[i] = p.rotateCW()
	}
	return out
}

// buildTrack walks the shared ring once from the yellow entry point, ignoring every
// goal lane diversion.
func (g *Geometry) buildTrack() {
	g.onRing = make(map[Point]int, TrackLength)
	p, h := g.colors[Yellow].entry, g.colors[Yellow].homeHeading
	for i := 0; ; i++ {
		if _, seen := g.onRing[p]; seen {
			break
		}
		if i > 4*TrackLength {
			panic("board: track does not close")
		}
		g.onRing[p] = len(g.track)
		g.track = append(g.track, p)
		p, h = g.Step(p, h, NoColor)
	}
	if len(g.track) != TrackLength {
		panic(fmt.Sprintf("board: track has %d cells, want %d", len(g.track), TrackLength))
	}
}

func (g *Geometry) color(c Color) *colorGeometry {
	if !c.Valid() {
		panic(fmt.Sprintf("board: unknown color %d", int(c)))
	}
	return &g.colors[c]
}

func (g *Geometry) Size() Size { return g.size }

func (g *Geometry) Unit() int { return g.unit }

// EntryPoint is the track cell a piece of color c is placed on when it leaves home.
func (g *Geometry) EntryPoint(c Color) Point { return g.color(c).entry }

// PreGoal is the last shared track cell before the goal lane of c.
func (g *Geometry) PreGoal(c Color) Point { return g.color(c).preGoal }

// Approach is the track cell right before PreGoal(c).
func (g *Geometry) Approach(c Color) Point { return g.color(c).approach }

// GoalLane returns the lane of c. Index 0 is the innermost cell next to the board centre,
// index 3 the cell entered from the pre-goal point.
func (g *Geometry) GoalLane(c Color) [LaneLength]Point { return g.color(c).lane }

func (g *Geometry) HomeCells(c Color) [NumHomeCells]Point { return g.color(c).home }

// HomeHeading is the heading a piece of color c has while at home.
func (g *Geometry) HomeHeading(c Color) Heading { return g.color(c).homeHeading }

// FinishChain lists the last cells a piece of color c passes, innermost first: the goal
// lane followed by the pre-goal point and the approach cell. The index of a cell in the
// chain equals the number of steps left to the innermost lane cell.
func (g *Geometry) FinishChain(c Color) [LaneLength + 2]Point {
	cg := g.color(c)
	var chain [LaneLength + 2]Point
	copy(chain[:], cg.lane[:])
	chain[LaneLength] = cg.preGoal
	chain[LaneLength+1] = cg.approach
	return chain
}

// Track returns the shared ring in travel order starting at the yellow entry point.
func (g *Geometry) Track() []Point {
	out := make([]Point, len(g.track))
	copy(out, g.track)
	return out
}

func (g *Geometry) IsTrack(p Point) bool {
	_, ok := g.onRing[p]
	return ok
}

// TurnLeft reports whether p is one of the four inner corners of the ring.
func (g *Geometry) TurnLeft(p Point) bool {
	return abs(p.X) == g.unit && abs(p.Y) == g.unit
}

// TurnRight reports whether p is one of the eight outer corners of the ring, or the
// pre-goal point of c where a piece of that color turns into its lane.
func (g *Geometry) TurnRight(p Point, c Color) bool {
	d := g.unit
	ax, ay := abs(p.X), abs(p.Y)
	if (ax == 5*d && ay == d) || (ax == d && ay == 5*d) {
		return true
	}
	return c.Valid() && p == g.colors[c].preGoal
}

// Step advances one cell from p. Turns are evaluated at p before moving.
func (g *Geometry) Step(p Point, h Heading, c Color) (Point, Heading) {
	if g.TurnLeft(p) {
		h = h.Left()
	}
	if g.TurnRight(p, c) {
		h = h.Right()
	}
	return p.Add(h.Delta().Scale(g.unit)), h
}

// InGoal returns the lane index of p for color c, or -1 if p is not on that lane.
func (g *Geometry) InGoal(p Point, c Color) int {
	for i, q := range g.color(c).lane {
		if p == q {
			return i
		}
	}
	return -1
}

func (g *Geometry) IsHome(p Point, c Color) bool {
	for _, q := range g.color(c).home {
		if p == q {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
