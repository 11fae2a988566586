package board

import "fmt"

// Color identifies one of the four players. The numeric order is the clockwise
// seating order and doubles as the number of 90° clockwise rotations applied to
// the yellow geometry.
type Color int

const (
	Yellow Color = iota
	Green
	Red
	Black
)

// NoColor is used where a color is absent, e.g. a match that ended without a winner.
const NoColor Color = -1

const NumColors = 4

// Colors lists all colors in clockwise order.
var Colors = [NumColors]Color{Yellow, Green, Red, Black}

var colorNames = [NumColors]string{"yellow", "green", "red", "black"}

func (c Color) Valid() bool {
	return c >= Yellow && c <= Black
}

func (c Color) String() string {
	if c == NoColor {
		return "none"
	}
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Next returns the color seated clockwise after c.
func (c Color) Next() Color {
	return (c + 1) % NumColors
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor maps a color name to its Color. "none" parses to NoColor.
func ParseColor(name string) (Color, error) {
	if name == "none" {
		return NoColor, nil
	}
	for i, n := range colorNames {
		if n == name {
			return Color(i), nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}
