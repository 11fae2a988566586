package board

import "fmt"

// Size selects the distance between two neighbouring cells on the board.
type Size int

const (
	XSmall Size = iota
	Small
	Medium
	Large
	XLarge
)

const numSizes = 5

var Sizes = [numSizes]Size{XSmall, Small, Medium, Large, XLarge}

var (
	sizeNames = [numSizes]string{"x-small", "small", "medium", "large", "x-large"}
	sizeUnits = [numSizes]int{48, 64, 80, 96, 112}
)

func (s Size) Valid() bool {
	return s >= XSmall && s <= XLarge
}

// Unit returns the cell distance d. It is always a positive multiple of 8.
func (s Size) Unit() int {
	if !s.Valid() {
		panic(fmt.Sprintf("board: unknown size %d", int(s)))
	}
	return sizeUnits[s]
}

func (s Size) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Size(%d)", int(s))
	}
	return sizeNames[s]
}

func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSize maps a board size name ("x-small" ... "x-large") to its Size.
func ParseSize(name string) (Size, error) {
	for i, n := range sizeNames {
		if n == name {
			return Size(i), nil
		}
	}
	return Medium, fmt.Errorf("unknown board size %q", name)
}
