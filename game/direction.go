package game

import "fmt"

// Direction is a human slide.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions is the order in which human moves are generated.
var Directions = [4]Direction{Left, Right, Down, Up}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Unknown"
	}
}

// IsHorizontal reports whether d slides along rows.
func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

// towardEnd reports whether tiles compact toward the last index of a line.
func (d Direction) towardEnd() bool {
	return d == Right || d == Down
}

// Mask returns the (dx, dy) neighbour offset used for adjacency checks along d's axis.
func (d Direction) Mask() (int, int) {
	if d.IsHorizontal() {
		return 1, 0
	}
	return 0, 1
}

// ParseDirection maps a direction name (case-sensitive, as produced by String) back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

// MarshalText encodes d by name, so JSON holds "Left" rather than a number.
func (d Direction) MarshalText() ([]byte, error) {
	if d > Down {
		return nil, fmt.Errorf("game: invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("game: unknown direction %q", text)
	}
	*d = v
	return nil
}
