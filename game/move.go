package game

import "fmt"

// MoveKind tags a Move.
type MoveKind uint8

const (
	// RandomMove places a tile; it is also the kind of a fresh root, which
	// therefore expects a human move next.
	RandomMove MoveKind = iota
	HumanMove
)

// Move is either a human slide or a random tile placement.
type Move struct {
	Kind MoveKind
	Dir  Direction
	// Value is the placed exponent (1 or 2) and Pos the index among empty
	// cells in row-major order. Both are zero for human moves.
	Value uint8
	Pos   uint8
}

func Human(d Direction) Move {
	return Move{Kind: HumanMove, Dir: d}
}

func Random(value, pos uint8) Move {
	return Move{Kind: RandomMove, Value: value, Pos: pos}
}

func (m Move) IsHuman() bool  { return m.Kind == HumanMove }
func (m Move) IsRandom() bool { return m.Kind == RandomMove }

func (m Move) String() string {
	if m.IsHuman() {
		return m.Dir.String()
	}
	return fmt.Sprintf("Random(%d@%d)", TileValue(m.Value), m.Pos)
}
