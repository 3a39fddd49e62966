// Package game defines the 2048 board model, moves, tile spawning and the
// canonical game session.
//
// Cells hold tile exponents: 0 is empty and n is the tile 2^n. Boards are
// plain values (copying one is a 24 byte copy) so every transition produces a
// new board and no state is ever shared between search nodes.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	// Size is the board width and height.
	Size = 4
	// Cells is the number of cells on the board.
	Cells = Size * Size
	// MaxExponent is the largest storable exponent (2^15 = 32768).
	MaxExponent = 15
)

// State is the board lifecycle.
type State uint8

const (
	InGame State = iota
	Lose
)

func (s State) String() string {
	if s == Lose {
		return "Lose"
	}
	return "InGame"
}

var ErrCellOutOfRange = errors.New("empty cell index out of range")

// Board is a 4x4 grid of tile exponents plus the running score.
type Board struct {
	Cells     [Size][Size]uint8
	State     State
	Score     uint32
	MoveCount uint16
}

// FromCells builds an in-game board from a grid of exponents.
func FromCells(cells [Size][Size]uint8) Board {
	return Board{Cells: cells}
}

// Slide moves every line toward dir, merging equal neighbours once per cell.
// It reports whether any cell changed.
func (b *Board) Slide(dir Direction) bool {
	if !dir.IsHorizontal() {
		b.transpose()
		defer b.transpose()
	}

	var moved bool
	for r := 0; r < Size; r++ {
		line := b.Cells[r]
		if dir.towardEnd() {
			line = ReverseLine(line)
		}
		out, score, ok := SlideLine(line)
		if !ok {
			continue
		}
		if dir.towardEnd() {
			out = ReverseLine(out)
		}
		b.Cells[r] = out
		b.Score += score
		moved = true
	}
	if moved {
		b.MoveCount++
	}
	return moved
}

// SlideLine slides a line toward index 0. Each cell merges at most once and
// every merge adds 2^(new exponent) to the score. ok is false when the line is
// unchanged, or when a merge would exceed MaxExponent (the line is then left
// as it was).
func SlideLine(line [Size]uint8) (out [Size]uint8, score uint32, ok bool) {
	w := 0
	merged := false
	for _, v := range line {
		if v == 0 {
			continue
		}
		if w > 0 && !merged && out[w-1] == v {
			if v >= MaxExponent {
				return line, 0, false
			}
			out[w-1]++
			score += 1 << out[w-1]
			merged = true
			continue
		}
		out[w] = v
		w++
		merged = false
	}
	return out, score, out != line
}

// ReverseLine mirrors a line.
func ReverseLine(line [Size]uint8) [Size]uint8 {
	return [Size]uint8{line[3], line[2], line[1], line[0]}
}

func (b *Board) transpose() {
	for r := 0; r < Size; r++ {
		for c := r + 1; c < Size; c++ {
			b.Cells[r][c], b.Cells[c][r] = b.Cells[c][r], b.Cells[r][c]
		}
	}
}

// Transposed returns a copy of b with rows and columns swapped.
func (b Board) Transposed() Board {
	b.transpose()
	return b
}

// CanMove reports whether any human move would change the board.
func (b *Board) CanMove() bool {
	if b.MaxExponent() >= MaxExponent {
		// A pair of top tiles blocks its whole line, so scan the real slides.
		return b.canSlide()
	}
	// Adjacency is symmetric, so one horizontal and one vertical scan cover all four directions.
	return b.EmptyCount() > 0 || b.CanMerge(Left) || b.CanMerge(Up)
}

func (b *Board) canSlide() bool {
	t := b.Transposed()
	for i := 0; i < Size; i++ {
		for _, line := range [2][Size]uint8{b.Cells[i], t.Cells[i]} {
			if _, _, ok := SlideLine(line); ok {
				return true
			}
			if _, _, ok := SlideLine(ReverseLine(line)); ok {
				return true
			}
		}
	}
	return false
}

// CanMerge reports whether two equal tiles below MaxExponent are adjacent
// along dir's axis.
func (b *Board) CanMerge(dir Direction) bool {
	dx, dy := dir.Mask()
	for r := 0; r < Size-dy; r++ {
		for c := 0; c < Size-dx; c++ {
			if v := b.Cells[r][c]; v != 0 && v < MaxExponent && v == b.Cells[r+dy][c+dx] {
				return true
			}
		}
	}
	return false
}

// SetTile places value into the pos'th empty cell in row-major order.
func (b *Board) SetTile(value, pos uint8) error {
	var seen uint8
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] != 0 {
				continue
			}
			if seen == pos {
				b.Cells[r][c] = value
				return nil
			}
			seen++
		}
	}
	return fmt.Errorf("%w: index %d, %d empty", ErrCellOutOfRange, pos, seen)
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() uint8 {
	var n uint8
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// MaxExponent returns the largest exponent on the board.
func (b *Board) MaxExponent() uint8 {
	var m uint8
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] > m {
				m = b.Cells[r][c]
			}
		}
	}
	return m
}

// MaxCell returns the displayed value of the largest tile (1 on an empty board).
func (b *Board) MaxCell() uint32 {
	return 1 << b.MaxExponent()
}

// TileValue converts an exponent to its displayed value.
func TileValue(e uint8) uint32 {
	if e == 0 {
		return 0
	}
	return 1 << e
}

// String renders the board as a grid of displayed values.
func (b Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "score: %d\n", b.Score)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			fmt.Fprintf(&sb, "%6d", TileValue(b.Cells[r][c]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// LogValue logs the board as its packed id plus score and state.
func (b Board) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", fmt.Sprintf("%016x", b.ID())),
		slog.Uint64("score", uint64(b.Score)),
		slog.Uint64("max", uint64(b.MaxCell())),
		slog.String("state", b.State.String()),
	)
}
