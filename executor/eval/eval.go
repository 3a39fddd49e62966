// Package eval scores 2048 positions with a weighted sum of board-shape
// heuristics.
//
// Each heuristic's raw value is mapped onto 0..Scale together with its
// weight, so a weight of w contributes at most w*Scale whatever the heuristic's natural
// range. With |w| <= MaxWeight for all six terms the total stays well inside
// int32, leaving room for the search's loss penalty.
package eval

import (
	"errors"
	"fmt"

	"github.com/brensch/tile2048/game"
)

const (
	// Scale is the normalized maximum of every heuristic.
	Scale = 256
	// MaxWeight bounds the magnitude of each weight.
	MaxWeight = 400
)

// Raw ranges used for normalization.
const (
	maxCellRange     = 1 << game.MaxExponent
	maxScoreRange    = 1 << 20
	monotonicRange   = 2 * game.Size
	smoothnessOffset = 384
	freeSpaceRange   = game.Cells
)

var ErrWeightRange = errors.New("evaluation weight out of range")

// Weights are the per-heuristic coefficients. A zero weight disables the
// heuristic entirely.
type Weights struct {
	MaxCell      int32 `json:"maxcell"`
	MaxScore     int32 `json:"maxscore"`
	Monotonicity int32 `json:"monotonicity"`
	Smoothness   int32 `json:"smoothness"`
	FreeSpace    int32 `json:"freespace"`
	Snake        int32 `json:"snake"`
}

// Default is the tuning used by the commands.
var Default = Weights{
	MaxCell:      40,
	MaxScore:     60,
	Monotonicity: 120,
	Smoothness:   100,
	FreeSpace:    250,
	Snake:        200,
}

// Validate checks every weight against MaxWeight.
func (w Weights) Validate() error {
	for _, t := range w.terms() {
		if t.weight > MaxWeight || t.weight < -MaxWeight {
			return fmt.Errorf("%w: %s=%d (limit %d)", ErrWeightRange, t.name, t.weight, MaxWeight)
		}
	}
	return nil
}

type term struct {
	name   string
	weight int32
	raw    func(*game.Board) int64
	max    int64
}

func (w Weights) terms() [6]term {
	return [6]term{
		{"maxcell", w.MaxCell, MaxCell, maxCellRange},
		{"maxscore", w.MaxScore, MaxScore, maxScoreRange},
		{"monotonicity", w.Monotonicity, Monotonicity, monotonicRange},
		{"smoothness", w.Smoothness, Smoothness, smoothnessOffset},
		{"freespace", w.FreeSpace, FreeSpace, freeSpaceRange},
		{"snake", w.Snake, Snake, snakeRange},
	}
}

// Evaluate scores b. It depends only on board content.
func Evaluate(w Weights, b *game.Board) int32 {
	var total int64
	for _, t := range w.terms() {
		if t.weight == 0 {
			continue
		}
		total += weighted(t.weight, t.raw(b), t.max)
	}
	return int32(total)
}

// weighted is weight*raw*Scale/max with raw clamped to 0..max. The division
// comes last so small raw values on wide ranges still count.
func weighted(weight int32, raw, max int64) int64 {
	if raw > max {
		raw = max
	}
	if raw < 0 {
		raw = 0
	}
	return int64(weight) * raw * Scale / max
}

// MaxCell is the displayed value of the largest tile.
func MaxCell(b *game.Board) int64 {
	if b.MaxExponent() == 0 {
		return 0
	}
	return int64(b.MaxCell())
}

// MaxScore is the cumulative merge score.
func MaxScore(b *game.Board) int64 {
	return int64(b.Score)
}

// Monotonicity counts the rows and columns that never increase or never decrease (0..8).
func Monotonicity(b *game.Board) int64 {
	var n int64
	for i := 0; i < game.Size; i++ {
		var row, col [game.Size]uint8
		for j := 0; j < game.Size; j++ {
			row[j] = b.Cells[i][j]
			col[j] = b.Cells[j][i]
		}
		if monotone(row) {
			n++
		}
		if monotone(col) {
			n++
		}
	}
	return n
}

func monotone(line [game.Size]uint8) bool {
	inc, dec := true, true
	for i := 0; i < game.Size-1; i++ {
		if line[i] > line[i+1] {
			inc = false
		}
		if line[i] < line[i+1] {
			dec = false
		}
	}
	return inc || dec
}

// Roughness is the sum of exponent differences between neighbouring cells.
func Roughness(b *game.Board) int64 {
	var sum int64
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			if c+1 < game.Size {
				sum += absDiff(b.Cells[r][c], b.Cells[r][c+1])
			}
			if r+1 < game.Size {
				sum += absDiff(b.Cells[r][c], b.Cells[r+1][c])
			}
		}
	}
	return sum
}

// Smoothness is 384 minus Roughness, so smoother boards score higher.
func Smoothness(b *game.Board) int64 {
	return smoothnessOffset - Roughness(b)
}

func absDiff(a, b uint8) int64 {
	if a > b {
		return int64(a - b)
	}
	return int64(b - a)
}

// FreeSpace counts empty cells.
func FreeSpace(b *game.Board) int64 {
	return int64(b.EmptyCount())
}

// snakeWeights bias large tiles toward the top-left corner along a
// serpentine path.
var snakeWeights = [game.Size][game.Size]int64{
	{140, 120, 110, 115},
	{45, 47, 50, 70},
	{35, 25, 22, 20},
	{2, 3, 5, 10},
}

var snakeRange = func() int64 {
	var sum int64
	for _, row := range snakeWeights {
		for _, v := range row {
			sum += v
		}
	}
	return sum * game.MaxExponent
}()

// Snake is the dot product of cell exponents with the serpentine weights.
func Snake(b *game.Board) int64 {
	var sum int64
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			sum += int64(b.Cells[r][c]) * snakeWeights[r][c]
		}
	}
	return sum
}
