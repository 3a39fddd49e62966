package eval

import (
	"errors"
	"testing"

	"github.com/brensch/tile2048/game"
)

func boardWithRow0(row [4]uint8, fill uint8) game.Board {
	var cells [4][4]uint8
	for r := range cells {
		for c := range cells[r] {
			cells[r][c] = fill
		}
	}
	cells[0] = row
	return game.FromCells(cells)
}

func TestMonotonicity(t *testing.T) {
	tests := []struct {
		name string
		b    game.Board
		want int64
	}{
		{"empty", game.Board{}, 8},
		{"ascending row", boardWithRow0([4]uint8{0, 0, 1, 2}, 0), 8},
		{"descending row", boardWithRow0([4]uint8{2, 1, 0, 0}, 0), 8},
		{"descending row full", boardWithRow0([4]uint8{2, 1, 0, 0}, 15), 8},
		{"peak", boardWithRow0([4]uint8{0, 0, 1, 0}, 0), 7},
		{"peak full", boardWithRow0([4]uint8{0, 0, 1, 0}, 15), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Monotonicity(&tt.b); got != tt.want {
				t.Fatalf("Monotonicity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSmoothness(t *testing.T) {
	flat := boardWithRow0([4]uint8{15, 15, 15, 15}, 15)
	if got := Smoothness(&flat); got != 384 {
		t.Fatalf("flat board smoothness = %d, want 384", got)
	}

	var checker game.Board
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if (r+c)%2 == 1 {
				checker.Cells[r][c] = 15
			}
		}
	}
	if got := Roughness(&checker); got != 24*15 {
		t.Fatalf("checkerboard roughness = %d, want %d", got, 24*15)
	}
	if got := Smoothness(&checker); got != 384-360 {
		t.Fatalf("checkerboard smoothness = %d", got)
	}
}

func TestSnake(t *testing.T) {
	var b game.Board
	if Snake(&b) != 0 {
		t.Fatalf("empty board should score 0")
	}
	b.Cells[0][0] = 3
	b.Cells[3][3] = 1
	if got := Snake(&b); got != 3*140+10 {
		t.Fatalf("Snake = %d", got)
	}
	corner, opposite := game.Board{}, game.Board{}
	corner.Cells[0][0] = 10
	opposite.Cells[3][0] = 10
	if Snake(&corner) <= Snake(&opposite) {
		t.Fatalf("snake weights should favour the top-left corner")
	}
}

func TestEvaluate_ZeroWeightsDisable(t *testing.T) {
	b := game.FromCells([4][4]uint8{{3, 2, 1, 0}, {1}, {}, {}})
	b.Score = 500
	if got := Evaluate(Weights{}, &b); got != 0 {
		t.Fatalf("all-zero weights should give 0, got %d", got)
	}

	only := Weights{FreeSpace: 1}
	if got := Evaluate(only, &b); got != int32(12*Scale/game.Cells) {
		t.Fatalf("free space only = %d", got)
	}

	mono := Weights{Monotonicity: 2}
	if got := Evaluate(mono, &b); got != int32(2*Monotonicity(&b)*Scale/8) {
		t.Fatalf("monotonicity only = %d", got)
	}
}

func TestEvaluate_WideRangeTermsRankEarlyBoards(t *testing.T) {
	var low, high game.Board
	low.Cells[0][0], high.Cells[0][0] = 1, 1
	high.Score = 4000
	score := Weights{MaxScore: MaxWeight}
	if a, b := Evaluate(score, &low), Evaluate(score, &high); b <= a {
		t.Fatalf("score 4000 evaluates to %d, score 0 to %d", b, a)
	}

	small := game.FromCells([4][4]uint8{{2}, {}, {}, {}})
	big := game.FromCells([4][4]uint8{{6}, {}, {}, {}})
	cell := Weights{MaxCell: MaxWeight}
	a, b := Evaluate(cell, &small), Evaluate(cell, &big)
	if a <= 0 || b <= a {
		t.Fatalf("tile 4 evaluates to %d, tile 64 to %d", a, b)
	}
	t.Logf("maxcell: 4=%d 64=%d", a, b)
}

func TestEvaluate_Bounded(t *testing.T) {
	max := Weights{MaxWeight, MaxWeight, MaxWeight, MaxWeight, MaxWeight, MaxWeight}
	full := boardWithRow0([4]uint8{15, 15, 15, 15}, 15)
	full.Score = 1 << 30
	got := Evaluate(max, &full)
	limit := int32(6 * MaxWeight * Scale)
	if got <= 0 || got > limit {
		t.Fatalf("Evaluate = %d, want within (0, %d]", got, limit)
	}
}

func TestEvaluate_PrefersOpenBoards(t *testing.T) {
	open := game.FromCells([4][4]uint8{{4, 3, 2, 1}, {}, {}, {}})
	cramped := game.FromCells([4][4]uint8{{1, 3, 1, 3}, {3, 1, 3, 1}, {4, 2, 0, 0}, {}})
	if Evaluate(Default, &open) <= Evaluate(Default, &cramped) {
		t.Fatalf("open snake board should outscore a cramped one")
	}
}

func TestValidate(t *testing.T) {
	if err := Default.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	bad := Default
	bad.Smoothness = -401
	if err := bad.Validate(); !errors.Is(err, ErrWeightRange) {
		t.Fatalf("expected ErrWeightRange, got %v", err)
	}
}
