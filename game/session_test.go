package game

import "testing"

func TestNewSession_TwoTiles(t *testing.T) {
	s := NewSession(42)
	if got := s.Board.EmptyCount(); got != Cells-2 {
		t.Fatalf("empty = %d, want %d", got, Cells-2)
	}
	if s.MoveCount() != 0 || s.Score() != 0 || s.Lost() {
		t.Fatalf("unexpected start state: %+v", s.Board)
	}
	if s.EmptyCount() != Cells-2 || s.MaxCell() > 4 {
		t.Fatalf("empty=%d max=%d", s.EmptyCount(), s.MaxCell())
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if v := s.Board.Cells[r][c]; v > 2 {
				t.Fatalf("start tile exponent %d", v)
			}
		}
	}
}

func TestNewSession_Deterministic(t *testing.T) {
	a, b := NewSession(7), NewSession(7)
	for i := 0; i < 50; i++ {
		d := Directions[i%4]
		if a.MakeMove(d) != b.MakeMove(d) {
			t.Fatalf("sessions diverged at move %d", i)
		}
	}
	if a.Board != b.Board {
		t.Fatalf("same seed produced different boards:\n%s\n%s", dumpBoard(a.Board), dumpBoard(b.Board))
	}
}

func TestSession_HumanMoveRejected(t *testing.T) {
	s := NewSession(1)
	s.Board = FromCells([4][4]uint8{
		{1, 2, 1, 2},
		{2, 1, 2, 0},
		{1, 2, 1, 2},
		{2, 1, 2, 1},
	})
	if s.HumanMove(Left) {
		t.Fatalf("Left should not move")
	}
	if s.MakeMove(Left) {
		t.Fatalf("MakeMove should report no move")
	}
	if s.Board.EmptyCount() != 1 {
		t.Fatalf("a rejected move must not spawn")
	}

	s.Board.State = Lose
	if s.HumanMove(Right) {
		t.Fatalf("moves after a loss must be rejected")
	}
	if _, ok := s.RandomMove(); ok {
		t.Fatalf("spawns after a loss must be rejected")
	}
}

func TestSession_RandomMoveDetectsLoss(t *testing.T) {
	s := NewSession(3)
	// One empty cell; whatever is spawned there cannot match a neighbour.
	s.Board = FromCells([4][4]uint8{
		{3, 4, 3, 4},
		{4, 3, 4, 3},
		{3, 4, 3, 4},
		{4, 3, 4, 0},
	})
	m, ok := s.RandomMove()
	if !ok {
		t.Fatalf("expected a spawn")
	}
	if m.Pos != 0 || (m.Value != 1 && m.Value != 2) {
		t.Fatalf("unexpected spawn %v", m)
	}
	if !s.Lost() {
		t.Fatalf("board should be lost:\n%s", dumpBoard(s.Board))
	}
}
