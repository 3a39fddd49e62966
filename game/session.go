package game

// Session is one canonical game: the real board and the generator that
// spawns its tiles.
type Session struct {
	Board   Board
	Seed    int64
	spawner *Spawner
}

// NewSession starts a game with two tiles placed by a generator seeded with seed.
func NewSession(seed int64) *Session {
	s := &Session{Seed: seed, spawner: NewSpawner(seed)}
	s.placeStartTiles()
	return s
}

func (s *Session) placeStartTiles() {
	for i := 0; i < 2; i++ {
		m := s.spawner.Next(s.Board.EmptyCount())
		// Cannot fail: Next only returns positions below the empty count.
		_ = s.Board.SetTile(m.Value, m.Pos)
	}
	s.Board.MoveCount = 0
}

// HumanMove slides the board. It returns false if the game is lost or the
// slide changes nothing.
func (s *Session) HumanMove(dir Direction) bool {
	if s.Board.State == Lose {
		return false
	}
	return s.Board.Slide(dir)
}

// RandomMove spawns a tile and marks the game lost when no move remains.
// It returns false if the game is already lost or the board is full.
func (s *Session) RandomMove() (Move, bool) {
	if s.Board.State == Lose {
		return Move{}, false
	}
	empty := s.Board.EmptyCount()
	if empty == 0 {
		return Move{}, false
	}
	m := s.spawner.Next(empty)
	_ = s.Board.SetTile(m.Value, m.Pos)
	if !s.Board.CanMove() {
		s.Board.State = Lose
	}
	return m, true
}

// MakeMove plays a human move followed by a spawn.
func (s *Session) MakeMove(dir Direction) bool {
	if !s.HumanMove(dir) {
		return false
	}
	s.RandomMove()
	return true
}

// Snapshot returns a copy of the canonical board.
func (s *Session) Snapshot() Board {
	return s.Board
}

func (s *Session) Lost() bool {
	return s.Board.State == Lose
}

func (s *Session) Score() uint32 { return s.Board.Score }

func (s *Session) MaxCell() uint32 { return s.Board.MaxCell() }

func (s *Session) EmptyCount() uint8 { return s.Board.EmptyCount() }

// MoveCount is the number of human moves played so far.
func (s *Session) MoveCount() uint16 { return s.Board.MoveCount }
