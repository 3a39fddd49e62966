// Package search picks 2048 moves with depth-limited minimax or negamax over
// a lazily expanded tree that is kept between turns.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brensch/tile2048/game"
	"github.com/brensch/tile2048/rules"
)

var (
	ErrTerminalPosition = errors.New("best move requested on a lost board")
	ErrNotHumanTurn     = errors.New("root expects a tile placement, not a slide")
	ErrNoLegalMove      = errors.New("no slide changes the board")
)

// samplerSalt separates Monte Carlo draws from any generator seeded with the
// same base seed.
const samplerSalt = 0x2048

// Engine owns the search tree for one game. It is not safe for concurrent use.
type Engine struct {
	table      *rules.Table
	cfg        Config
	root       *Node
	sampleSeed int64
	stats      Stats
	logger     *slog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for per-search debug records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New builds an engine rooted at b, which must be waiting for a human move.
func New(table *rules.Table, b game.Board, cfg Config, opts ...Option) (*Engine, error) {
	if table == nil || !table.Ready() {
		return nil, ErrTableNotLoaded
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		table:      table,
		cfg:        cfg,
		root:       NewNode(b, game.Move{}),
		sampleSeed: game.DeriveSeed(cfg.Seed, samplerSalt),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Root() *Node { return e.root }

func (e *Engine) Config() Config { return e.cfg }

// Result is the outcome of one BestMove call. Score is from the maximizing
// side.
type Result struct {
	Move  game.Move
	Score int32
	Stats Stats
}

// BestMove searches from the root and advances the root to the chosen
// child, keeping its subtree.
func (e *Engine) BestMove() (Result, error) {
	res, chosen, err := e.search()
	if err != nil {
		return Result{}, err
	}
	e.root = chosen
	return res, nil
}

// Suggest searches like BestMove but leaves the root in place. The expanded
// tree is kept, so a following CommitHuman reuses it.
func (e *Engine) Suggest() (Result, error) {
	res, _, err := e.search()
	return res, err
}

func (e *Engine) search() (Result, *Node, error) {
	root := e.root
	if root.Board.State == game.Lose {
		return Result{}, nil, ErrTerminalPosition
	}
	if !root.HumanTurn() {
		return Result{}, nil, ErrNotHumanTurn
	}

	start := time.Now()
	e.stats = newStats(e.cfg.TrackVisits)
	score, idx := e.run(root)
	if idx < 0 {
		return Result{}, nil, ErrNoLegalMove
	}

	chosen := root.Children[idx]
	res := Result{Move: chosen.Move, Score: score, Stats: e.stats}
	e.logger.Debug("search done",
		"algorithm", e.cfg.Algorithm.String(),
		"depth", e.cfg.Depth,
		"move", chosen.Move.String(),
		"score", score,
		"nodes", res.Stats.Total,
		"cut", res.Stats.Cut,
		"unique", res.Stats.Unique(),
		"elapsed", time.Since(start),
	)
	return res, chosen, nil
}

func (e *Engine) run(root *Node) (int32, int) {
	switch e.cfg.Algorithm {
	case Minimax:
		return e.minimax(root, e.cfg.Depth)
	case MinimaxAlphaBeta:
		return e.alphaBeta(root, e.cfg.Depth, negInf, posInf)
	case Negamax:
		return e.negamax(root, e.cfg.Depth, 1)
	case NegamaxAlphaBeta:
		return e.negamaxAlphaBeta(root, e.cfg.Depth, negInf, posInf, 1)
	}
	// Validate rejects everything else before an Engine exists.
	panic(fmt.Sprintf("search: unsupported algorithm %v", e.cfg.Algorithm))
}

// CommitRandom moves the root to the child reached by the placement m. If
// the tree never generated that placement a fresh node is built from the
// root's board. It returns false if m cannot be applied.
func (e *Engine) CommitRandom(m game.Move) bool {
	if !m.IsRandom() || e.root.HumanTurn() {
		return false
	}
	if e.adopt(m) {
		return true
	}
	n := placedNode(e.root.Board, m)
	if n == nil {
		return false
	}
	e.root = n
	return true
}

// CommitHuman moves the root to the child reached by sliding dir. It returns
// false if the slide changes nothing.
func (e *Engine) CommitHuman(dir game.Direction) bool {
	if !e.root.HumanTurn() || e.root.Board.State == game.Lose {
		return false
	}
	m := game.Human(dir)
	if e.adopt(m) {
		return true
	}
	next := e.root.Board
	if !e.table.Slide(&next, dir) {
		return false
	}
	e.root = NewNode(next, m)
	return true
}

// adopt detaches the root's child for m and makes it the root.
func (e *Engine) adopt(m game.Move) bool {
	i := e.root.Child(m)
	if i < 0 {
		return false
	}
	e.root = e.root.Children[i]
	return true
}

// Reset discards the tree and roots the engine at b.
func (e *Engine) Reset(b game.Board) {
	e.root = NewNode(b, game.Move{})
}

func placedNode(b game.Board, m game.Move) *Node {
	if m.Value < 1 || m.Value > 2 || m.Pos >= b.EmptyCount() {
		return nil
	}
	return placed(b, m)
}
