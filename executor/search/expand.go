package search

import (
	"sort"

	"github.com/brensch/tile2048/executor/eval"
	"github.com/brensch/tile2048/game"
)

// expand populates n.Children once. Human-turn nodes get one child per
// direction that changes the board; chance nodes get placements chosen by
// the chance policy.
func (e *Engine) expand(n *Node) []*Node {
	if n.Expanded {
		return n.Children
	}
	n.Expanded = true
	if n.HumanTurn() {
		n.Children = e.humanChildren(n.Board)
	} else {
		n.Children = e.randomChildren(n.Board)
	}
	if e.cfg.Order && len(n.Children) > 1 {
		e.order(n)
	}
	return n.Children
}

func (e *Engine) humanChildren(b game.Board) []*Node {
	out := make([]*Node, 0, len(game.Directions))
	for _, dir := range game.Directions {
		next := b
		if e.table.Slide(&next, dir) {
			out = append(out, NewNode(next, game.Human(dir)))
		}
	}
	return out
}

func (e *Engine) randomChildren(b game.Board) []*Node {
	empty := b.EmptyCount()
	if empty == 0 {
		return nil
	}
	switch e.cfg.Chance.Kind {
	case Ordered:
		return placements(b, empty, int(e.cfg.Chance.N))
	case MonteCarlo:
		return e.sampledPlacements(b, empty)
	default:
		return placements(b, empty, 2*int(empty))
	}
}

// placements lists up to limit children: every value-1 tile in scan order,
// then every value-2 tile.
func placements(b game.Board, empty uint8, limit int) []*Node {
	n := min(limit, 2*int(empty))
	out := make([]*Node, 0, n)
	for value := uint8(1); value <= 2; value++ {
		for pos := uint8(0); pos < empty; pos++ {
			if len(out) == n {
				return out
			}
			out = append(out, placed(b, game.Random(value, pos)))
		}
	}
	return out
}

// sampledPlacements draws distinct positions for b. The draws depend only on
// the configured seed and the board's cells, so a node gets the same sample
// whichever order the search reaches it in. Each draw picks among the
// positions not yet taken.
func (e *Engine) sampledPlacements(b game.Board, empty uint8) []*Node {
	k := min(int(e.cfg.Chance.N), int(empty))
	free := make([]uint8, empty)
	for i := range free {
		free[i] = uint8(i)
	}
	seed := game.DeriveSeed(e.sampleSeed, b.ID())
	draw := func(i int, n uint64) uint64 {
		return uint64(game.DeriveSeed(seed, uint64(i))) % n
	}
	out := make([]*Node, 0, k)
	for i := 0; i < k; i++ {
		value := uint8(1)
		if draw(2*i, 100) < game.DoubleChance {
			value = 2
		}
		idx := draw(2*i+1, uint64(len(free)))
		pos := free[idx]
		free = append(free[:idx], free[idx+1:]...)
		out = append(out, placed(b, game.Random(value, pos)))
	}
	return out
}

func placed(b game.Board, m game.Move) *Node {
	// Pos is always below the empty count here.
	_ = b.SetTile(m.Value, m.Pos)
	if !b.CanMove() {
		b.State = game.Lose
	}
	return NewNode(b, m)
}

// order sorts children by static value: best first for the maximizing side,
// worst first for the chance side. The sort is stable so equal children keep
// generation order.
func (e *Engine) order(n *Node) {
	keys := make(map[*Node]int32, len(n.Children))
	for _, c := range n.Children {
		keys[c] = e.staticValue(c)
	}
	maximizing := n.HumanTurn()
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := keys[n.Children[i]], keys[n.Children[j]]
		if maximizing {
			return a > b
		}
		return a < b
	})
}

// LossPenalty is subtracted from a lost position's evaluation. It exceeds
// any weighted evaluation, so a loss always scores below a live position.
const LossPenalty = 1_000_000

func (e *Engine) staticValue(n *Node) int32 {
	v := eval.Evaluate(e.cfg.Weights, &n.Board)
	if n.Board.State == game.Lose {
		v -= LossPenalty
	}
	return v
}

// terminalValue scores an expanded node with no children. A human-turn node
// without a legal slide is lost; a chance node without empty cells gets the
// mirrored bonus.
func (e *Engine) terminalValue(n *Node) int32 {
	v := eval.Evaluate(e.cfg.Weights, &n.Board)
	if n.HumanTurn() {
		return v - LossPenalty
	}
	return v + LossPenalty
}
