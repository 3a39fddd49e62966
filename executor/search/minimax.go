package search

import (
	"math"

	"github.com/brensch/tile2048/game"
)

const (
	posInf = math.MaxInt32
	// negInf is -posInf so negamax can negate bounds without overflow.
	negInf = -posInf
)

// minimax returns n's value and the index of the chosen child (-1 at a leaf).
// Human-turn nodes maximize, chance nodes minimize.
func (e *Engine) minimax(n *Node, depth int) (int32, int) {
	e.stats.visit(n)
	if depth == 0 || n.Board.State == game.Lose {
		n.Value = e.staticValue(n)
		return n.Value, -1
	}
	children := e.expand(n)
	if len(children) == 0 {
		n.Value = e.terminalValue(n)
		return n.Value, -1
	}

	maximizing := n.HumanTurn()
	best, idx := int32(posInf), -1
	if maximizing {
		best = negInf
	}
	for i, c := range children {
		v, _ := e.minimax(c, depth-1)
		if (maximizing && v > best) || (!maximizing && v < best) {
			best, idx = v, i
		}
	}
	n.Value = best
	return best, idx
}

// alphaBeta is minimax with fail-soft pruning. Inside the window it returns
// the same value as minimax; outside it returns a bound on the far side of
// the window.
func (e *Engine) alphaBeta(n *Node, depth int, alpha, beta int32) (int32, int) {
	e.stats.visit(n)
	if depth == 0 || n.Board.State == game.Lose {
		n.Value = e.staticValue(n)
		return n.Value, -1
	}
	children := e.expand(n)
	if len(children) == 0 {
		n.Value = e.terminalValue(n)
		return n.Value, -1
	}

	idx := -1
	if n.HumanTurn() {
		best := int32(negInf)
		for i, c := range children {
			v, _ := e.alphaBeta(c, depth-1, alpha, beta)
			if v > best {
				best, idx = v, i
			}
			alpha = max(alpha, best)
			if alpha >= beta {
				e.stats.Cut += len(children) - i - 1
				break
			}
		}
		n.Value = best
		return best, idx
	}

	best := int32(posInf)
	for i, c := range children {
		v, _ := e.alphaBeta(c, depth-1, alpha, beta)
		if v < best {
			best, idx = v, i
		}
		beta = min(beta, best)
		if alpha >= beta {
			e.stats.Cut += len(children) - i - 1
			break
		}
	}
	n.Value = best
	return best, idx
}
