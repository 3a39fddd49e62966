package search

import "github.com/brensch/tile2048/game"

// negamax scores n from the side to move: color is +1 at human-turn nodes
// and -1 at chance nodes. Node.Value is still stored from the maximizing
// side so it reads the same as minimax.
func (e *Engine) negamax(n *Node, depth int, color int32) (int32, int) {
	e.stats.visit(n)
	if depth == 0 || n.Board.State == game.Lose {
		n.Value = e.staticValue(n)
		return color * n.Value, -1
	}
	children := e.expand(n)
	if len(children) == 0 {
		n.Value = e.terminalValue(n)
		return color * n.Value, -1
	}

	best, idx := int32(negInf), -1
	for i, c := range children {
		v, _ := e.negamax(c, depth-1, -color)
		if -v > best {
			best, idx = -v, i
		}
	}
	n.Value = color * best
	return best, idx
}

func (e *Engine) negamaxAlphaBeta(n *Node, depth int, alpha, beta, color int32) (int32, int) {
	e.stats.visit(n)
	if depth == 0 || n.Board.State == game.Lose {
		n.Value = e.staticValue(n)
		return color * n.Value, -1
	}
	children := e.expand(n)
	if len(children) == 0 {
		n.Value = e.terminalValue(n)
		return color * n.Value, -1
	}

	best, idx := int32(negInf), -1
	for i, c := range children {
		v, _ := e.negamaxAlphaBeta(c, depth-1, -beta, -alpha, -color)
		if -v > best {
			best, idx = -v, i
		}
		alpha = max(alpha, best)
		if alpha >= beta {
			e.stats.Cut += len(children) - i - 1
			break
		}
	}
	n.Value = color * best
	return best, idx
}
