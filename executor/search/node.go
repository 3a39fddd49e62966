package search

import (
	"github.com/brensch/tile2048/game"
)

// Node is one position in the search tree. Each node owns its children;
// committing a move detaches the matching child and drops the rest.
type Node struct {
	Board game.Board
	// Move produced Board from the parent. A random move (the zero Move
	// included) means a human move is next.
	Move game.Move
	// Value is the last search result for this node, from the maximizing
	// player's point of view.
	Value int32
	// Children is valid once Expanded is set. An expanded node with no
	// children is terminal.
	Children []*Node
	Expanded bool
}

// NewNode creates an unexpanded node.
func NewNode(b game.Board, m game.Move) *Node {
	return &Node{Board: b, Move: m}
}

// HumanTurn reports whether the next move from n is a slide.
func (n *Node) HumanTurn() bool {
	return n.Move.IsRandom()
}

// Child returns the index of the child reached by m, or -1.
func (n *Node) Child(m game.Move) int {
	for i, c := range n.Children {
		if c.Move == m {
			return i
		}
	}
	return -1
}

// Size counts n and every retained descendant.
func (n *Node) Size() int {
	total := 1
	for _, c := range n.Children {
		total += c.Size()
	}
	return total
}
