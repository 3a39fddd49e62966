package search

import (
	"sort"

	"github.com/samber/lo"
)

// Stats describes one BestMove call. It never influences the chosen move.
type Stats struct {
	// Total is the number of nodes visited.
	Total int
	// Cut is the number of sibling subtrees skipped by pruning.
	Cut int
	// Visits counts visits per board id. Nil unless TrackVisits is set.
	Visits map[uint64]int
}

func newStats(track bool) Stats {
	s := Stats{}
	if track {
		s.Visits = make(map[uint64]int)
	}
	return s
}

func (s *Stats) visit(n *Node) {
	s.Total++
	if s.Visits != nil {
		s.Visits[n.Board.ID()]++
	}
}

// Unique is the number of distinct boards visited, or 0 without tracking.
func (s Stats) Unique() int {
	return len(s.Visits)
}

// VisitCount is one entry of the visit histogram.
type VisitCount struct {
	ID    uint64
	Count int
}

// TopVisited returns the n most visited boards, most visited first. Equal
// counts are ordered by board id.
func (s Stats) TopVisited(n int) []VisitCount {
	out := lo.MapToSlice(s.Visits, func(id uint64, c int) VisitCount {
		return VisitCount{ID: id, Count: c}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
