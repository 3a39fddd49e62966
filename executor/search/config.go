package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brensch/tile2048/executor/eval"
)

var (
	ErrTableNotLoaded       = errors.New("row transition table not loaded")
	ErrUnsupportedAlgorithm = errors.New("search algorithm not implemented")
	ErrInvalidConfig        = errors.New("invalid search config")
)

// Algorithm selects the tree search used by BestMove.
type Algorithm int

const (
	Minimax Algorithm = iota
	MinimaxAlphaBeta
	Negamax
	NegamaxAlphaBeta
	// NegaScout and ExpectiMinimax are recognised by the parser but have no
	// implementation; New rejects them.
	NegaScout
	ExpectiMinimax
)

var algorithmNames = [...]string{
	Minimax:          "minimax",
	MinimaxAlphaBeta: "minimax-ab",
	Negamax:          "negamax",
	NegamaxAlphaBeta: "negamax-ab",
	NegaScout:        "negascout",
	ExpectiMinimax:   "expectiminimax",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// Implemented reports whether BestMove can run a.
func (a Algorithm) Implemented() bool {
	return a >= Minimax && a <= NegamaxAlphaBeta
}

func (a Algorithm) pruned() bool {
	return a == MinimaxAlphaBeta || a == NegamaxAlphaBeta
}

func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range algorithmNames {
		if name == s {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, s)
}

// ChanceKind is how a chance node enumerates tile placements.
type ChanceKind int

const (
	// Full enumerates every placement: all value-1 tiles in scan order, then
	// all value-2 tiles.
	Full ChanceKind = iota
	// Ordered keeps the first N placements of the Full order.
	Ordered
	// MonteCarlo samples N distinct positions with the engine's own generator.
	MonteCarlo
)

type ChancePolicy struct {
	Kind ChanceKind
	N    uint8
}

func FullPolicy() ChancePolicy { return ChancePolicy{Kind: Full} }
func OrderedPolicy(n uint8) ChancePolicy { return ChancePolicy{Kind: Ordered, N: n} }
func MonteCarloPolicy(n uint8) ChancePolicy { return ChancePolicy{Kind: MonteCarlo, N: n} }

func (p ChancePolicy) String() string {
	switch p.Kind {
	case Full:
		return "full"
	case Ordered:
		return fmt.Sprintf("ordered:%d", p.N)
	case MonteCarlo:
		return fmt.Sprintf("montecarlo:%d", p.N)
	}
	return fmt.Sprintf("ChancePolicy(%d)", int(p.Kind))
}

// ParseChancePolicy accepts "full", "ordered:N" and "montecarlo:N".
func ParseChancePolicy(s string) (ChancePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "full" {
		return FullPolicy(), nil
	}
	name, arg, ok := strings.Cut(s, ":")
	if !ok {
		return ChancePolicy{}, fmt.Errorf("%w: chance policy %q needs a count", ErrInvalidConfig, s)
	}
	n, err := strconv.ParseUint(arg, 10, 8)
	if err != nil || n == 0 {
		return ChancePolicy{}, fmt.Errorf("%w: bad count in chance policy %q", ErrInvalidConfig, s)
	}
	switch name {
	case "ordered":
		return OrderedPolicy(uint8(n)), nil
	case "montecarlo", "mc":
		return MonteCarloPolicy(uint8(n)), nil
	}
	return ChancePolicy{}, fmt.Errorf("%w: unknown chance policy %q", ErrInvalidConfig, name)
}

// MaxDepth caps the search depth accepted by Validate.
const MaxDepth = 12

// Config is fixed for the lifetime of an Engine.
type Config struct {
	Depth     int
	Algorithm Algorithm
	Chance    ChancePolicy
	Order     bool
	Weights   eval.Weights
	// TrackVisits enables the per-board visit histogram in Stats.
	TrackVisits bool
	// Seed drives MonteCarlo sampling. It must not be the game's seed.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Depth:     3,
		Algorithm: MinimaxAlphaBeta,
		Chance:    FullPolicy(),
		Order:     true,
		Weights:   eval.Default,
	}
}

func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside 1..%d", ErrInvalidConfig, c.Depth, MaxDepth)
	}
	if c.Algorithm < 0 || int(c.Algorithm) >= len(algorithmNames) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Algorithm)
	}
	if !c.Algorithm.Implemented() {
		return fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, c.Algorithm)
	}
	switch c.Chance.Kind {
	case Full:
	case Ordered, MonteCarlo:
		if c.Chance.N == 0 {
			return fmt.Errorf("%w: %v takes at least one placement", ErrInvalidConfig, c.Chance)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Chance)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
