package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/brensch/tile2048/executor/eval"
	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/rules"
)

// TableFlag registers -table, defaulting to $SLIDE_TABLE or rules.DefaultPath.
func TableFlag(fs *flag.FlagSet) *string {
	return fs.String("table", EnvOr("SLIDE_TABLE", rules.DefaultPath), "Row transition table file")
}

// SearchFlags are the engine settings common to every command.
type SearchFlags struct {
	depth     *int
	algorithm *string
	chance    *string
	order     *bool
	weights   *string
	visits    *bool
	seed      *int64
}

// RegisterSearchFlags adds the engine flags to fs. Defaults come from the
// SEARCH_* environment variables, then search.DefaultConfig.
func RegisterSearchFlags(fs *flag.FlagSet) *SearchFlags {
	def := search.DefaultConfig()
	return &SearchFlags{
		depth:     fs.Int("depth", EnvIntOr("SEARCH_DEPTH", def.Depth), "Search depth in plies"),
		algorithm: fs.String("algorithm", EnvOr("SEARCH_ALGORITHM", def.Algorithm.String()), "minimax, minimax-ab, negamax or negamax-ab"),
		chance:    fs.String("chance", EnvOr("SEARCH_CHANCE", def.Chance.String()), "Chance node policy: full, ordered:N or montecarlo:N"),
		order:     fs.Bool("order", EnvBoolOr("SEARCH_ORDER", def.Order), "Sort children by static evaluation before searching"),
		weights:   fs.String("weights", EnvOr("SEARCH_WEIGHTS", FormatWeights(def.Weights)), "Evaluation weights, e.g. maxcell=40,snake=200"),
		visits:    fs.Bool("visits", EnvBoolOr("SEARCH_VISITS", false), "Track per-board visit counts"),
		seed:      fs.Int64("search-seed", EnvInt64Or("SEARCH_SEED", 1), "Seed for Monte Carlo sampling"),
	}
}

// Config builds the search.Config described by the parsed flags.
func (f *SearchFlags) Config() (search.Config, error) {
	alg, err := search.ParseAlgorithm(*f.algorithm)
	if err != nil {
		return search.Config{}, err
	}
	chance, err := search.ParseChancePolicy(*f.chance)
	if err != nil {
		return search.Config{}, err
	}
	w, err := ParseWeights(*f.weights)
	if err != nil {
		return search.Config{}, err
	}
	cfg := search.Config{
		Depth:       *f.depth,
		Algorithm:   alg,
		Chance:      chance,
		Order:       *f.order,
		Weights:     w,
		TrackVisits: *f.visits,
		Seed:        *f.seed,
	}
	return cfg, cfg.Validate()
}

var weightFields = []struct {
	name string
	get  func(*eval.Weights) *int32
}{
	{"maxcell", func(w *eval.Weights) *int32 { return &w.MaxCell }},
	{"maxscore", func(w *eval.Weights) *int32 { return &w.MaxScore }},
	{"monotonicity", func(w *eval.Weights) *int32 { return &w.Monotonicity }},
	{"smoothness", func(w *eval.Weights) *int32 { return &w.Smoothness }},
	{"freespace", func(w *eval.Weights) *int32 { return &w.FreeSpace }},
	{"snake", func(w *eval.Weights) *int32 { return &w.Snake }},
}

// ParseWeights reads "name=value" pairs separated by commas. Unnamed
// heuristics are zero, i.e. disabled. "default" selects eval.Default.
func ParseWeights(s string) (eval.Weights, error) {
	s = strings.TrimSpace(s)
	if s == "default" {
		return eval.Default, nil
	}
	var w eval.Weights
	if s == "" {
		return w, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return eval.Weights{}, fmt.Errorf("weight %q: want name=value", pair)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return eval.Weights{}, fmt.Errorf("weight %q: %w", pair, err)
		}
		field := weightField(strings.ToLower(strings.TrimSpace(name)))
		if field == nil {
			return eval.Weights{}, fmt.Errorf("unknown weight %q", name)
		}
		*field(&w) = int32(n)
	}
	return w, w.Validate()
}

func weightField(name string) func(*eval.Weights) *int32 {
	for _, f := range weightFields {
		if f.name == name {
			return f.get
		}
	}
	return nil
}

// FormatWeights is the inverse of ParseWeights, listing non-zero weights.
func FormatWeights(w eval.Weights) string {
	var parts []string
	for _, f := range weightFields {
		if v := *f.get(&w); v != 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", f.name, v))
		}
	}
	return strings.Join(parts, ",")
}
