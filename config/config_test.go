package config

import (
	"errors"
	"flag"
	"testing"
	"time"

	"github.com/brensch/tile2048/executor/eval"
	"github.com/brensch/tile2048/executor/search"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("T2048_STR", "abc")
	t.Setenv("T2048_INT", "12")
	t.Setenv("T2048_BAD_INT", "twelve")
	t.Setenv("T2048_DUR", "1500ms")
	t.Setenv("T2048_BOOL", "yes")

	if EnvOr("T2048_STR", "x") != "abc" || EnvOr("T2048_MISSING", "x") != "x" {
		t.Fatalf("EnvOr")
	}
	if EnvIntOr("T2048_INT", 1) != 12 || EnvIntOr("T2048_BAD_INT", 1) != 1 {
		t.Fatalf("EnvIntOr")
	}
	if EnvInt64Or("T2048_INT", 1) != 12 {
		t.Fatalf("EnvInt64Or")
	}
	if EnvDurationOr("T2048_DUR", time.Second) != 1500*time.Millisecond {
		t.Fatalf("EnvDurationOr")
	}
	if !EnvBoolOr("T2048_BOOL", false) || EnvBoolOr("T2048_STR", true) {
		t.Fatalf("EnvBoolOr")
	}
}

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights("maxcell=10, Snake=-20,freespace=0")
	if err != nil {
		t.Fatal(err)
	}
	if w != (eval.Weights{MaxCell: 10, Snake: -20}) {
		t.Fatalf("parsed %+v", w)
	}

	if w, err := ParseWeights("default"); err != nil || w != eval.Default {
		t.Fatalf("default: %+v %v", w, err)
	}
	if w, err := ParseWeights(""); err != nil || w != (eval.Weights{}) {
		t.Fatalf("empty: %+v %v", w, err)
	}

	for _, bad := range []string{"maxcell", "maxcell=x", "luck=3"} {
		if _, err := ParseWeights(bad); err == nil {
			t.Fatalf("%q should fail", bad)
		}
	}
	if _, err := ParseWeights("snake=401"); !errors.Is(err, eval.ErrWeightRange) {
		t.Fatalf("out of range weight: %v", err)
	}
}

func TestFormatWeightsRoundTrip(t *testing.T) {
	s := FormatWeights(eval.Default)
	w, err := ParseWeights(s)
	if err != nil {
		t.Fatal(err)
	}
	if w != eval.Default {
		t.Fatalf("%q parsed back as %+v", s, w)
	}
}

func TestSearchFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := RegisterSearchFlags(fs)
	table := TableFlag(fs)
	err := fs.Parse([]string{
		"-depth", "4",
		"-algorithm", "negamax-ab",
		"-chance", "montecarlo:6",
		"-order=false",
		"-weights", "freespace=300",
		"-visits",
		"-search-seed", "99",
		"-table", "/tmp/t.bin",
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := sf.Config()
	if err != nil {
		t.Fatal(err)
	}
	want := search.Config{
		Depth:       4,
		Algorithm:   search.NegamaxAlphaBeta,
		Chance:      search.MonteCarloPolicy(6),
		Order:       false,
		Weights:     eval.Weights{FreeSpace: 300},
		TrackVisits: true,
		Seed:        99,
	}
	if cfg != want {
		t.Fatalf("config %+v, want %+v", cfg, want)
	}
	if *table != "/tmp/t.bin" {
		t.Fatalf("table %q", *table)
	}
}

func TestSearchFlags_Defaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sf := RegisterSearchFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	cfg, err := sf.Config()
	if err != nil {
		t.Fatal(err)
	}
	def := search.DefaultConfig()
	if cfg.Depth != def.Depth || cfg.Algorithm != def.Algorithm || cfg.Chance != def.Chance || cfg.Weights != def.Weights {
		t.Fatalf("defaults %+v", cfg)
	}
}

func TestSearchFlags_Rejects(t *testing.T) {
	for _, args := range [][]string{
		{"-algorithm", "negascout"},
		{"-algorithm", "bogus"},
		{"-chance", "ordered"},
		{"-depth", "0"},
		{"-weights", "snake=9000"},
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		sf := RegisterSearchFlags(fs)
		if err := fs.Parse(args); err != nil {
			t.Fatal(err)
		}
		if _, err := sf.Config(); err == nil {
			t.Fatalf("%v should be rejected", args)
		}
	}
}
