// Package selfplay runs the engine against the canonical game: the engine
// picks every slide, the session spawns every tile, and each committed turn
// becomes an archive row.
package selfplay

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"time"

	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/game"
	"github.com/brensch/tile2048/rules"
	"github.com/brensch/tile2048/store"
)

// Checkpoint is a paused game. The session's spawns depend only on the seed
// and the number of spawns so far, so replaying Moves restores it exactly.
type Checkpoint struct {
	GameID string           `json:"game_id"`
	Seed   int64            `json:"seed"`
	Moves  []game.Direction `json:"moves"`
	Rows   []store.TurnRow  `json:"rows"`
}

// Step is reported to Options.OnStep after every committed turn.
type Step struct {
	GameID string
	Turn   int
	Move   game.Move
	Spawn  game.Move
	Board  game.Board
	Result search.Result
}

type Options struct {
	// GameID defaults to GameID(seed, cfg).
	GameID string
	// MaxTurns stops the game early when positive.
	MaxTurns      int
	Resume        *Checkpoint
	StopRequested func() bool
	OnStep        func(Step)
	Logger        *slog.Logger
	// Trace, when set, receives a rendering of every position.
	Trace io.Writer
}

type GameOutcome struct {
	GameID string
	Seed   int64
	// Completed is false when the game was paused; Checkpoint is then set.
	Completed  bool
	Lost       bool
	Turns      int
	Final      game.Board
	Rows       []store.TurnRow
	Checkpoint *Checkpoint
}

// GameID names a game after its seed and engine settings, so reruns of the
// same configuration produce the same id and any change to the tuning
// produces a new one.
func GameID(seed int64, cfg search.Config) string {
	return fmt.Sprintf("g%d_%s_d%d_%s_%s", seed, cfg.Algorithm, cfg.Depth, cfg.Chance, tuningTag(cfg))
}

// tuningTag is "o" or "u" for ordered or unordered search followed by a hash
// of the weights and, for sampled chance nodes, the sampling seed.
func tuningTag(cfg search.Config) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%+v", cfg.Weights)
	if cfg.Chance.Kind == search.MonteCarlo {
		fmt.Fprintf(h, "|%d", cfg.Seed)
	}
	order := "u"
	if cfg.Order {
		order = "o"
	}
	return fmt.Sprintf("%s%08x", order, h.Sum32())
}

// PlayGame plays one game to the end, to MaxTurns, or until ctx is done or
// StopRequested returns true. A paused game returns its checkpoint along
// with ctx.Err() when ctx ended it.
//
// It panics if the engine and the session disagree about the board; that is
// a bug, not a runtime condition.
func PlayGame(ctx context.Context, table *rules.Table, cfg search.Config, seed int64, opts Options) (GameOutcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stopRequested := opts.StopRequested
	if stopRequested == nil {
		stopRequested = func() bool { return false }
	}

	gameID := opts.GameID
	if gameID == "" {
		gameID = GameID(seed, cfg)
	}
	session := game.NewSession(seed)
	var moves []game.Direction
	rows := make([]store.TurnRow, 0, 256)

	if r := opts.Resume; r != nil {
		gameID, seed = r.GameID, r.Seed
		var err error
		if session, err = Replay(r.Seed, r.Moves); err != nil {
			return GameOutcome{}, fmt.Errorf("resume %s: %w", r.GameID, err)
		}
		moves = append(moves, r.Moves...)
		rows = append(rows, r.Rows...)
	}
	logger = logger.With("game", gameID)

	engine, err := search.New(table, session.Board, cfg, search.WithLogger(logger))
	if err != nil {
		return GameOutcome{}, err
	}

	outcome := func(completed bool) GameOutcome {
		out := GameOutcome{
			GameID:    gameID,
			Seed:      seed,
			Completed: completed,
			Lost:      session.Lost(),
			Turns:     len(moves),
			Final:     session.Snapshot(),
			Rows:      rows,
		}
		if !completed {
			out.Checkpoint = &Checkpoint{
				GameID: gameID,
				Seed:   seed,
				Moves:  append([]game.Direction(nil), moves...),
				Rows:   append([]store.TurnRow(nil), rows...),
			}
		}
		return out
	}

	for !session.Lost() {
		if err := ctx.Err(); err != nil {
			return outcome(false), err
		}
		if stopRequested() {
			return outcome(false), nil
		}
		if opts.MaxTurns > 0 && len(moves) >= opts.MaxTurns {
			break
		}
		if opts.Trace != nil {
			PrintBoard(opts.Trace, len(moves), session.Board)
		}

		before := session.Snapshot()
		start := time.Now()
		res, err := engine.BestMove()
		if err != nil {
			return outcome(false), fmt.Errorf("turn %d: %w", len(moves), err)
		}
		elapsed := time.Since(start)

		dir := res.Move.Dir
		if !res.Move.IsHuman() || !session.HumanMove(dir) {
			panic(fmt.Sprintf("selfplay %s: engine chose %v, session rejected it\n%v", gameID, res.Move, before))
		}
		spawn, ok := session.RandomMove()
		if !ok {
			panic(fmt.Sprintf("selfplay %s: no room to spawn after %v\n%v", gameID, dir, session.Board))
		}
		if !engine.CommitRandom(spawn) || engine.Root().Board != session.Board {
			panic(fmt.Sprintf("selfplay %s: engine out of sync after %v %v\nengine:\n%v\nsession:\n%v",
				gameID, dir, spawn, engine.Root().Board, session.Board))
		}

		rows = append(rows, turnRow(gameID, seed, len(moves), before, res, spawn, cfg, elapsed, session.Lost()))
		moves = append(moves, dir)

		if opts.OnStep != nil {
			opts.OnStep(Step{
				GameID: gameID,
				Turn:   len(moves) - 1,
				Move:   res.Move,
				Spawn:  spawn,
				Board:  session.Snapshot(),
				Result: res,
			})
		}
	}

	final := session.Snapshot()
	logger.Info("game finished",
		"turns", len(moves),
		"lost", session.Lost(),
		"board", final,
	)
	return outcome(true), nil
}

func turnRow(gameID string, seed int64, turn int, b game.Board, res search.Result, spawn game.Move, cfg search.Config, elapsed time.Duration, lost bool) store.TurnRow {
	return store.TurnRow{
		GameID:      gameID,
		Turn:        int32(turn),
		Seed:        seed,
		BoardID:     int64(b.ID()),
		Cells:       store.Cells(&b),
		Score:       int64(b.Score),
		Move:        res.Move.Dir.String(),
		SpawnValue:  int32(spawn.Value),
		SpawnPos:    int32(spawn.Pos),
		SearchScore: res.Score,
		Nodes:       int64(res.Stats.Total),
		Cut:         int64(res.Stats.Cut),
		Unique:      int64(res.Stats.Unique()),
		Algorithm:   cfg.Algorithm.String(),
		Depth:       int32(cfg.Depth),
		ElapsedUS:   elapsed.Microseconds(),
		Lost:        lost,
	}
}

// Replay rebuilds the session reached by playing moves from seed.
func Replay(seed int64, moves []game.Direction) (*game.Session, error) {
	s := game.NewSession(seed)
	for i, d := range moves {
		if !s.MakeMove(d) {
			return nil, fmt.Errorf("move %d (%v) does not apply", i, d)
		}
	}
	return s, nil
}
