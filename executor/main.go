// Command executor runs engine-vs-self games in parallel and archives every
// turn to parquet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/brensch/tile2048/config"
	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/executor/selfplay"
	"github.com/brensch/tile2048/logging"
	"github.com/brensch/tile2048/rules"
	"github.com/brensch/tile2048/store"
)

var (
	totalMoves   atomic.Int64
	totalGames   atomic.Int64
	skippedGames atomic.Int64
)

func main() {
	fs := flag.CommandLine
	tablePath := config.TableFlag(fs)
	searchFlags := config.RegisterSearchFlags(fs)
	outDir := fs.String("out-dir", config.EnvOr("OUT_DIR", "data/games"), "Directory for parquet batches")
	logPath := fs.String("log-path", config.EnvOr("WRITTEN_LOG", "data/written_games.log"), "Append-only log of game ids already archived")
	workers := fs.Int("workers", config.EnvIntOr("WORKERS", runtime.NumCPU()), "Number of games played in parallel")
	gamesPerFlush := fs.Int("games-per-flush", config.EnvIntOr("GAMES_PER_FLUSH", 50), "Games buffered per parquet batch")
	maxGames := fs.Int64("max-games", config.EnvInt64Or("MAX_GAMES", 0), "Stop after this many games (0 = until interrupted)")
	seedBase := fs.Int64("seed", config.EnvInt64Or("SEED", 1), "Seed of the first game; game i uses seed+i")
	maxTurns := fs.Int("max-turns", config.EnvIntOr("MAX_TURNS", 0), "Cut games off after this many turns (0 = play to the loss)")
	useTUI := fs.Bool("tui", config.EnvBoolOr("TUI", false), "Show a live dashboard instead of log lines")
	trace := fs.Bool("trace", false, "Print every board of worker 0's games to stderr")
	logLevel := fs.String("log-level", config.EnvOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	flag.Parse()

	cfg, err := searchFlags.Config()
	if err != nil {
		log.Fatalf("Invalid search flags: %v", err)
	}

	// Keep the dashboard's screen clean.
	var logOut io.Writer = os.Stderr
	if *useTUI {
		logOut = io.Discard
		log.SetOutput(io.Discard)
	}
	logger, err := logging.Setup(logOut, *logLevel, false)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	table, built, err := rules.LoadOrBuild(*tablePath)
	if err != nil {
		log.Fatalf("Failed to load row table %s: %v", *tablePath, err)
	}
	if built {
		log.Printf("Built row table and saved it to %s", *tablePath)
	}

	written, err := store.OpenWrittenLog(*logPath)
	if err != nil {
		log.Fatalf("Failed to open written log: %v", err)
	}
	defer written.Close()

	log.Printf("Starting executor")
	log.Printf("  Workers: %d", *workers)
	log.Printf("  Search: %s depth=%d chance=%s order=%v", cfg.Algorithm, cfg.Depth, cfg.Chance, cfg.Order)
	log.Printf("  Out Dir: %s", *outDir)
	log.Printf("  Written Log: %s (%d already)", *logPath, written.Count())

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	updates := make(chan GameUpdate, *workers)
	writeReqs := make(chan []store.TurnRow, (*workers)*4)
	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *gamesPerFlush, written, writeReqs)
		close(writerDone)
	}()

	var next atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		g.Go(func() error {
			var traceOut io.Writer
			if *trace && w == 0 {
				traceOut = os.Stderr
			}
			return runWorker(gctx, workerConfig{
				id:       w,
				table:    table,
				search:   cfg,
				seedBase: *seedBase,
				maxGames: *maxGames,
				maxTurns: *maxTurns,
				trace:    traceOut,
				logger:   logger.With("worker", w),
				next:     &next,
				written:  written,
				out:      writeReqs,
				updates:  updates,
			})
		})
	}

	var workersErr error
	workersDone := make(chan struct{})
	go func() {
		workersErr = g.Wait()
		close(writeReqs)
		close(workersDone)
	}()

	if *useTUI {
		p := tea.NewProgram(initialModel(updates, workersDone), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Printf("Dashboard error: %v", err)
		}
		cancel()
	} else {
		logProgress(ctx, updates, workersDone)
	}

	<-workersDone
	<-writerDone
	if workersErr != nil && !errors.Is(workersErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "executor: %v\n", workersErr)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Done: games=%d skipped=%d moves=%d\n", totalGames.Load(), skippedGames.Load(), totalMoves.Load())
}

type workerConfig struct {
	id       int
	table    *rules.Table
	search   search.Config
	seedBase int64
	maxGames int64
	maxTurns int
	trace    io.Writer
	logger   *slog.Logger
	next     *atomic.Int64
	written  *store.WrittenLog
	out      chan<- []store.TurnRow
	updates  chan<- GameUpdate
}

// runWorker claims game numbers until maxGames is reached or ctx ends.
// Games already in the written log are skipped without being played.
func runWorker(ctx context.Context, wc workerConfig) error {
	for ctx.Err() == nil {
		n := wc.next.Add(1) - 1
		if wc.maxGames > 0 && n >= wc.maxGames {
			return nil
		}
		seed := wc.seedBase + n
		if wc.written.Has(selfplay.GameID(seed, wc.search)) {
			skippedGames.Add(1)
			continue
		}

		out, err := selfplay.PlayGame(ctx, wc.table, wc.search, seed, selfplay.Options{
			MaxTurns: wc.maxTurns,
			Logger:   wc.logger,
			Trace:    wc.trace,
			OnStep:   func(selfplay.Step) { totalMoves.Add(1) },
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("worker %d game %d: %w", wc.id, seed, err)
		}
		if !out.Completed {
			return nil
		}
		totalGames.Add(1)

		// The writer drains until every worker has returned.
		wc.out <- out.Rows
		update := GameUpdate{
			WorkerID: wc.id,
			GameID:   out.GameID,
			Turns:    out.Turns,
			Score:    out.Final.Score,
			MaxTile:  out.Final.MaxCell(),
			Lost:     out.Lost,
		}
		select {
		case wc.updates <- update:
		default:
		}
	}
	return nil
}

func logProgress(ctx context.Context, updates <-chan GameUpdate, done <-chan struct{}) {
	start := time.Now()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutdown requested; dropping unfinished games and flushing the rest...")
			return
		case <-done:
			return
		case u := <-updates:
			log.Printf("%s", u)
		case <-ticker.C:
			secs := time.Since(start).Seconds()
			log.Printf("Stats: games=%d skipped=%d moves/s=%.1f", totalGames.Load(), skippedGames.Load(), float64(totalMoves.Load())/secs)
		}
	}
}
