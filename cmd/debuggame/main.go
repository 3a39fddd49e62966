// Command debuggame plays one traced game, archives it as a single parquet
// file and prints the viewer link. Games can be paused into a JSON
// checkpoint and resumed later.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brensch/tile2048/config"
	"github.com/brensch/tile2048/executor/selfplay"
	"github.com/brensch/tile2048/logging"
	"github.com/brensch/tile2048/rules"
	"github.com/brensch/tile2048/store"
)

func main() {
	fs := flag.CommandLine
	tablePath := config.TableFlag(fs)
	searchFlags := config.RegisterSearchFlags(fs)
	seed := fs.Int64("seed", time.Now().UnixNano(), "Seed of the tile generator")
	outDir := fs.String("out-dir", filepath.Join("data", "debug_games"), "Output directory for debug games")
	stopAfter := fs.Int("stop-after", 0, "Pause after this many turns and write a checkpoint (0 = play to the end)")
	checkpointPath := fs.String("checkpoint", "debuggame.checkpoint.json", "Where a paused game is written")
	resumePath := fs.String("resume", "", "Resume the game stored in this checkpoint")
	quiet := fs.Bool("quiet", false, "Do not print every board")
	frontendHost := fs.String("frontend", "http://localhost:8080", "Viewer base URL")
	flag.Parse()

	logger, err := logging.Setup(os.Stderr, "debug", true)
	if err != nil {
		log.Fatalf("Logging setup: %v", err)
	}
	cfg, err := searchFlags.Config()
	if err != nil {
		log.Fatalf("Invalid search flags: %v", err)
	}
	table, _, err := rules.LoadOrBuild(*tablePath)
	if err != nil {
		log.Fatalf("Failed to load row table: %v", err)
	}

	opts := selfplay.Options{Logger: logger}
	if !*quiet {
		opts.Trace = os.Stdout
	}
	if *resumePath != "" {
		cp, err := readCheckpoint(*resumePath)
		if err != nil {
			log.Fatalf("Failed to read checkpoint: %v", err)
		}
		opts.Resume = cp
		*seed = cp.Seed
		log.Printf("Resuming %s at turn %d", cp.GameID, len(cp.Moves))
	}
	if *stopAfter > 0 {
		opts.StopRequested = func() bool { return turns >= *stopAfter }
	}
	opts.OnStep = func(st selfplay.Step) {
		turns++
		if !cfg.TrackVisits {
			return
		}
		for _, v := range st.Result.Stats.TopVisited(3) {
			logger.Debug("hot board", "turn", st.Turn, "id", fmt.Sprintf("%016x", v.ID), "visits", v.Count)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	out, err := selfplay.PlayGame(ctx, table, cfg, *seed, opts)
	if err != nil {
		log.Fatalf("Failed to play debug game: %v", err)
	}

	if !out.Completed {
		if err := writeCheckpoint(*checkpointPath, out.Checkpoint); err != nil {
			log.Fatalf("Failed to write checkpoint: %v", err)
		}
		log.Printf("Paused %s after %d turns; resume with -resume %s", out.GameID, out.Turns, *checkpointPath)
		return
	}

	log.Printf("Game complete: %d turns, score %d, max tile %d", out.Turns, out.Final.Score, out.Final.MaxCell())

	parquetPath := filepath.Join(*outDir, out.GameID+".parquet")
	if err := store.WriteGameParquet(parquetPath, out.Rows); err != nil {
		log.Fatalf("Failed to write debug game: %v", err)
	}
	log.Printf("Debug game written to: %s", parquetPath)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  Debug game ready! Replay it with:\n")
	fmt.Printf("  %s/api/games/%s\n", *frontendHost, out.GameID)
	fmt.Printf("  %s/ws/replay/%s\n", wsURL(*frontendHost), out.GameID)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
}

// turns counts turns played in this process; a resumed game pauses again
// stop-after turns later.
var turns int

func readCheckpoint(path string) (*selfplay.Checkpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cp selfplay.Checkpoint
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cp, nil
}

func writeCheckpoint(path string, cp *selfplay.Checkpoint) error {
	b, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func wsURL(base string) string {
	if rest, ok := strings.CutPrefix(base, "http"); ok {
		return "ws" + rest
	}
	return base
}
