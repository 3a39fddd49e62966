// Command play is an interactive 2048 board in the terminal with optional
// engine hints.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/tile2048/config"
	"github.com/brensch/tile2048/executor/search"
	"github.com/brensch/tile2048/game"
	"github.com/brensch/tile2048/logging"
	"github.com/brensch/tile2048/rules"
)

func main() {
	fs := flag.CommandLine
	tablePath := config.TableFlag(fs)
	searchFlags := config.RegisterSearchFlags(fs)
	seed := fs.Int64("seed", config.EnvInt64Or("SEED", time.Now().UnixNano()), "Seed of the tile generator")
	hints := fs.Bool("hints", config.EnvBoolOr("HINTS", true), "Build an engine so ? can suggest a move")
	logPath := fs.String("log-file", config.EnvOr("LOG_FILE", ""), "Write logs here instead of discarding them")
	logLevel := fs.String("log-level", config.EnvOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.Setup(logOut, *logLevel, false)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	session := game.NewSession(*seed)
	var engine *search.Engine
	if *hints {
		cfg, err := searchFlags.Config()
		if err != nil {
			log.Fatalf("Invalid search flags: %v", err)
		}
		table, _, err := rules.LoadOrBuild(*tablePath)
		if err != nil {
			log.Fatalf("Failed to load row table %s: %v", *tablePath, err)
		}
		engine, err = search.New(table, session.Board, cfg, search.WithLogger(logger))
		if err != nil {
			log.Fatalf("Failed to start engine: %v", err)
		}
	}
	logger.Info("game started", "seed", *seed, "hints", *hints)

	if _, err := tea.NewProgram(newModel(session, engine)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "play: %v\n", err)
		os.Exit(1)
	}
	logger.Info("game ended",
		"score", session.Score(),
		"max", session.MaxCell(),
		"moves", session.MoveCount(),
		"lost", session.Lost(),
	)
}
