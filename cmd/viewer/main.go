// Command viewer serves the self-play parquet archive over HTTP and streams
// game replays over websockets.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/brensch/tile2048/config"
	"github.com/brensch/tile2048/logging"
	"github.com/brensch/tile2048/viewer"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	listen := fs.String("listen", config.EnvOr("LISTEN", "127.0.0.1:8080"), "HTTP listen address")
	dataDirs := fs.String("data-dirs", config.EnvOr("DATA_DIRS", "data/games"), "Comma-separated list of directories containing turn parquet batches")
	refresh := fs.Duration("refresh", config.EnvDurationOr("REFRESH", 30*time.Second), "How often to rescan the data dirs for new batches")
	replayDelay := fs.Duration("replay-delay", config.EnvDurationOr("REPLAY_DELAY", 150*time.Millisecond), "Delay between websocket replay turns")
	logLevel := fs.String("log-level", config.EnvOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	logger, err := logging.Setup(os.Stderr, *logLevel, false)
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}

	roots := lo.Compact(lo.Map(strings.Split(*dataDirs, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
	log.Printf("Viewer data roots: %s", strings.Join(roots, ","))

	db := viewer.NewDBCache(roots, *refresh, logger)
	defer db.Close()
	server := viewer.NewServer(db, viewer.Options{ReplayDelay: *replayDelay, Logger: logger})

	srv := &http.Server{
		Addr:              *listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("Viewer API listening on http://%s", *listen)
	log.Fatal(srv.ListenAndServe())
}
