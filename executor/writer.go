package main

import (
	"log"

	"github.com/brensch/tile2048/store"
)

// parquetWriterLoop streams finished games into batch files of gamesPerFlush
// games each. Game ids are appended to the written log only once their batch
// has been moved into outDir.
func parquetWriterLoop(outDir string, gamesPerFlush int, written *store.WrittenLog, in <-chan []store.TurnRow) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	var bw *store.BatchWriter
	var pendingIDs []string

	flush := func(label string) {
		if bw == nil {
			return
		}
		outPath, rows, games, err := bw.Finalize()
		bw = nil
		if err != nil {
			log.Printf("Parquet %s failed (games=%d): %v", label, len(pendingIDs), err)
			pendingIDs = pendingIDs[:0]
			return
		}
		if outPath != "" {
			if err := written.AddMany(pendingIDs); err != nil {
				log.Printf("Failed to update written log: %v", err)
			}
			log.Printf("Parquet %s ok: %s (games=%d rows=%d)", label, outPath, games, rows)
		}
		pendingIDs = pendingIDs[:0]
	}

	for rows := range in {
		if len(rows) == 0 {
			continue
		}
		if bw == nil {
			var err error
			bw, err = store.NewBatchWriter(outDir)
			if err != nil {
				log.Printf("Failed to open batch writer: %v", err)
				continue
			}
		}
		if err := bw.WriteGame(rows); err != nil {
			log.Printf("Failed to write game %s: %v", rows[0].GameID, err)
			continue
		}
		pendingIDs = append(pendingIDs, rows[0].GameID)

		if bw.BufferedGames() >= gamesPerFlush {
			flush("flush")
		}
	}
	flush("final flush")
}
