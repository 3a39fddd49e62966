// Command slidetable builds the row transition table and writes it to disk.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/brensch/tile2048/config"
	"github.com/brensch/tile2048/rules"
)

func main() {
	path := config.TableFlag(flag.CommandLine)
	verify := flag.Bool("verify", true, "Reload the written file and compare it with the built table")
	flag.Parse()

	start := time.Now()
	t := rules.Build()
	log.Printf("Built %d changed rows in %s", t.Len(), time.Since(start).Round(time.Millisecond))

	if err := rules.SaveFile(*path, t); err != nil {
		log.Fatalf("Failed to save table: %v", err)
	}
	log.Printf("Wrote %s", *path)

	if !*verify {
		return
	}
	loaded, err := rules.LoadFile(*path)
	if err != nil {
		log.Fatalf("Failed to reload table: %v", err)
	}
	for row := 0; row < rules.Rows; row++ {
		if loaded.Lookup(uint16(row)) != t.Lookup(uint16(row)) {
			log.Fatalf("Row %04x differs after reload", row)
		}
	}
	log.Printf("Verified %s", *path)
}
