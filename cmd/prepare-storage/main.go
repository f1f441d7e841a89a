// Prepare the sudoku storage system: make sure the schema and
// the sample puzzles are in place, optionally wiping everything
// first, and optionally storing extra puzzles from files.
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/tilegrid/sudoku/grid"
	"github.com/tilegrid/sudoku/storage"
)

var (
	reset    = flag.Bool("reset", false, "wipe all stored data before preparing")
	alphabet = flag.String("alphabet", grid.StandardAlphabet, "alphabet for added puzzles")
)

func main() {
	flag.Parse()
	godotenv.Load()

	if _, _, err := storage.Connect(); err != nil {
		log.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer storage.Close()

	if *reset {
		log.Info("Removing existing data storage and cache...")
		if err := storage.Reinitialize(); err != nil {
			log.Fatalf("Couldn't reinitialize storage: %v", err)
		}
	}

	// extra puzzles come in id/file pairs
	args := flag.Args()
	if len(args)%2 != 0 {
		log.Fatalf("Extra puzzles must be given as id file pairs, got %v", args)
	}
	for i := 0; i < len(args); i += 2 {
		id, path := args[i], args[i+1]
		bytes, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Couldn't read %q: %v", path, err)
		}
		summary := grid.Summary{Alphabet: *alphabet, Rows: grid.SplitRows(string(bytes))}
		if err := storage.SavePuzzle(id, summary); err != nil {
			log.Fatalf("Couldn't store puzzle %q: %v", id, err)
		}
		log.WithField("puzzle", id).Info("stored puzzle")
	}

	log.Info("Storage prepared.")
}
