package storage

import (
	"fmt"
	"time"
)

/*

schema bootstrap

*/

// the only table: puzzle definitions, keyed by id
const createPuzzlesTable = `
CREATE TABLE IF NOT EXISTS puzzles (
    puzzleId text PRIMARY KEY,
    alphabet text NOT NULL,
    rowList  text[] NOT NULL,
    created  timestamp with time zone NOT NULL
)`

// ensureSchema: create the puzzle table if it's not already
// there.  Called during Connect, so errors are returned rather
// than panicked.
func ensureSchema() error {
	if _, err := pgConn.Exec(createPuzzlesTable); err != nil {
		return fmt.Errorf("Failed to create puzzles table: %v", err)
	}
	return nil
}

/*

sample puzzles

*/

// DefaultPuzzleId is the puzzle sessions start on when they have
// no history and name no other puzzle.
const DefaultPuzzleId = "standard-1"

// The built-in sample puzzles.  The first few standard ones fall
// to constraint propagation alone; the small ones need guessing,
// which makes them good smoke tests for the solver.
var samplePuzzles = map[string][]string{
	"standard-1": {
		"4....35.2",
		"..95.634.",
		"........8",
		"....3486.",
		"..46.52..",
		".2879....",
		"9........",
		".873.29..",
		"5.29....6",
	},
	"standard-2": {
		".1.5.6.2.",
		".....3.18",
		"....7...6",
		"..5....3.",
		"..8.9.7..",
		".6....4..",
		"5...4....",
		"64.2.....",
		".3.9.1.8.",
	},
	"standard-3": {
		"9..45...8",
		".2.......",
		"...1724..",
		".79...68.",
		"2.......5",
		".43...27.",
		"..8325...",
		".......6.",
		"4...16..3",
	},
	"small-1": {
		"1.3.",
		".3.1",
		"3.1.",
		".1.3",
	},
}

// alphabet for a sample, judged by its size
func sampleAlphabet(rows []string) string {
	if len(rows) == 4 {
		return "1234"
	}
	return "123456789"
}

// ensureSampleData: insert any missing sample puzzles.  Also
// called during Connect, so errors are returned.
func ensureSampleData() error {
	tx, err := pgConn.Begin()
	if err != nil {
		return fmt.Errorf("Can't open a transaction for sample data: %v", err)
	}
	for id, rows := range samplePuzzles {
		_, err := tx.Exec(
			"INSERT INTO puzzles (puzzleId, alphabet, rowList, created) "+
				"VALUES ($1, $2, $3, $4) ON CONFLICT (puzzleId) DO NOTHING",
			id, sampleAlphabet(rows), rows, time.Now())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("Failed to insert sample puzzle %q: %v", id, err)
		}
	}
	return tx.Commit()
}

/*

full reset

*/

// Reinitialize drops all stored data, both cache and database,
// and rebuilds the schema and samples from scratch.  Meant for
// deployment preparation and test isolation, not for handlers.
func Reinitialize() error {
	rdMutex.Lock()
	_, err := rdc.Do("FLUSHDB")
	rdMutex.Unlock()
	if err != nil {
		return fmt.Errorf("Failed to flush cache: %v", err)
	}
	if _, err := pgConn.Exec("DROP TABLE IF EXISTS puzzles"); err != nil {
		return fmt.Errorf("Failed to drop puzzles table: %v", err)
	}
	if err := ensureSchema(); err != nil {
		return err
	}
	return ensureSampleData()
}
