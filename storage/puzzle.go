package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx"

	"github.com/tilegrid/sudoku/grid"
)

/*

puzzle entries

*/

// A puzzleEntry is the stored form of a puzzle definition.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type puzzleEntry struct {
	PuzzleId string
	Alphabet string
	Rows     []string
}

// lookupPuzzleEntry first checks the cache, then the database,
// for the puzzle's entry.  If it loads from the database, it
// caches the result.  Returns whether the entry was found.
func lookupPuzzleEntry(id string) (*puzzleEntry, bool) {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe, true
	}
	if !pe.databaseLoad() {
		return nil, false
	}
	pe.cacheInsert()
	return pe, true
}

// loadPuzzleEntry is lookupPuzzleEntry for entries that are known
// to exist.  Panics if there is no such stored entry.
func loadPuzzleEntry(id string) *puzzleEntry {
	pe, ok := lookupPuzzleEntry(id)
	if !ok {
		panic(fmt.Errorf("No stored puzzle with id %q", id))
	}
	return pe
}

// summary: the grid-level form of the entry
func (pe *puzzleEntry) summary() grid.Summary {
	return grid.Summary{Alphabet: pe.Alphabet, Rows: pe.Rows}
}

// makeGrid: make the grid described in a puzzle entry
func (pe *puzzleEntry) makeGrid() *grid.Grid {
	g, e := grid.NewFromSummary(pe.summary())
	if e != nil {
		panic(fmt.Errorf("Failed to create grid for puzzle %q: %v", pe.PuzzleId, e))
	}
	return g
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	if err := json.Unmarshal(bytes, &spe); err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// databaseLoad: load a puzzle entry from the database.  Returns
// whether there is a saved entry with the given id.
func (pe *puzzleEntry) databaseLoad() (found bool) {
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT alphabet, rowList FROM puzzles WHERE puzzleId = $1", pe.PuzzleId)
		err := row.Scan(&pe.Alphabet, &pe.Rows)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		found = true
		return nil
	}
	pgExecute(body)
	return
}

// cacheInsert: insert a puzzle entry into the cache.  Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a new puzzle entry into the database.
// Panics if there is already a saved entry with the given id.
func (pe *puzzleEntry) databaseInsert() {
	body := func(tx *pgx.Tx) (err error) {
		_, err = tx.Exec(
			"INSERT INTO puzzles (puzzleId, alphabet, rowList, created) "+
				"VALUES ($1, $2, $3, $4)",
			pe.PuzzleId, pe.Alphabet, pe.Rows, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}

/*

exported puzzle operations

*/

// LoadPuzzle returns the summary of a stored puzzle, if there is
// one with the given id.
func LoadPuzzle(id string) (grid.Summary, bool) {
	pe, ok := lookupPuzzleEntry(id)
	if !ok {
		return grid.Summary{}, false
	}
	return pe.summary(), true
}

// SavePuzzle stores a new puzzle definition under the given id.
// The summary must describe a valid grid, and the id must not
// already be taken.
func SavePuzzle(id string, summary grid.Summary) error {
	if _, err := grid.NewFromSummary(summary); err != nil {
		return err
	}
	if _, ok := lookupPuzzleEntry(id); ok {
		return fmt.Errorf("A puzzle with id %q is already stored", id)
	}
	pe := &puzzleEntry{PuzzleId: id, Alphabet: summary.Alphabet, Rows: summary.Rows}
	pe.databaseInsert()
	pe.cacheInsert()
	return nil
}

// PuzzleIds returns the ids of all stored puzzles, sorted.
func PuzzleIds() []string {
	var ids []string
	body := func(tx *pgx.Tx) error {
		rows, err := tx.Query("SELECT puzzleId FROM puzzles ORDER BY puzzleId")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("Failure reading puzzle id: %v", err)
			}
			ids = append(ids, id)
		}
		return rows.Err()
	}
	pgExecute(body)
	return ids
}

/*

solution cache

*/

// solutionKey: the cache key for a puzzle's solved rows
func solutionKey(id string) string {
	return "SOL:PID:" + id
}

// SaveSolution caches the solved rows for a stored puzzle, so
// repeat solve requests don't redo the search.
func SaveSolution(id string, rows []string) {
	bytes, e := json.Marshal(rows)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solution for %q: %v", id, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", solutionKey(id), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving solution for %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
}

// LoadSolution returns the cached solved rows for a puzzle, if
// any have been saved.
func LoadSolution(id string) ([]string, bool) {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", solutionKey(id)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading solution for %q: %v", id, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return nil, false
	}
	var rows []string
	if err := json.Unmarshal(bytes, &rows); err != nil {
		panic(fmt.Errorf("Failed to unmarshal solution for %q: %v", id, err))
	}
	return rows, true
}
