package storage

import (
	"fmt"
	"os"
	"reflect"
	"testing"

	"github.com/tilegrid/sudoku/grid"
)

// These tests need a live Redis and Postgres; when neither is
// reachable they all skip, so the rest of the module's tests can
// run anywhere.
var connected bool

func TestMain(m *testing.M) {
	if _, _, err := Connect(); err == nil {
		connected = true
		if err := Reinitialize(); err != nil {
			panic(fmt.Errorf("Failed to reinitialize storage at startup: %v", err))
		}
	}
	code := m.Run()
	if connected {
		if code == 0 {
			if err := Reinitialize(); err != nil {
				panic(fmt.Errorf("Failed to reinitialize storage at teardown: %v", err))
			}
		}
		Close()
	}
	os.Exit(code)
}

func helperRequireStorage(t *testing.T) {
	if !connected {
		t.Skip("no cache or database available")
	}
}

/*

connection, samples

*/

func TestConnectIds(t *testing.T) {
	helperRequireStorage(t)
	if rdUrl == "" || pgUrl == "" {
		t.Errorf("Connected without cache (%q) or database (%q) URL", rdUrl, pgUrl)
	}
}

func TestSamplePuzzles(t *testing.T) {
	helperRequireStorage(t)
	for id, rows := range samplePuzzles {
		summary, ok := LoadPuzzle(id)
		if !ok {
			t.Errorf("Sample puzzle %q not stored", id)
			continue
		}
		if !reflect.DeepEqual(summary.Rows, rows) {
			t.Errorf("Sample %q rows: got %v, expected %v", id, summary.Rows, rows)
		}
		if _, err := grid.NewFromSummary(summary); err != nil {
			t.Errorf("Sample %q doesn't make a grid: %v", id, err)
		}
	}
}

func TestPuzzleIds(t *testing.T) {
	helperRequireStorage(t)
	ids := PuzzleIds()
	stored := make(map[string]bool, len(ids))
	for _, id := range ids {
		stored[id] = true
	}
	for id := range samplePuzzles {
		if !stored[id] {
			t.Errorf("PuzzleIds misses sample %q (got %v)", id, ids)
		}
	}
}

/*

puzzle save and load

*/

func TestSaveLoadPuzzle(t *testing.T) {
	helperRequireStorage(t)
	summary := grid.Summary{
		Alphabet: "1234",
		Rows:     []string{"12..", "34..", "....", "...."},
	}
	if err := SavePuzzle("test-save-load", summary); err != nil {
		t.Fatalf("Couldn't save puzzle: %v", err)
	}
	if err := SavePuzzle("test-save-load", summary); err == nil {
		t.Errorf("Duplicate save of %q didn't fail", "test-save-load")
	}
	loaded, ok := LoadPuzzle("test-save-load")
	if !ok {
		t.Fatalf("Saved puzzle not found")
	}
	if !reflect.DeepEqual(loaded, summary) {
		t.Errorf("Loaded summary: got %+v, expected %+v", loaded, summary)
	}
}

func TestSavePuzzleValidates(t *testing.T) {
	helperRequireStorage(t)
	bad := grid.Summary{Alphabet: "1234", Rows: []string{"12..", "34.."}}
	if err := SavePuzzle("test-bad", bad); err == nil {
		t.Errorf("Save of malformed summary didn't fail")
	}
	if _, ok := LoadPuzzle("test-bad"); ok {
		t.Errorf("Malformed summary got stored anyway")
	}
}

/*

solution cache

*/

func TestSolutionCache(t *testing.T) {
	helperRequireStorage(t)
	if _, ok := LoadSolution("test-solution"); ok {
		t.Fatalf("Found a solution that was never saved")
	}
	rows := []string{"1234", "3412", "2143", "4321"}
	SaveSolution("test-solution", rows)
	loaded, ok := LoadSolution("test-solution")
	if !ok {
		t.Fatalf("Saved solution not found")
	}
	if !reflect.DeepEqual(loaded, rows) {
		t.Errorf("Loaded solution: got %v, expected %v", loaded, rows)
	}
}

/*

sessions

*/

func TestSessionLifecycle(t *testing.T) {
	helperRequireStorage(t)
	session := LoadSession("test session 1")
	if session.PID != DefaultPuzzleId {
		t.Errorf("New session puzzle: got %q, expected %q", session.PID, DefaultPuzzleId)
	}
	if session.Step != 1 {
		t.Errorf("New session step: got %d, expected 1", session.Step)
	}
	start := session.Grid.Summary()

	// make a choice and persist it
	if err := session.Grid.Assign(grid.Choice{Row: 0, Col: 1, Symbol: "6"}); err != nil {
		t.Fatalf("Couldn't assign to session grid: %v", err)
	}
	session.AddStep()
	if session.Step != 2 {
		t.Errorf("Step after AddStep: got %d, expected 2", session.Step)
	}

	// a reload sees the persisted step
	reloaded := LoadSession("test session 1")
	if reloaded.Step != 2 {
		t.Errorf("Reloaded step: got %d, expected 2", reloaded.Step)
	}
	if !reflect.DeepEqual(reloaded.Grid.Summary(), session.Grid.Summary()) {
		t.Errorf("Reloaded grid differs from saved grid")
	}

	// undo restores the starting grid
	reloaded.RemoveStep()
	if reloaded.Step != 1 {
		t.Errorf("Step after RemoveStep: got %d, expected 1", reloaded.Step)
	}
	if !reflect.DeepEqual(reloaded.Grid.Summary(), start) {
		t.Errorf("Grid after RemoveStep differs from start")
	}
}

func TestSessionRemoveAllSteps(t *testing.T) {
	helperRequireStorage(t)
	session := LoadSession("test session 2")
	start := session.Grid.Summary()
	for _, choice := range []grid.Choice{
		{Row: 0, Col: 1, Symbol: "6"},
		{Row: 2, Col: 0, Symbol: "1"},
	} {
		if err := session.Grid.Assign(choice); err != nil {
			t.Fatalf("Couldn't assign %+v: %v", choice, err)
		}
		session.AddStep()
	}
	if session.Step != 3 {
		t.Fatalf("Step after two adds: got %d, expected 3", session.Step)
	}
	session.RemoveAllSteps()
	if session.Step != 1 {
		t.Errorf("Step after RemoveAllSteps: got %d, expected 1", session.Step)
	}
	if !reflect.DeepEqual(session.Grid.Summary(), start) {
		t.Errorf("Grid after RemoveAllSteps differs from start")
	}
}

func TestSessionStartPuzzle(t *testing.T) {
	helperRequireStorage(t)
	session := LoadSession("test session 3")
	session.StartPuzzle("small-1")
	if session.PID != "small-1" {
		t.Errorf("Switched puzzle: got %q, expected %q", session.PID, "small-1")
	}
	if session.Grid.Geometry().SideLength() != 4 {
		t.Errorf("Switched grid side: got %d, expected 4", session.Grid.Geometry().SideLength())
	}

	// unknown ids fall back to the default puzzle
	session.StartPuzzle("no such puzzle")
	if session.PID != DefaultPuzzleId {
		t.Errorf("Unknown puzzle fallback: got %q, expected %q", session.PID, DefaultPuzzleId)
	}
}
