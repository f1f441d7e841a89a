package grid

import (
	"reflect"
	"testing"
)

/*

Test values

*/

var (
	// solvable by propagation plus at most a couple of guesses;
	// the published solution is unique
	oneStarRows = []string{
		"4....35.2",
		"..95.634.",
		"........8",
		"....3486.",
		"..46.52..",
		".2879....",
		"9........",
		".873.29..",
		"5.29....6",
	}
	oneStarSolvedRows = []string{
		"461873592",
		"879526341",
		"253419678",
		"715234869",
		"394685217",
		"628791435",
		"946158723",
		"187362954",
		"532947186",
	}
	// propagation alone cannot touch this one: every empty cell
	// keeps two candidates until the solver guesses
	guessRows4 = []string{
		"1.3.",
		".3.1",
		"3.1.",
		".1.3",
	}
)

/*

propagation

*/

func TestPropagateTerminates(t *testing.T) {
	// no progress possible: must return, not spin
	g := helperGrid(t, StandardAlphabet, emptyRows9)
	g.Propagate()
	if g.IsComplete() {
		t.Errorf("propagation filled an empty grid")
	}
}

func TestPropagateSolvesEasy(t *testing.T) {
	// one missing value per group everywhere
	g := helperGrid(t, StandardAlphabet, []string{
		".61873592",
		"8.9526341",
		"25.419678",
		"715.34869",
		"3946.5217",
		"62879.435",
		"946158.23",
		"1873629.4",
		"53294718.",
	})
	g.Propagate()
	if !g.IsComplete() {
		t.Fatalf("propagation didn't finish a trivial grid:\n%v", g)
	}
	if got := g.Rows(); !reflect.DeepEqual(got, oneStarSolvedRows) {
		t.Errorf("propagated solution = %v", got)
	}
}

func TestPropagateStallsOnGuessPuzzle(t *testing.T) {
	g := helperGrid(t, SmallAlphabet, guessRows4)
	g.Propagate()
	if g.IsComplete() {
		t.Errorf("propagation completed a puzzle that needs a guess")
	}
	// every empty cell should be down to exactly two candidates
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			cell := g.Cell(r, c)
			if cell.Value() == 0 && len(cell.Candidates()) != 2 {
				t.Errorf("cell (%d, %d) has candidates %v", r, c, cell.Candidates())
			}
		}
	}
}

/*

the full search

*/

func TestSolveComplete(t *testing.T) {
	g := helperGrid(t, StandardAlphabet, completeRows9)
	if !g.Solve() {
		t.Fatalf("complete valid grid reported unsolvable")
	}
	if got := g.Rows(); !reflect.DeepEqual(got, completeRows9) {
		t.Errorf("solving a solved grid changed it: %v", got)
	}
}

func TestSolveCompleteInconsistent(t *testing.T) {
	// a full grid with conflicts is not a solution
	g := helperGrid(t, SmallAlphabet, []string{"1234", "1234", "1234", "1234"})
	if g.Solve() {
		t.Errorf("conflicting full grid reported solved")
	}
	if !g.IsComplete() {
		t.Errorf("solving emptied a full grid")
	}
}

func TestSolveInconsistent(t *testing.T) {
	g := helperGrid(t, SmallAlphabet, []string{"4..4", "....", "....", "...."})
	rec := &recorder{}
	g.AddListener(rec)
	if g.Solve() {
		t.Fatalf("inconsistent grid reported solved")
	}
	for _, e := range rec.events {
		if e.Kind == ValueGuessed {
			t.Fatalf("solver guessed on a dead grid: %+v", e)
		}
	}
}

func TestSolveNeedsGuess(t *testing.T) {
	g := helperGrid(t, SmallAlphabet, guessRows4)
	rec := &recorder{}
	g.AddListener(rec)
	if !g.Solve() {
		t.Fatalf("guess puzzle reported unsolvable")
	}
	if !g.IsComplete() || !g.IsConsistent() {
		t.Fatalf("solved grid is complete %v, consistent %v:\n%v",
			g.IsComplete(), g.IsConsistent(), g)
	}
	guessed := 0
	for _, e := range rec.events {
		if e.Kind == ValueGuessed {
			guessed++
		}
	}
	if guessed == 0 {
		t.Errorf("puzzle was solved without any guesses")
	}
	// the givens survived
	for r, row := range guessRows4 {
		for c := 0; c < 4; c++ {
			if row[c] == Unknown {
				continue
			}
			if got := g.Geometry().symbolOf(g.Cell(r, c).Value()); got != row[c] {
				t.Errorf("given at (%d, %d) became %c", r, c, got)
			}
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	// candidates are tried in ascending order and ties break in
	// scan order, so repeated solves agree
	first := helperGrid(t, SmallAlphabet, guessRows4)
	if !first.Solve() {
		t.Fatalf("guess puzzle reported unsolvable")
	}
	for i := 0; i < 3; i++ {
		g := helperGrid(t, SmallAlphabet, guessRows4)
		if !g.Solve() {
			t.Fatalf("guess puzzle reported unsolvable on try %d", i)
		}
		if !reflect.DeepEqual(g.Rows(), first.Rows()) {
			t.Errorf("solve %d found %v, first found %v", i, g.Rows(), first.Rows())
		}
	}
}

func TestSolveOneStar(t *testing.T) {
	g := helperGrid(t, StandardAlphabet, oneStarRows)
	if !g.Solve() {
		t.Fatalf("one-star puzzle reported unsolvable")
	}
	if got := g.Rows(); !reflect.DeepEqual(got, oneStarSolvedRows) {
		t.Errorf("solved rows = %v", got)
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// consistent givens that admit no completion: the top-left
	// tile still needs 1 and 2, but the 1 in the second row
	// blocks both of the tile's free cells from holding a 1
	g := helperGrid(t, SmallAlphabet, []string{
		"34..",
		"..1.",
		"....",
		"....",
	})
	if g.Solve() {
		t.Errorf("unsolvable puzzle reported solved:\n%v", g)
	}
}
