package grid

import (
	"fmt"
)

/*

The solver

The control loop alternates constraint propagation with
guess-and-check backtracking, the way a patient human solver
works:

1. Cross off candidates and fill forced cells until a full round
makes no more progress (Propagate).

2. If every cell is filled, the grid holds a solution: done.

3. If some group has a duplicate, or some empty cell has no
candidates left, the branch is dead: report failure so the
caller can restore and try something else.

4. Otherwise pick an empty cell with the fewest candidates, save
the grid's row strings, and try each candidate in ascending
order: set it, recurse, and on failure restore the saved rows
before the next try.  Success propagates straight up, leaving
the solution installed on the grid.

Recursion depth is the number of guesses on the current path,
which is bounded by the number of cells.  The search runs to
completion; anyone wanting cancellation must layer it between
guesses from outside.

*/

// Propagate runs the tactics to a fixed point: it keeps going as
// long as a naked-single pass eliminates something, and runs a
// hidden-single pass each round to pick up singles the latest
// eliminations exposed.  Termination is guaranteed because every
// productive pass strictly shrinks the total candidate count.
func (g *Grid) Propagate() {
	for {
		progress := g.NakedSingle()
		g.HiddenSingle()
		if !progress {
			return
		}
	}
}

// Solve searches for a complete, consistent assignment.  On
// success it reports true with the solution left installed on
// the grid; on failure it reports false with the grid restored
// to its pre-call values (though not necessarily its pre-call
// candidate narrowing).  A grid that arrives already filled
// succeeds only if it is also consistent, so a full grid with
// conflicts reports unsolvable.
func (g *Grid) Solve() bool {
	g.Propagate()
	if g.IsComplete() {
		return g.IsConsistent()
	}
	if !g.IsConsistent() {
		return false
	}
	saved := g.Rows()
	cell := g.MinChoiceTile()
	for _, v := range cell.Candidates() {
		cell.set(v, ValueGuessed)
		if g.Solve() {
			return true
		}
		if err := g.SetTiles(saved); err != nil {
			// rows came from Rows, so this cannot happen
			panic(fmt.Errorf("restoring saved grid: %v", err))
		}
	}
	return false
}
