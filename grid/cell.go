package grid

/*

Cells

*/

import (
	"fmt"
)

// A Cell is one grid position.  It holds either a definite value
// (1 through the side length) or 0 for unset, plus the set of
// candidate values not yet ruled out.  The two are kept in step:
// a set value means the candidate set is exactly that singleton;
// an unset value means the candidates are some subset of the
// full range.  An unset cell whose candidate set has gone empty
// marks the current puzzle branch as unsatisfiable; that is a
// detectable state, not an error.
//
// Cells are created by their grid and mutated in place; nothing
// else owns them.  Change value only through SetValue, or
// indirectly through RemoveCandidates.
type Cell struct {
	listenable
	row, col   int
	sidelen    int
	value      int
	candidates intset
}

// newCell makes an unset cell with the full candidate range.
func newCell(row, col, sidelen int) *Cell {
	return &Cell{row: row, col: col, sidelen: sidelen, candidates: newIntsetRange(sidelen)}
}

// Row returns the cell's 0-based row index.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's 0-based column index.
func (c *Cell) Col() int { return c.col }

// Value returns the cell's value: 0 when unset.
func (c *Cell) Value() int { return c.value }

// Candidates returns a copy of the cell's candidate set.
func (c *Cell) Candidates() intset { return newIntsetCopy(c.candidates) }

// String implements Stringer for cells.
func (c *Cell) String() string {
	return fmt.Sprintf("cell (%d, %d) = %d", c.row, c.col, c.value)
}

// SetValue gives the cell the value v, collapsing the candidates
// to the singleton {v}.  Setting 0 clears the cell and restores
// the full candidate range.  A repeated identical set is allowed
// and has the same end state (though it notifies again).  Any
// other v outside 0..sidelen is a caller bug.
func (c *Cell) SetValue(v int) {
	c.set(v, ValueChanged)
}

// set is SetValue with a caller-chosen event kind, so the solver
// can mark its guesses.
func (c *Cell) set(v int, kind EventKind) {
	if v < 0 || v > c.sidelen {
		panic(fmt.Errorf("SetValue(%d) on %v: value out of range 0..%d", v, c, c.sidelen))
	}
	if v == 0 {
		c.value = 0
		c.candidates = newIntsetRange(c.sidelen)
	} else {
		c.value = v
		c.candidates = intset{v}
	}
	c.notifyAll(CellEvent{c, kind})
}

// CouldBe reports whether v is still a candidate for this cell.
func (c *Cell) CouldBe(v int) bool {
	_, found := c.candidates.find(v)
	return found
}

// RemoveCandidates removes every member of used from the cell's
// candidates.  If nothing was actually removed it reports false
// and nothing else happens.  If exactly one candidate survives,
// the cell sets itself to that value (which notifies on its
// own).  Either way a removal notifies and reports true, even
// when it drove the candidate set empty, which the consistency
// check treats as a failed branch.
func (c *Cell) RemoveCandidates(used intset) bool {
	if !c.candidates.subtract(used) {
		return false
	}
	if len(c.candidates) == 1 {
		c.set(c.candidates[0], ValueChanged)
	}
	c.notifyAll(CellEvent{c, ValueChanged})
	return true
}

/*

Integer sets

An intset is a set of small integers kept as a sorted slice.  We
use them for candidate sets and for the per-group used-value
sets.  The zero value is the empty set.

*/

type intset []int

// newIntsetRange makes the intset {1, ..., max}.
func newIntsetRange(max int) intset {
	out := make(intset, max)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// newIntsetCopy makes a copy of an intset.
func newIntsetCopy(in intset) intset {
	if in == nil {
		return nil
	}
	out := make(intset, len(in))
	copy(out, in)
	return out
}

// find looks for v, returning where it is (or would go) and
// whether it was found there.
func (ps *intset) find(v int) (int, bool) {
	end := len(*ps)
	where := end
	for i := 0; i < end; i++ {
		if (*ps)[i] == v {
			return i, true
		}
		if (*ps)[i] > v {
			where = i
			break
		}
	}
	return where, false
}

// insert adds v, returning whether it was there already.
func (ps *intset) insert(v int) bool {
	end := len(*ps)
	where, found := ps.find(v)
	if found {
		return true
	}
	// lengthen, shift, insert
	*ps = append(*ps, v)
	if where < end {
		copy((*ps)[where+1:], (*ps)[where:])
		(*ps)[where] = v
	}
	return false
}

// remove takes v out, returning whether it was there.
func (ps *intset) remove(v int) bool {
	end := len(*ps)
	for i := 0; i < end; i++ {
		pv := (*ps)[i]
		if pv == v {
			copy((*ps)[i:], (*ps)[i+1:])
			*ps = (*ps)[:end-1]
			return true
		}
		if pv > v {
			return false
		}
	}
	return false
}

// subtract removes every member of xs, returning whether
// anything was removed.  Both sets are sorted, so one merge pass
// does it.
func (ps *intset) subtract(xs intset) bool {
	pend, xend := len(*ps), len(xs)
	pi, newend := 0, 0
	for xi := 0; pi < pend && xi < xend; {
		pv, xv := (*ps)[pi], xs[xi]
		switch {
		case pv == xv:
			pi++
			xi++
		case pv < xv:
			if newend != pi {
				(*ps)[newend] = pv
			}
			newend++
			pi++
		case pv > xv:
			xi++
		}
	}
	if newend == pi {
		// nothing was removed
		return false
	}
	newend += copy((*ps)[newend:], (*ps)[pi:])
	*ps = (*ps)[:newend]
	return true
}
