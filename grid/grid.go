// Package grid provides a model for Sudoku grids and a
// constraint-propagation solver over them.
//
// A grid is a square matrix of cells, each of which is either
// empty or holds one symbol from the grid's alphabet.  For every
// empty cell the model maintains the set of candidate values the
// cell could still take without conflicting with the rest of the
// grid.  The cells are constrained through groups (the rows, the
// columns, and the non-overlapping square tiles), each of which
// may contain any concrete value at most once.
//
// Solving works by running two propagation tactics (naked single
// and hidden single) to a fixed point and then, when propagation
// alone stalls, guessing a value for a cell with the fewest
// remaining candidates and backtracking on contradiction.
//
// Cells announce every mutation through the package's
// notification mechanism, so a view or any other observer can
// track the model without the model depending on it.
package grid

import (
	"strings"
)

/*

Grids

*/

// A Grid owns its cells (in row-major order) and the derived
// group views over them.  The groups are index lists into the
// cell slice; they are shared, read-only structure from the
// geometry.
type Grid struct {
	geo    *Geometry
	cells  []*Cell
	groups []groupDescriptor
}

// New builds an empty grid with the given geometry: every cell
// unset, every candidate open.
func New(geo *Geometry) *Grid {
	slen := geo.sidelen
	cells := make([]*Cell, slen*slen)
	for i := range cells {
		cells[i] = newCell(i/slen, i%slen, slen)
	}
	return &Grid{geo: geo, cells: cells, groups: geo.groups}
}

// Geometry returns the grid's geometry.
func (g *Grid) Geometry() *Geometry { return g.geo }

// Cell returns the cell at the given 0-based row and column.
func (g *Grid) Cell(row, col int) *Cell {
	return g.cells[row*g.geo.sidelen+col]
}

// AddListener registers an observer with every cell of the grid.
func (g *Grid) AddListener(n Listener) {
	for _, c := range g.cells {
		c.AddListener(n)
	}
}

/*

Loading and serializing values

*/

// SetTiles sets every cell's value from a slice of row strings,
// one symbol per cell, the Unknown placeholder for empty.  The
// input is validated in full before any cell is touched, so a
// failed call leaves the grid exactly as it was.  The returned
// error (an Error value) describes the first structural problem
// found: wrong row count, wrong row length, or a symbol outside
// the alphabet.
func (g *Grid) SetTiles(rows []string) error {
	slen := g.geo.sidelen
	if len(rows) != slen {
		return attributeError(RowsAttribute, len(rows), WrongRowCountCondition, slen)
	}
	values := make([]int, len(g.cells))
	for ri, row := range rows {
		if len(row) != slen {
			return attributeError(RowAttribute, ri+1, WrongRowLengthCondition, slen)
		}
		for ci := 0; ci < slen; ci++ {
			v, ok := g.geo.valueOf(row[ci])
			if !ok {
				return attributeError(SymbolAttribute, string(row[ci]), UnknownSymbolCondition, 0)
			}
			values[ri*slen+ci] = v
		}
	}
	for i, v := range values {
		g.cells[i].SetValue(v)
	}
	return nil
}

// Rows serializes the current cell values row by row, one symbol
// per cell, unset cells as the Unknown placeholder.  The result
// round-trips through SetTiles.
func (g *Grid) Rows() []string {
	slen := g.geo.sidelen
	rows := make([]string, slen)
	var sb strings.Builder
	for ri := 0; ri < slen; ri++ {
		sb.Reset()
		for ci := 0; ci < slen; ci++ {
			sb.WriteByte(g.geo.symbolOf(g.cells[ri*slen+ci].value))
		}
		rows[ri] = sb.String()
	}
	return rows
}

// A Choice assigns a symbol to a cell, addressed by 0-based row
// and column.  It is the unit of interactive play and of the
// wire API.
type Choice struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Symbol string `json:"symbol"`
}

// Assign applies a single choice, validating it first.  An empty
// symbol (or the placeholder) clears the cell.
func (g *Grid) Assign(ch Choice) error {
	slen := g.geo.sidelen
	if ch.Row < 0 || ch.Row >= slen {
		return attributeError(RowAttribute, ch.Row, OutOfRangeCondition, slen-1)
	}
	if ch.Col < 0 || ch.Col >= slen {
		return attributeError(ColAttribute, ch.Col, OutOfRangeCondition, slen-1)
	}
	sym := byte(Unknown)
	if ch.Symbol != "" {
		sym = ch.Symbol[0]
	}
	v, ok := g.geo.valueOf(sym)
	if !ok {
		return attributeError(SymbolAttribute, ch.Symbol, UnknownSymbolCondition, 0)
	}
	g.Cell(ch.Row, ch.Col).SetValue(v)
	return nil
}

/*

Consistency and completeness

*/

// IsComplete reports whether no cell is unset.  It says nothing
// about consistency; callers must check both.
func (g *Grid) IsComplete() bool {
	for _, c := range g.cells {
		if c.value == 0 {
			return false
		}
	}
	return true
}

// IsConsistent reports whether no group contains a concrete
// value twice.  An unset cell with an empty candidate set also
// counts as inconsistent: no duplicate exists yet, but the cell
// can never be filled, so the branch is already dead and the
// solver should not waste search on it.
func (g *Grid) IsConsistent() bool {
	for _, c := range g.cells {
		if c.value == 0 && len(c.candidates) == 0 {
			return false
		}
	}
	for gi := range g.groups {
		seen := make([]bool, g.geo.sidelen+1)
		for _, i := range g.groups[gi].indices {
			if v := g.cells[i].value; v != 0 {
				if seen[v] {
					return false
				}
				seen[v] = true
			}
		}
	}
	return true
}

/*

Propagation tactics

Each tactic makes one pass over all the groups and reports
whether it made any progress.  Neither loops to a fixed point on
its own; Propagate owns the iteration.

*/

// NakedSingle eliminates, from every unset cell, the values
// already placed elsewhere in one of the cell's groups.  A cell
// whose candidates collapse to one value sets itself along the
// way.  Reports whether any candidate anywhere was eliminated.
func (g *Grid) NakedSingle() bool {
	progress := false
	for gi := range g.groups {
		var used intset
		for _, i := range g.groups[gi].indices {
			if v := g.cells[i].value; v != 0 {
				used.insert(v)
			}
		}
		if len(used) == 0 {
			continue
		}
		for _, i := range g.groups[gi].indices {
			if c := g.cells[i]; c.value == 0 && c.RemoveCandidates(used) {
				progress = true
			}
		}
	}
	return progress
}

// HiddenSingle looks, in every group, for a value the group
// still needs that only one unset cell can take, and sets that
// cell directly.  Reports whether any cell was set this way.
func (g *Grid) HiddenSingle() bool {
	progress := false
	slen := g.geo.sidelen
	for gi := range g.groups {
		used := make([]bool, slen+1)
		for _, i := range g.groups[gi].indices {
			used[g.cells[i].value] = true
		}
		for v := 1; v <= slen; v++ {
			if used[v] {
				continue
			}
			count, last := 0, -1
			for _, i := range g.groups[gi].indices {
				if c := g.cells[i]; c.value == 0 && c.CouldBe(v) {
					count++
					last = i
				}
			}
			if count == 1 {
				g.cells[last].SetValue(v)
				progress = true
			}
		}
	}
	return progress
}

// MinChoiceTile scans the cells in row-major order and returns
// the first unset cell with the fewest candidates.  The scan
// order is the tie break, which keeps the solver deterministic.
// Calling it on a complete grid is a caller bug.
func (g *Grid) MinChoiceTile() *Cell {
	var best *Cell
	for _, c := range g.cells {
		if c.value != 0 {
			continue
		}
		if best == nil || len(c.candidates) < len(best.candidates) {
			best = c
		}
	}
	if best == nil {
		// internal caller error - check IsComplete first
		panic("MinChoiceTile called on a complete grid")
	}
	return best
}
