package grid

import (
	"strings"
)

/*

Text forms of grids

The external format is one row per line, one symbol per cell,
with '.' for an empty cell.  The side length and tile size come
from the alphabet, never from the text itself.

*/

// A Summary is the serializable snapshot of a grid: enough to
// rebuild it exactly, small enough to ship over a wire or park
// in a cache.
type Summary struct {
	Alphabet string   `json:"alphabet"`
	Rows     []string `json:"rows"`
}

// Summary returns the grid's snapshot.
func (g *Grid) Summary() Summary {
	return Summary{Alphabet: g.geo.alphabet, Rows: g.Rows()}
}

// NewFromSummary rebuilds a grid from a snapshot.  Empty Rows
// means an empty grid.
func NewFromSummary(s Summary) (*Grid, error) {
	geo, err := NewGeometry(s.Alphabet)
	if err != nil {
		return nil, err
	}
	g := New(geo)
	if len(s.Rows) == 0 {
		return g, nil
	}
	if err := g.SetTiles(s.Rows); err != nil {
		return nil, err
	}
	return g, nil
}

// SplitRows turns puzzle text into the row strings SetTiles
// expects: one row per line, surrounding blank lines and
// whitespace ignored.  It does no validation beyond the split;
// SetTiles checks shape and alphabet.
func SplitRows(text string) []string {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	return rows
}

// String gives a pretty-printed view of the grid, with rules
// between the tiles, for terminals and debugging.
func (g *Grid) String() string {
	slen, tlen := g.geo.sidelen, g.geo.tilelen
	var sb strings.Builder
	rule := func() {
		for i := 0; i < slen; i++ {
			if i%tlen == 0 {
				sb.WriteByte('+')
			} else {
				sb.WriteByte('-')
			}
			sb.WriteString("--")
		}
		sb.WriteString("+\n")
	}
	for ri := 0; ri < slen; ri++ {
		if ri%tlen == 0 {
			rule()
		}
		for ci := 0; ci < slen; ci++ {
			if ci%tlen == 0 {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteByte(' ')
			sb.WriteByte(g.geo.symbolOf(g.Cell(ri, ci).value))
		}
		sb.WriteString("|\n")
	}
	rule()
	return sb.String()
}
