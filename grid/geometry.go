package grid

/*

Grid geometries

A geometry is the construction-time configuration of a grid: the
alphabet of symbols a cell can hold, the placeholder symbol for
an empty cell, and the derived side and tile lengths.  All the
uniqueness groups (tiles, rows, columns) are computed from the
geometry once and shared by every grid built with it.

*/

import (
	"fmt"
)

// Alphabets for the common grid sizes.  Any alphabet of distinct
// symbols whose length is a perfect square works; these are just
// the ones people actually ask for.
const (
	StandardAlphabet = "123456789"
	SmallAlphabet    = "1234"
	HexAlphabet      = "0123456789ABCDEF"
)

// Unknown is the placeholder symbol for an empty cell in the
// row-strings form of a grid (Sadman Sudoku convention).
const Unknown = '.'

// A GroupID names a row, column, or tile so that observers and
// error messages can refer to it.  Indices are 1-based.
type GroupID struct {
	Gtype string `json:"gtype"`
	Index int    `json:"index"`
}

// String implements Stringer for group IDs.
func (gid GroupID) String() string {
	return fmt.Sprintf("%s %d", gid.Gtype, gid.Index)
}

// Group type constants.
const (
	GtypeRow  = "row"
	GtypeCol  = "column"
	GtypeTile = "tile"
)

// A groupDescriptor identifies one group and enumerates the
// (0-based, row-major) indices of its cells.
type groupDescriptor struct {
	id      GroupID
	indices []int
}

// A Geometry carries the alphabet and the derived shape of a
// grid.  Geometries are immutable once constructed and are
// shared by every grid built from them.
type Geometry struct {
	alphabet string
	sidelen  int
	tilelen  int
	groups   []groupDescriptor
}

// geometry size limits: the smallest perfect-square side is 4,
// and the alphabet is one byte per symbol so 225 is as large as
// the row-strings form can express distinctly.
const (
	minSideLength = 4
	maxSideLength = 225
)

// NewGeometry validates an alphabet and returns the geometry it
// determines: side length is the alphabet size, tile length its
// integer square root.  The alphabet must have distinct symbols,
// must not contain the Unknown placeholder, and its length must
// be a perfect square in the supported range.
func NewGeometry(alphabet string) (*Geometry, error) {
	sidelen := len(alphabet)
	if sidelen < minSideLength {
		return nil, attributeError(SideLengthAttribute, sidelen, TooSmallCondition, minSideLength)
	}
	if sidelen > maxSideLength {
		return nil, attributeError(SideLengthAttribute, sidelen, TooLargeCondition, maxSideLength)
	}
	tilelen, ok := findIntSquareRoot(sidelen)
	if !ok {
		return nil, attributeError(SideLengthAttribute, sidelen, NonSquareCondition, 0)
	}
	seen := make(map[byte]bool, sidelen)
	for i := 0; i < sidelen; i++ {
		sym := alphabet[i]
		if sym == Unknown || seen[sym] {
			return nil, attributeError(AlphabetAttribute, string(sym), DuplicateSymbolsCondition, 0)
		}
		seen[sym] = true
	}
	return &Geometry{
		alphabet: alphabet,
		sidelen:  sidelen,
		tilelen:  tilelen,
		groups:   gridGroups(sidelen, tilelen),
	}, nil
}

// Alphabet returns the geometry's alphabet.
func (geo *Geometry) Alphabet() string { return geo.alphabet }

// SideLength returns the number of cells on a side.
func (geo *Geometry) SideLength() int { return geo.sidelen }

// TileLength returns the side length of one tile.
func (geo *Geometry) TileLength() int { return geo.tilelen }

// valueOf maps a symbol to its internal value (1-based position
// in the alphabet).  The Unknown placeholder maps to 0.  The
// second return tells whether the symbol was recognized.
func (geo *Geometry) valueOf(sym byte) (int, bool) {
	if sym == Unknown {
		return 0, true
	}
	for i := 0; i < geo.sidelen; i++ {
		if geo.alphabet[i] == sym {
			return i + 1, true
		}
	}
	return 0, false
}

// symbolOf maps an internal value back to its symbol; 0 maps to
// the Unknown placeholder.
func (geo *Geometry) symbolOf(v int) byte {
	if v == 0 {
		return Unknown
	}
	return geo.alphabet[v-1]
}

/*

Group derivation

*/

// groupCache memoizes the group tables per side length, since
// they depend only on the shape and one program tends to use one
// or two shapes over and over.
var groupCache = make(map[int][]groupDescriptor)

// gridGroups computes (or fetches) the group descriptors for a
// side length: first the tiles, then the rows, then the columns.
// Columns are a transposed read of the row-major cell order.
func gridGroups(sidelen, tilelen int) []groupDescriptor {
	if gs, ok := groupCache[sidelen]; ok {
		return gs
	}
	gs := make([]groupDescriptor, 0, 3*sidelen)
	for i := 0; i < sidelen; i++ {
		tile := make([]int, sidelen)
		baserow, basecol := tilelen*(i/tilelen), tilelen*(i%tilelen)
		for tr := 0; tr < tilelen; tr++ {
			for tc := 0; tc < tilelen; tc++ {
				tile[tr*tilelen+tc] = sidelen*(baserow+tr) + (basecol + tc)
			}
		}
		gs = append(gs, groupDescriptor{GroupID{GtypeTile, i + 1}, tile})
	}
	for i := 0; i < sidelen; i++ {
		row := make([]int, sidelen)
		for ri := 0; ri < sidelen; ri++ {
			row[ri] = sidelen*i + ri
		}
		gs = append(gs, groupDescriptor{GroupID{GtypeRow, i + 1}, row})
	}
	for i := 0; i < sidelen; i++ {
		col := make([]int, sidelen)
		for ci := 0; ci < sidelen; ci++ {
			col[ci] = sidelen*ci + i
		}
		gs = append(gs, groupDescriptor{GroupID{GtypeCol, i + 1}, col})
	}
	groupCache[sidelen] = gs
	return gs
}

// findIntSquareRoot finds the integer square root of val, if it
// exists.
func findIntSquareRoot(val int) (int, bool) {
	var i int
	for i = 1; i*i <= val; i++ {
		if i*i == val {
			return i, true
		}
	}
	return i - 1, false
}
