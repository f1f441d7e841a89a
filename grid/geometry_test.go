package grid

import (
	"reflect"
	"testing"
)

func TestNewGeometry(t *testing.T) {
	geo, err := NewGeometry(StandardAlphabet)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if geo.SideLength() != 9 || geo.TileLength() != 3 {
		t.Errorf("9-symbol geometry: side %d, tile %d", geo.SideLength(), geo.TileLength())
	}
	if geo.Alphabet() != StandardAlphabet {
		t.Errorf("alphabet = %q", geo.Alphabet())
	}
	geo, err = NewGeometry(HexAlphabet)
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	if geo.SideLength() != 16 || geo.TileLength() != 4 {
		t.Errorf("16-symbol geometry: side %d, tile %d", geo.SideLength(), geo.TileLength())
	}
}

func TestNewGeometryErrors(t *testing.T) {
	cases := []struct {
		alphabet string
		cond     ErrorCondition
	}{
		{"", TooSmallCondition},
		{"123", TooSmallCondition},
		{"12345", NonSquareCondition},
		{"1231", DuplicateSymbolsCondition},
		{"12.4", DuplicateSymbolsCondition}, // placeholder can't be a symbol
	}
	for _, tc := range cases {
		_, e := NewGeometry(tc.alphabet)
		if e == nil {
			t.Errorf("NewGeometry(%q) succeeded", tc.alphabet)
			continue
		}
		if err, ok := e.(Error); !ok || err.Condition != tc.cond {
			t.Errorf("NewGeometry(%q) error = %v", tc.alphabet, e)
		}
	}
}

func TestSymbolValueMapping(t *testing.T) {
	geo := helperGeometry(t, StandardAlphabet)
	for i := 0; i < 9; i++ {
		v, ok := geo.valueOf(StandardAlphabet[i])
		if !ok || v != i+1 {
			t.Errorf("valueOf(%c) = %d, %v", StandardAlphabet[i], v, ok)
		}
		if geo.symbolOf(i+1) != StandardAlphabet[i] {
			t.Errorf("symbolOf(%d) = %c", i+1, geo.symbolOf(i+1))
		}
	}
	if v, ok := geo.valueOf(Unknown); !ok || v != 0 {
		t.Errorf("valueOf('.') = %d, %v", v, ok)
	}
	if geo.symbolOf(0) != Unknown {
		t.Errorf("symbolOf(0) = %c", geo.symbolOf(0))
	}
	if _, ok := geo.valueOf('x'); ok {
		t.Errorf("valueOf('x') recognized a non-symbol")
	}
}

func TestGroupDerivation(t *testing.T) {
	geo := helperGeometry(t, SmallAlphabet)
	if len(geo.groups) != 12 {
		t.Fatalf("4x4 geometry has %d groups", len(geo.groups))
	}
	// tiles come first, then rows, then columns
	expected := []struct {
		id      GroupID
		indices []int
	}{
		{GroupID{GtypeTile, 1}, []int{0, 1, 4, 5}},
		{GroupID{GtypeTile, 2}, []int{2, 3, 6, 7}},
		{GroupID{GtypeTile, 3}, []int{8, 9, 12, 13}},
		{GroupID{GtypeTile, 4}, []int{10, 11, 14, 15}},
		{GroupID{GtypeRow, 1}, []int{0, 1, 2, 3}},
		{GroupID{GtypeCol, 1}, []int{0, 4, 8, 12}},
	}
	byID := make(map[GroupID][]int, len(geo.groups))
	for _, gd := range geo.groups {
		byID[gd.id] = gd.indices
	}
	for _, e := range expected {
		if got := byID[e.id]; !reflect.DeepEqual(got, e.indices) {
			t.Errorf("%v indices = %v, expected %v", e.id, got, e.indices)
		}
	}
	if geo.groups[0].id.Gtype != GtypeTile ||
		geo.groups[4].id.Gtype != GtypeRow ||
		geo.groups[8].id.Gtype != GtypeCol {
		t.Errorf("group order wrong: %v, %v, %v",
			geo.groups[0].id, geo.groups[4].id, geo.groups[8].id)
	}
}

func TestGroupMembership(t *testing.T) {
	// every cell of a 9x9 belongs to exactly three groups
	geo := helperGeometry(t, StandardAlphabet)
	count := make([]int, 81)
	for _, gd := range geo.groups {
		if len(gd.indices) != 9 {
			t.Errorf("%v has %d cells", gd.id, len(gd.indices))
		}
		for _, i := range gd.indices {
			count[i]++
		}
	}
	for i, n := range count {
		if n != 3 {
			t.Errorf("cell %d is in %d groups", i, n)
		}
	}
}

func TestFindIntSquareRoot(t *testing.T) {
	for _, tc := range []struct {
		val, root int
		ok        bool
	}{
		{1, 1, true}, {4, 2, true}, {9, 3, true}, {16, 4, true},
		{2, 1, false}, {8, 2, false}, {15, 3, false},
	} {
		root, ok := findIntSquareRoot(tc.val)
		if root != tc.root || ok != tc.ok {
			t.Errorf("findIntSquareRoot(%d) = %d, %v", tc.val, root, ok)
		}
	}
}

func TestGroupIDString(t *testing.T) {
	if s := (GroupID{GtypeRow, 3}).String(); s != "row 3" {
		t.Errorf("GroupID string = %q", s)
	}
}
