package grid

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitRows(t *testing.T) {
	text := "\n  1.3.\n.3.1\r\n\n3.1.\n.1.3  \n\n"
	rows := SplitRows(text)
	if !reflect.DeepEqual(rows, []string{"1.3.", ".3.1", "3.1.", ".1.3"}) {
		t.Errorf("SplitRows = %v", rows)
	}
	if rows := SplitRows(""); rows != nil {
		t.Errorf("SplitRows of empty text = %v", rows)
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	g := helperGrid(t, StandardAlphabet, scatteredRows9)
	s := g.Summary()
	if s.Alphabet != StandardAlphabet || !reflect.DeepEqual(s.Rows, scatteredRows9) {
		t.Errorf("Summary = %+v", s)
	}
	g2, err := NewFromSummary(s)
	if err != nil {
		t.Fatalf("NewFromSummary: %v", err)
	}
	if !reflect.DeepEqual(g2.Rows(), g.Rows()) {
		t.Errorf("rebuilt rows = %v", g2.Rows())
	}
}

func TestNewFromSummaryEmpty(t *testing.T) {
	g, err := NewFromSummary(Summary{Alphabet: SmallAlphabet})
	if err != nil {
		t.Fatalf("NewFromSummary: %v", err)
	}
	if g.IsComplete() {
		t.Errorf("summary with no rows built a complete grid")
	}
}

func TestNewFromSummaryErrors(t *testing.T) {
	if _, err := NewFromSummary(Summary{Alphabet: "123"}); err == nil {
		t.Errorf("bad alphabet accepted")
	}
	if _, err := NewFromSummary(Summary{Alphabet: SmallAlphabet, Rows: []string{"12"}}); err == nil {
		t.Errorf("bad rows accepted")
	}
}

func TestGridString(t *testing.T) {
	g := helperGrid(t, SmallAlphabet, []string{"1.3.", ".3.1", "3.1.", ".1.3"})
	s := g.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	// 4 cell rows plus 3 rules
	if len(lines) != 7 {
		t.Fatalf("pretty print has %d lines:\n%s", len(lines), s)
	}
	if lines[0] != "+-----+-----+" {
		t.Errorf("rule line = %q", lines[0])
	}
	if lines[1] != "| 1  .| 3  .|" {
		t.Errorf("first cell line = %q", lines[1])
	}
}
