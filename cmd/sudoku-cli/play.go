package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilegrid/sudoku/grid"
)

func newPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play [file]",
		Short: "Interactively solve a grid read from a file (or start empty)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := startingRows(args)
			if err != nil {
				return err
			}
			session, err := newPlaySession(rows)
			if err != nil {
				return err
			}
			return listener(session, os.Stdout, os.Stdin)
		},
	}
}

// startingRows produces the initial rows for a play session: the
// named file's contents, or an empty grid for the alphabet.
func startingRows(args []string) ([]string, error) {
	if len(args) > 0 {
		text, err := readGridText(args)
		if err != nil {
			return nil, err
		}
		return grid.SplitRows(text), nil
	}
	empty := strings.Repeat(string(grid.Unknown), len(alphabet))
	rows := make([]string, len(alphabet))
	for i := range rows {
		rows[i] = empty
	}
	return rows, nil
}

/*

play session

*/

// A playSession holds the grid being played and the trail of
// prior steps, so choices can be undone.
type playSession struct {
	start []string   // the starting rows, for reset
	grid  *grid.Grid // current grid
	steps [][]string // rows of every step, oldest first
}

func newPlaySession(rows []string) (*playSession, error) {
	g, err := grid.NewFromSummary(grid.Summary{Alphabet: alphabet, Rows: rows})
	if err != nil {
		return nil, err
	}
	return &playSession{start: rows, grid: g, steps: [][]string{rows}}, nil
}

func (session *playSession) addStep() {
	session.steps = append(session.steps, session.grid.Rows())
}

func (session *playSession) removeStep() bool {
	if len(session.steps) <= 1 {
		return false
	}
	session.steps = session.steps[:len(session.steps)-1]
	session.restore(session.steps[len(session.steps)-1])
	return true
}

func (session *playSession) reset() {
	session.steps = session.steps[:1]
	session.restore(session.start)
}

func (session *playSession) restore(rows []string) {
	g, err := grid.NewFromSummary(grid.Summary{Alphabet: alphabet, Rows: rows})
	if err != nil {
		// every stored step was a valid grid once
		panic(fmt.Errorf("restoring step: %v", err))
	}
	session.grid = g
}

/*

CLI listener

*/

type request struct {
	inline  string
	command string
	args    []string
}

// listener reads lines and dispatches them to handlers
func listener(session *playSession, out *os.File, in *os.File) error {
	// if we are on a terminal, we do prompting
	prompt := false
	if stat, _ := out.Stat(); (stat.Mode() & os.ModeCharDevice) != 0 {
		prompt = true
	}

	input := make([]byte, 4096)
	for {
		if prompt {
			fmt.Fprintf(out, "sudoku> ")
		}
		n, err := in.Read(input)
		switch err {
		case nil:
			r := &request{inline: strings.Trim(string(input[:n]), " \t\r\n")}
			args := strings.Split(r.inline, " ")
			r.command = strings.ToLower(args[0])
			switch r.command {
			case "":
				continue
			case "quit":
				fallthrough
			case "exit":
				return nil
			}
			for _, arg := range args[1:] {
				if len(arg) > 0 {
					r.args = append(r.args, arg)
				}
			}
			dispatchCommand(session, out, r)
		case io.EOF:
			// ignore any input before the EOF
			if prompt {
				fmt.Fprintf(out, " (EOF)\n")
			}
			return nil
		default:
			if prompt {
				fmt.Fprintf(out, " (read error)\n")
			}
			return err
		}
	}
}

// command dispatching
type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(*playSession, *os.File, *request)
}

// the command dispatch info is sorted for easy usage printing,
// and then hashed for rapid dispatching
var (
	dispatchInfo  []commandInfo
	dispatchTable map[string]*commandInfo
)

func init() {
	dispatchInfo = []commandInfo{
		{"assign", "cell symbol", "assign a symbol to a cell (e.g. assign b3 7)", assignHandler},
		{"back", "", "go back one solution step", backHandler},
		{"help", "", "show this command summary", helpHandler},
		{"propagate", "", "fill every cell the givens force", propagateHandler},
		{"reset", "", "restore the starting grid", resetHandler},
		{"solve", "", "show a solution of the current grid", solveHandler},
		{"state", "", "show the current grid", stateHandler},
	}
	dispatchTable = make(map[string]*commandInfo, len(dispatchInfo))
	for i := range dispatchInfo {
		dispatchTable[dispatchInfo[i].command] = &dispatchInfo[i]
	}
}

func dispatchCommand(session *playSession, w *os.File, r *request) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(w, "Error handling %q: %v\n", r.inline, err)
		}
	}()

	ci := dispatchTable[r.command]
	if ci == nil {
		usageHandler(fmt.Sprintf("%q is not a known command", r.command), w)
	} else {
		ci.handler(session, w, r)
	}
}

/*

request handlers

*/

func usageHandler(msg string, w *os.File) {
	fmt.Fprintf(w, "Error: %s; try 'help' for help\n", msg)
}

func helpHandler(session *playSession, w *os.File, r *request) {
	fmt.Fprintf(w, "Commands are:\n")
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "  %-22s %s\n", ci.command+" "+ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  %-22s %s\n", "quit (or exit)", "leave the session")
}

func stateHandler(session *playSession, w *os.File, r *request) {
	fmt.Fprint(w, session.grid.String())
	if session.grid.IsComplete() {
		if session.grid.IsConsistent() {
			fmt.Fprintf(w, "The grid is solved!\n")
		} else {
			fmt.Fprintf(w, "The grid is full but has conflicts.\n")
		}
	} else if !session.grid.IsConsistent() {
		fmt.Fprintf(w, "The grid has no solution; try going back.\n")
	}
}

func assignHandler(session *playSession, w *os.File, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w)
		return
	}

	// parse the cell name: a row letter followed by a 1-based
	// column number, as in "b3"
	sidelen := session.grid.Geometry().SideLength()
	name := strings.ToLower(r.args[0])
	row := int(name[0] - 'a')
	if row < 0 || row >= sidelen {
		usageHandler(fmt.Sprintf("cell (%s) row is out of range", r.args[0]), w)
		return
	}
	col, err := strconv.Atoi(name[1:])
	if err != nil {
		usageHandler(fmt.Sprintf("cell (%s) column is not a number", r.args[0]), w)
		return
	}
	if col < 1 || col > sidelen {
		usageHandler(fmt.Sprintf("cell (%s) column is out of range", r.args[0]), w)
		return
	}

	choice := grid.Choice{Row: row, Col: col - 1, Symbol: r.args[1]}
	if e := session.grid.Assign(choice); e != nil {
		fmt.Fprintf(w, "Assign failed: %v\n", e)
		return
	}
	session.addStep()
	stateHandler(session, w, r)
}

func backHandler(session *playSession, w *os.File, r *request) {
	if !session.removeStep() {
		fmt.Fprintf(w, "No steps to undo.\n")
		return
	}
	stateHandler(session, w, r)
}

func resetHandler(session *playSession, w *os.File, r *request) {
	session.reset()
	stateHandler(session, w, r)
}

func propagateHandler(session *playSession, w *os.File, r *request) {
	session.grid.Propagate()
	session.addStep()
	stateHandler(session, w, r)
}

func solveHandler(session *playSession, w *os.File, r *request) {
	work, err := grid.NewFromSummary(session.grid.Summary())
	if err != nil {
		panic(err)
	}
	if !work.Solve() {
		fmt.Fprintf(w, "The grid has no solution.\n")
		return
	}
	fmt.Fprint(w, work.String())
}
