// Command-line client for the sudoku grid model.  It can solve a
// grid read from a file or stdin in one shot, or run a small
// interactive solving session.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tilegrid/sudoku/grid"
)

var alphabet string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sudoku-cli",
		Short:         "Solve and play sudoku grids",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&alphabet, "alphabet", grid.StandardAlphabet,
		"grid symbols, one per value, in order")
	root.AddCommand(newSolveCommand(), newPlayCommand())
	return root
}

func newSolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a grid read from a file (or stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readGridText(args)
			if err != nil {
				return err
			}
			g, err := grid.NewFromSummary(grid.Summary{
				Alphabet: alphabet,
				Rows:     grid.SplitRows(text),
			})
			if err != nil {
				return err
			}
			if !g.Solve() {
				return fmt.Errorf("no solution exists")
			}
			fmt.Fprint(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
}

// readGridText reads the grid's text form from the named file,
// or from stdin when no file is given.
func readGridText(args []string) (string, error) {
	if len(args) == 0 {
		bytes, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("couldn't read stdin: %v", err)
		}
		return string(bytes), nil
	}
	bytes, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("couldn't read %q: %v", args[0], err)
	}
	return string(bytes), nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sudoku-cli: %v\n", err)
		os.Exit(1)
	}
}
