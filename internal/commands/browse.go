package commands

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ygelfand/kogrid/internal/grid"
)

const browseHelp = "commands: n next, p prev, g N go to page, s COL sort, h COL hide/show, q quit"

// Browse runs a line-oriented session over vm. The grid is rendered through
// r whenever it changes; commands are read from in one per line until q or
// end of input.
func Browse(vm *grid.ViewModel, r grid.Renderer, in io.Reader, out io.Writer) error {
	b, err := grid.Bind(vm, r, out)
	if err != nil {
		return err
	}
	defer b.Close()

	fmt.Fprintln(out, browseHelp)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		verb, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch verb {
		case "":
			continue
		case "q", "quit", "exit":
			return b.Err()
		case "n", "next":
			vm.NextPage()
		case "p", "prev":
			vm.PrevPage()
		case "g", "go":
			n, err := strconv.Atoi(arg)
			if err != nil || !vm.GoToPage(n) {
				fmt.Fprintf(out, "page %q is not in the pager window (%d-%d)\n", arg, vm.StartPage(), vm.EndPage())
			}
		case "s", "sort":
			if err := ApplySort(vm, arg); err != nil {
				fmt.Fprintln(out, err)
			}
		case "h", "hide":
			if err := toggleColumn(vm, arg); err != nil {
				fmt.Fprintln(out, err)
			}
		default:
			fmt.Fprintln(out, browseHelp)
		}

		if err := b.Err(); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return b.Err()
}

func toggleColumn(vm *grid.ViewModel, name string) error {
	col, err := ResolveColumn(vm, name)
	if err != nil {
		return err
	}
	for i, c := range vm.Columns() {
		if c.HeaderText == col.HeaderText {
			vm.SetColumnVisible(i, !c.Visible)
			return nil
		}
	}
	return nil
}
