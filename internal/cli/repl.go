package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/empdirectory/internal/models"
)

// execIface is the command surface the REPL dispatches to. *App satisfies it;
// tests provide a stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Distinct(ctx context.Context, args []string) error
}

const helpText = "Available commands: (l)ist, (f)ilter [office] [department] [name], show <id>, offices, departments, distinct <field>, exit"

// runREPL reads commands line by line and dispatches them until EOF, exit/quit
// or ctx cancellation. Command errors are already reported by the handlers and
// do not stop the loop. Handlers that prompt must read from the same reader.
func runREPL(ctx context.Context, a execIface, w io.Writer, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, "dir> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if quit, _ := dispatch(ctx, a, w, parts); quit {
			return
		}
	}
}

// dispatch runs one command. quit reports whether the shell should stop.
func dispatch(ctx context.Context, a execIface, w io.Writer, parts []string) (quit bool, err error) {
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		fmt.Fprintln(w, helpText)
	case "l", "list":
		err = a.List(ctx, args)
	case "f", "filter":
		err = a.Filter(ctx, args)
	case "show":
		err = a.Show(ctx, args)
	case "offices":
		err = a.Distinct(ctx, []string{models.FieldOffice})
	case "departments":
		err = a.Distinct(ctx, []string{models.FieldDepartment})
	case "distinct":
		err = a.Distinct(ctx, args)
	case "exit", "quit":
		fmt.Fprintln(w, "Bye!")
		return true, nil
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
		err = fmt.Errorf("unknown command %q", cmd)
	}
	return false, err
}
