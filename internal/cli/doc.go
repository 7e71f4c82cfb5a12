// Package cli provides the interactive employee directory shell.
//
// The shell talks only to a Directory (the facade); it never touches storage.
// It can run as a read-eval-print loop (App.Run) or execute a single command
// and exit (App.Exec).
//
// Commands:
//   - list                             : all employees, storage order
//   - filter [office] [dept] [name]    : fuzzy filter ordered by last name;
//     missing arguments are picked interactively ("Any" matches everything);
//     the last office and department are the defaults for the next prompt
//   - show <id>                        : a single employee
//   - offices | departments            : picker values
//   - distinct <field>                 : picker values for any string field
//   - help, exit | quit
package cli
