package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/logging"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"golang.org/x/sync/errgroup"
)

// Directory is the facade surface the shell uses.
type Directory interface {
	ListAll(ctx context.Context) ([]models.Employee, error)
	Filter(ctx context.Context, office, department, query string) ([]models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	ListDistinct(ctx context.Context, field string) ([]string, error)
}

type App struct {
	dir    Directory
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	// last office and department chosen in filter, offered as prompt defaults
	office     string
	department string
}

func NewApp(dir Directory, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		dir:    dir,
		reader: bufio.NewReader(in),
		out:    out,
		log:    logging.OrDiscard(log).With("component", "cli"),

		office:     models.AnyValue,
		department: models.AnyValue,
	}
}

// Run starts the interactive shell and blocks until the user exits, input
// ends, or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Employee directory (type 'help' for commands)")
	runREPL(ctx, a, a.out, a.reader)
}

// Exec runs a single command given as separate arguments.
func (a *App) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}
	_, err := dispatch(ctx, a, a.out, args)
	return err
}

// List prints every employee.
func (a *App) List(ctx context.Context, _ []string) error {
	list, err := a.dir.ListAll(ctx)
	if err != nil {
		return a.fail(ctx, "list", err)
	}
	return printEmployees(a.out, list)
}

// Filter prints employees matching office, department and first name.
// Missing arguments are asked for, showing the known picker values. The
// office and department are remembered and offered as defaults next time.
func (a *App) Filter(ctx context.Context, args []string) error {
	var office, department, name string

	if len(args) < 3 {
		offices, departments, err := a.pickers(ctx)
		if err != nil {
			return a.fail(ctx, "filter", err)
		}
		if office, err = a.pick(args, 0, "Office", offices, a.office); err != nil {
			return err
		}
		if department, err = a.pick(args, 1, "Department", departments, a.department); err != nil {
			return err
		}
		if name, err = a.pick(args, 2, "First name contains", nil, models.AnyValue); err != nil {
			return err
		}
	} else {
		office, department, name = args[0], args[1], args[2]
	}
	a.office, a.department = office, department

	list, err := a.dir.Filter(ctx, office, department, name)
	if err != nil {
		return a.fail(ctx, "filter", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No employees found.")
		return nil
	}
	return printEmployees(a.out, list)
}

// Show prints a single employee by id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return fmt.Errorf("show: expected one id argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id %q\n", args[0])
		return fmt.Errorf("show: %w", err)
	}

	e, err := a.dir.GetByID(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintf(a.out, "Employee %d not found.\n", id)
		return err
	}
	if err != nil {
		return a.fail(ctx, "show", err)
	}
	return printEmployee(a.out, e)
}

// Distinct prints picker values for a field.
func (a *App) Distinct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: distinct <field>")
		return fmt.Errorf("distinct: expected one field argument")
	}
	values, err := a.dir.ListDistinct(ctx, args[0])
	if errors.Is(err, common.ErrInvalidField) {
		fmt.Fprintf(a.out, "Unknown field %q; use one of %v\n", args[0], models.StringFields)
		return err
	}
	if err != nil {
		return a.fail(ctx, "distinct", err)
	}
	return printValues(a.out, values)
}

// pickers loads office and department values concurrently.
func (a *App) pickers(ctx context.Context) (offices, departments []string, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		offices, err = a.dir.ListDistinct(gctx, models.FieldOffice)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = a.dir.ListDistinct(gctx, models.FieldDepartment)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return offices, departments, nil
}

// pick returns args[i] when present, otherwise prompts for it. An empty
// answer means def.
func (a *App) pick(args []string, i int, prompt string, options []string, def string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	if len(options) > 0 {
		prompt = fmt.Sprintf("%s %v", prompt, options)
	}
	if def != models.AnyValue {
		prompt = fmt.Sprintf("%s (Enter for %s)", prompt, def)
	}
	v, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Error(ctx, "command failed", "command", op, "error", err)
	fmt.Fprintf(a.out, "error: %v\n", err)
	return fmt.Errorf("%s: %w", op, err)
}
