// Package employees builds and runs the read queries the directory UI needs:
// fuzzy multi-field filtering, distinct values for filter pickers, point
// lookup by id and a full listing.
package employees

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/empdirectory/internal/common"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"github.com/dmitrijs2005/empdirectory/internal/queryir"
)

// Collection is the read side of the store.
type Collection interface {
	Query(ctx context.Context, q queryir.Query) ([]queryir.Document, error)
}

// Engine runs employee queries against a borrowed Collection.
type Engine struct {
	c Collection
}

func NewEngine(c Collection) *Engine {
	return &Engine{c: c}
}

// Filter returns employees whose office, department and first name contain
// the given substrings, sorted by last name. models.AnyValue (or "") leaves a
// field unconstrained.
func (e *Engine) Filter(ctx context.Context, office, department, firstName string) ([]models.Employee, error) {
	q := queryir.Query{
		Where: queryir.AllOf(
			contains(models.FieldOffice, office),
			contains(models.FieldDepartment, department),
			contains(models.FieldFirstName, firstName),
		),
		OrderBy: []queryir.Ordering{{Field: models.FieldLastName}},
	}

	rows, err := e.c.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("filter employees: %w", err)
	}
	return decode(rows)
}

func contains(field, value string) queryir.Contains {
	if value == models.AnyValue {
		value = ""
	}
	return queryir.Contains{Field: field, Substring: value}
}

// DistinctValues returns models.AnyValue followed by the sorted distinct
// values of field. Only text fields are accepted.
func (e *Engine) DistinctValues(ctx context.Context, field string) ([]string, error) {
	if !models.IsStringField(field) {
		return nil, fmt.Errorf("%w: %q has no distinct values", common.ErrInvalidField, field)
	}

	rows, err := e.c.Query(ctx, queryir.Query{
		Fields:   []string{field},
		Distinct: true,
		OrderBy:  []queryir.Ordering{{Field: field}},
	})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", field, err)
	}

	values := make([]string, 0, len(rows)+1)
	values = append(values, models.AnyValue)
	for _, row := range rows {
		v, ok := row[field].(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q is %T", common.ErrCorruptDocument, field, row[field])
		}
		values = append(values, v)
	}
	return values, nil
}

// GetByID returns the employee with the given id, or an error matching
// common.ErrNotFound.
func (e *Engine) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	rows, err := e.c.Query(ctx, queryir.Query{
		Where: queryir.Equals{Field: models.FieldID, Value: id},
	})
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("employee %d: %w", id, common.ErrNotFound)
	}

	emp, err := models.FromDocument(rows[0])
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetAll returns every employee in storage order.
func (e *Engine) GetAll(ctx context.Context) ([]models.Employee, error) {
	rows, err := e.c.Query(ctx, queryir.Query{Distinct: true})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return decode(rows)
}

func decode(rows []queryir.Document) ([]models.Employee, error) {
	out := make([]models.Employee, 0, len(rows))
	for _, row := range rows {
		emp, err := models.FromDocument(row)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, nil
}
