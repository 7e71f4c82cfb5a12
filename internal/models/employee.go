// Package models defines the employee record stored by the directory and the
// codec between typed records and schemaless documents.
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/dmitrijs2005/empdirectory/internal/common"
)

// AnyValue is the query sentinel meaning "no constraint on this field".
// It is never a stored value.
const AnyValue = "Any"

// Document field names.
const (
	FieldID         = "id"
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldTitle      = "title"
	FieldOffice     = "office"
	FieldDepartment = "department"
)

// StringFields lists the text fields of an employee document, in display order.
var StringFields = []string{FieldFirstName, FieldLastName, FieldTitle, FieldOffice, FieldDepartment}

// IsStringField reports whether name is one of StringFields.
func IsStringField(name string) bool {
	for _, f := range StringFields {
		if f == name {
			return true
		}
	}
	return false
}

// Employee is a single directory record.
type Employee struct {
	ID         int64  `json:"id" yaml:"id"`
	FirstName  string `json:"firstName" yaml:"firstName"`
	LastName   string `json:"lastName" yaml:"lastName"`
	Title      string `json:"title" yaml:"title"`
	Office     string `json:"office" yaml:"office"`
	Department string `json:"department" yaml:"department"`
}

// Validate checks that the id is positive and every text field is set to
// something other than AnyValue.
func (e Employee) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", common.ErrInvalidRecord, e.ID)
	}
	for _, f := range StringFields {
		switch e.field(f) {
		case "":
			return fmt.Errorf("%w: employee %d has empty %s", common.ErrInvalidRecord, e.ID, f)
		case AnyValue:
			return fmt.Errorf("%w: employee %d has reserved value %q in %s", common.ErrInvalidRecord, e.ID, AnyValue, f)
		}
	}
	return nil
}

func (e Employee) field(name string) string {
	switch name {
	case FieldFirstName:
		return e.FirstName
	case FieldLastName:
		return e.LastName
	case FieldTitle:
		return e.Title
	case FieldOffice:
		return e.Office
	case FieldDepartment:
		return e.Department
	default:
		return ""
	}
}

// FullName returns "First Last".
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Document encodes the employee as a field map carrying all six fields.
func (e Employee) Document() map[string]any {
	return map[string]any{
		FieldID:         e.ID,
		FieldFirstName:  e.FirstName,
		FieldLastName:   e.LastName,
		FieldTitle:      e.Title,
		FieldOffice:     e.Office,
		FieldDepartment: e.Department,
	}
}

// FromDocument decodes a stored document into an Employee. Every field must be
// present with the expected type; the result is validated.
func FromDocument(doc map[string]any) (Employee, error) {
	var e Employee

	id, err := intField(doc, FieldID)
	if err != nil {
		return Employee{}, err
	}
	e.ID = id

	targets := map[string]*string{
		FieldFirstName:  &e.FirstName,
		FieldLastName:   &e.LastName,
		FieldTitle:      &e.Title,
		FieldOffice:     &e.Office,
		FieldDepartment: &e.Department,
	}
	for name, dst := range targets {
		v, ok := doc[name]
		if !ok {
			return Employee{}, fmt.Errorf("%w: missing field %q", common.ErrCorruptDocument, name)
		}
		s, ok := v.(string)
		if !ok {
			return Employee{}, fmt.Errorf("%w: field %q is %T, want string", common.ErrCorruptDocument, name, v)
		}
		*dst = s
	}

	if err := e.Validate(); err != nil {
		return Employee{}, fmt.Errorf("%w: %w", common.ErrCorruptDocument, err)
	}
	return e, nil
}

func intField(doc map[string]any, name string) (int64, error) {
	v, ok := doc[name]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", common.ErrCorruptDocument, name)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: field %q: %w", common.ErrCorruptDocument, name, err)
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: field %q is not an integer: %v", common.ErrCorruptDocument, name, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: field %q is %T, want number", common.ErrCorruptDocument, name, v)
	}
}
