package queryir

import (
	"fmt"

	"github.com/dmitrijs2005/empdirectory/internal/common"
)

// Document is a schemaless record: field name to scalar value.
type Document map[string]any

// Predicate is a filter condition. Sealed to this package.
type Predicate interface {
	predicateNode()
}

// Equals matches documents whose Field equals Value. Numeric values compare by
// magnitude regardless of their Go type (int, int64, float64, json.Number).
type Equals struct {
	Field string
	Value any
}

func (Equals) predicateNode() {}

// Contains matches documents whose string Field contains Substring.
// The empty substring matches every string value. Matching is case-sensitive.
type Contains struct {
	Field     string
	Substring string
}

func (Contains) predicateNode() {}

// And matches when every predicate matches. An empty And matches everything.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// AllOf is shorthand for And{Predicates: ps}.
func AllOf(ps ...Predicate) And {
	return And{Predicates: ps}
}

// Ordering sorts by one field.
type Ordering struct {
	Field      string
	Descending bool
}

// Query describes a read against a collection.
type Query struct {
	// Where filters documents; nil selects everything.
	Where Predicate
	// OrderBy is applied left to right; ties keep storage order.
	OrderBy []Ordering
	// Fields projects the listed fields; nil keeps whole documents.
	Fields []string
	// Distinct drops rows equal to an earlier row after projection.
	Distinct bool
}

// Validate reports structural problems: empty field names and nil predicates
// nested inside And.
func (q Query) Validate() error {
	if q.Where != nil {
		if err := validatePredicate(q.Where); err != nil {
			return err
		}
	}
	for i, o := range q.OrderBy {
		if o.Field == "" {
			return fmt.Errorf("%w: ordering %d has empty field", common.ErrInvalidQuery, i)
		}
	}
	for i, f := range q.Fields {
		if f == "" {
			return fmt.Errorf("%w: projection %d has empty field", common.ErrInvalidQuery, i)
		}
	}
	return nil
}

func validatePredicate(p Predicate) error {
	switch p := p.(type) {
	case Equals:
		if p.Field == "" {
			return fmt.Errorf("%w: equals with empty field", common.ErrInvalidQuery)
		}
		if p.Value == nil {
			return fmt.Errorf("%w: equals %q with nil value", common.ErrInvalidQuery, p.Field)
		}
	case Contains:
		if p.Field == "" {
			return fmt.Errorf("%w: contains with empty field", common.ErrInvalidQuery)
		}
	case And:
		for i, inner := range p.Predicates {
			if inner == nil {
				return fmt.Errorf("%w: and operand %d is nil", common.ErrInvalidQuery, i)
			}
			if err := validatePredicate(inner); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unsupported predicate %T", common.ErrInvalidQuery, p)
	}
	return nil
}
