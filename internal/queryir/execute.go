package queryir

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Execute runs q over docs, which must be in storage order.
func Execute(q Query, docs []Document) ([]Document, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matched := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if q.Where == nil || Match(q.Where, doc) {
			matched = append(matched, doc)
		}
	}

	if len(q.OrderBy) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(q.OrderBy, matched[i], matched[j])
		})
	}

	out := make([]Document, 0, len(matched))
	seen := make(map[string]struct{})
	for _, doc := range matched {
		row := project(doc, q.Fields)
		if q.Distinct {
			key, err := rowKey(row, q.Fields)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, row)
	}
	return out, nil
}

// Match evaluates p against doc. Missing fields never match Equals or Contains.
func Match(p Predicate, doc Document) bool {
	switch p := p.(type) {
	case Equals:
		v, ok := doc[p.Field]
		return ok && equal(v, p.Value)
	case Contains:
		s, ok := doc[p.Field].(string)
		return ok && strings.Contains(s, p.Substring)
	case And:
		for _, inner := range p.Predicates {
			if !Match(inner, doc) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func less(order []Ordering, a, b Document) bool {
	for _, o := range order {
		c := compare(a[o.Field], b[o.Field])
		if c == 0 {
			continue
		}
		if o.Descending {
			return c > 0
		}
		return c < 0
	}
	return false
}

// Type rank for mixed-type ordering: missing < numbers < strings < other.
func rank(v any) int {
	if v == nil {
		return 0
	}
	if _, ok := number(v); ok {
		return 1
	}
	if _, ok := v.(string); ok {
		return 2
	}
	return 3
}

func compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		x, _ := number(a)
		y, _ := number(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case 2:
		return strings.Compare(a.(string), b.(string))
	case 3:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	return 0
}

func equal(a, b any) bool {
	x, xok := number(a)
	y, yok := number(b)
	if xok || yok {
		return xok && yok && x == y
	}
	return a == b
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

func project(doc Document, fields []string) Document {
	if fields == nil {
		return doc
	}
	row := make(Document, len(fields))
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			row[f] = v
		}
	}
	return row
}

// rowKey is a canonical encoding of a row used for distinct.
// encoding/json sorts map keys, so whole documents encode deterministically.
func rowKey(row Document, fields []string) (string, error) {
	var (
		b   []byte
		err error
	)
	if fields == nil {
		b, err = json.Marshal(normalize(row))
	} else {
		vals := make([]any, len(fields))
		for i, f := range fields {
			vals[i] = normalizeValue(row[f])
		}
		b, err = json.Marshal(vals)
	}
	if err != nil {
		return "", fmt.Errorf("distinct key: %w", err)
	}
	return string(b), nil
}

func normalize(row Document) map[string]any {
	m := make(map[string]any, len(row))
	for k, v := range row {
		m[k] = normalizeValue(v)
	}
	return m
}

// Numbers of different Go types must produce the same distinct key.
func normalizeValue(v any) any {
	if f, ok := number(v); ok {
		return f
	}
	return v
}
