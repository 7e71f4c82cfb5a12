// Package queryir is the small query language the document store evaluates.
//
// A Query selects documents matching an optional Predicate, orders them by a
// list of Orderings, optionally projects a subset of fields and optionally
// removes duplicate rows. Predicate is a sealed interface: only Equals,
// Contains and And implement it, so evaluators can switch exhaustively.
//
//	q := queryir.Query{
//	    Where: queryir.AllOf(
//	        queryir.Contains{Field: "office", Substring: "NY"},
//	        queryir.Contains{Field: "firstName", Substring: ""},
//	    ),
//	    OrderBy: []queryir.Ordering{{Field: "lastName"}},
//	}
//	rows, err := queryir.Execute(q, docs)
//
// Execute is pure: it never mutates its input and keeps the relative order of
// documents that compare equal (stable sort), so storage order breaks ties.
package queryir
