package filter

import "fmt"

var (
	// ErrEmpty is returned when Parse is given an empty or all-whitespace
	// string.
	ErrEmpty = fmt.Errorf("filter: empty filter")
	// ErrExpr is returned when a clause does not start with '(' where one
	// is expected.
	ErrExpr = fmt.Errorf("filter: expected '('")
	// ErrUnmatched is returned for mismatched parentheses.
	ErrUnmatched = fmt.Errorf("filter: unmatched parentheses")
	// ErrAttr is returned when a simple/present/substring clause has no
	// attribute name.
	ErrAttr = fmt.Errorf("filter: missing attribute name")
	// ErrOp is returned when no recognized operator is found in a clause.
	ErrOp = fmt.Errorf("filter: missing or invalid operator")
	// ErrUnsupportedOp is returned for ">=" and "<=", which this
	// evaluator does not implement; rejecting them at parse time beats
	// silently matching nothing.
	ErrUnsupportedOp = fmt.Errorf("filter: \">=\" and \"<=\" are not supported")
	// ErrTrailing is returned when Parse succeeds but bytes remain.
	ErrTrailing = fmt.Errorf("filter: unexpected trailing input")
)
