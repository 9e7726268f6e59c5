package regex

import "github.com/pingcap/errors"

// Structural errors. Callers get them wrapped with position details; use
// errors.Cause to compare.
var (
	ErrEmptyRegex       = errors.New("regex denotes no automaton")
	ErrUnbalancedParen  = errors.New("unbalanced parenthesis")
	ErrEmptyStack       = errors.New("operator is missing an operand")
	ErrDanglingOperands = errors.New("operands left without an operator")
	ErrUnexpectedSymbol = errors.New("unexpected symbol in postfix regex")
)
