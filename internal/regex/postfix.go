package regex

import (
	"strings"

	"github.com/pingcap/errors"
)

type opStack []symbol

func (s *opStack) push(sym symbol) { *s = append(*s, sym) }

func (s *opStack) top() symbol { return (*s)[len(*s)-1] }

func (s *opStack) pop() symbol {
	sym := s.top()
	*s = (*s)[:len(*s)-1]
	return sym
}

func (s *opStack) empty() bool { return len(*s) == 0 }

// ToPostfix converts an infix regex with explicit concatenation ('.') into
// postfix form. Operands keep their input order, operators are emitted by
// precedence ('*' > '.' > '|', all left associative). Characters outside the
// regex alphabet, whitespace included, are dropped.
//
// Parentheses are checked for balance; a mismatch is reported as
// ErrUnbalancedParen.
func ToPostfix(infix string) (string, error) {
	var (
		out strings.Builder
		ops opStack
		sc  = newScanner(infix)
	)
	for {
		sym, pos := sc.next()
		switch sym.kind {
		case sEOF:
			for !ops.empty() {
				op := ops.pop()
				if op.kind == sLParen {
					return "", errors.Annotatef(ErrUnbalancedParen, "'(' is never closed in %q", infix)
				}
				out.WriteRune(op.ch)
			}
			return out.String(), nil
		case sSkip:
		case sOperand:
			out.WriteRune(sym.ch)
		case sLParen:
			ops.push(sym)
		case sRParen:
			for !ops.empty() && ops.top().kind != sLParen {
				out.WriteRune(ops.pop().ch)
			}
			if ops.empty() {
				return "", errors.Annotatef(ErrUnbalancedParen, "')' at offset %d of %q has no match", pos, infix)
			}
			ops.pop()
		default:
			for !ops.empty() && ops.top().kind != sLParen && precedence(ops.top().kind) >= precedence(sym.kind) {
				out.WriteRune(ops.pop().ch)
			}
			ops.push(sym)
		}
	}
}
