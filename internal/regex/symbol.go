package regex

import (
	"unicode"
	"unicode/utf8"
)

type symbolKind int

const (
	sEOF     symbolKind = iota
	sSkip               // anything not in the regex alphabet, dropped
	sOperand            // letter
	sLParen             // (
	sRParen             // )
	sUnion              // |
	sConcat             // .
	sStar               // *
)

type symbol struct {
	kind symbolKind
	ch   rune
}

// IsOperand reports whether r is a literal operand of the regex language.
// Only letters are operands.
func IsOperand(r rune) bool { return unicode.IsLetter(r) }

func classify(r rune) symbolKind {
	switch r {
	case '(':
		return sLParen
	case ')':
		return sRParen
	case '|':
		return sUnion
	case '.':
		return sConcat
	case '*':
		return sStar
	}
	if IsOperand(r) {
		return sOperand
	}
	return sSkip
}

// precedence of the operators; 0 for everything that is not one.
func precedence(k symbolKind) int {
	switch k {
	case sStar:
		return 3
	case sConcat:
		return 2
	case sUnion:
		return 1
	default:
		return 0
	}
}

func (k symbolKind) String() string {
	switch k {
	case sEOF:
		return "EOF"
	case sSkip:
		return "skip"
	case sOperand:
		return "operand"
	case sLParen:
		return "'('"
	case sRParen:
		return "')'"
	case sUnion:
		return "'|'"
	case sConcat:
		return "'.'"
	case sStar:
		return "'*'"
	}
	return "unknown"
}

type scanner struct {
	input string
	pos   int
}

func newScanner(s string) *scanner { return &scanner{input: s} }

// next returns the next symbol and the byte offset it started at.
func (s *scanner) next() (symbol, int) {
	start := s.pos
	if s.pos >= len(s.input) {
		return symbol{kind: sEOF}, start
	}
	r, size := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += size
	return symbol{kind: classify(r), ch: r}, start
}
