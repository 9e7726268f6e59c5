package lexer

import (
	"unicode"
	"unicode/utf8"

	"lexgen/internal/regex"
)

// Lexer splits an input string into tokens by longest match. All token
// automata run in lockstep over the input; the longest accepted lexeme wins
// and ties go to the token that comes first in the TokenSet order.
//
// A Lexer owns its automaton cursors and is not safe for concurrent use.
// Independent Lexers over one TokenSet may run concurrently.
type Lexer struct {
	input string
	pos   int
	names []string
	dfas  []*regex.DFA
}

// New returns a Lexer over input.
func New(input string, set *TokenSet) *Lexer {
	l := &Lexer{
		input: input,
		names: set.names,
		dfas:  make([]*regex.DFA, len(set.dfas)),
	}
	for i, d := range set.dfas {
		l.dfas[i] = d.Clone()
	}
	return l
}

// Reset starts over on a new input, keeping the compiled automata.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.pos = 0
}

// Pos returns the byte offset of the next unread character.
func (l *Lexer) Pos() int { return l.pos }

// Next returns the next token. Leading whitespace is skipped. At the end of
// input it returns an EOS token. When no automaton accepts any prefix it
// returns an Invalid token holding the single character at the current
// position, and moves past it.
func (l *Lexer) Next() Token {
	for _, d := range l.dfas {
		d.Reset()
	}
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	start := l.pos
	if start >= len(l.input) {
		return Token{Type: EOS, Pos: start}
	}

	best := -1
	bestLen := 0
	bestEnd := start
	for pos := start; pos < len(l.input); {
		r, size := utf8.DecodeRuneInString(l.input[pos:])
		if unicode.IsSpace(r) {
			break
		}
		pos += size
		alive := false
		for i, d := range l.dfas {
			if d.IsDead() {
				continue
			}
			d.Move(r)
			if d.IsDead() {
				continue
			}
			alive = true
			if d.Accepting() && len(d.Lexeme()) > bestLen {
				best, bestLen, bestEnd = i, len(d.Lexeme()), pos
			}
		}
		if !alive {
			break
		}
	}

	if best >= 0 {
		l.pos = bestEnd
		return Token{Type: l.names[best], Text: l.input[start:bestEnd], Pos: start}
	}
	_, size := utf8.DecodeRuneInString(l.input[start:])
	l.pos = start + size
	return Token{Type: Invalid, Text: l.input[start:l.pos], Pos: start}
}

// All drains the lexer. The result ends with the EOS token, or with the
// first Invalid token if one is met.
func (l *Lexer) All() []Token {
	var out []Token
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.IsEOS() || tok.IsInvalid() {
			return out
		}
	}
}

// Tokenize runs a fresh Lexer over input and drains it.
func Tokenize(input string, set *TokenSet) []Token {
	return New(input, set).All()
}
