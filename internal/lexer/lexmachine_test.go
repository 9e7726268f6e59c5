package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// referenceLexer builds a lexmachine lexer from the same definitions, added
// in the same tie-break order.
func referenceLexer(t *testing.T, set *TokenSet, defs map[string]string) *lexmachine.Lexer {
	t.Helper()
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`[ \t\n\r]+`), skip)
	for _, name := range set.Names() {
		// '.' is explicit concatenation here but "any character" there
		lx.Add([]byte(strings.ReplaceAll(defs[name], ".", "")), tokAction(name))
	}
	require.NoError(t, lx.Compile())
	return lx
}

// referenceTokens scans text with lx. It stops at the first unconsumed input.
func referenceTokens(t *testing.T, lx *lexmachine.Lexer, text string) ([]Token, bool) {
	t.Helper()
	scanner, err := lx.Scanner([]byte(text))
	require.NoError(t, err)
	out := []Token{}
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if _, is := err.(*machines.UnconsumedInput); is {
			return out, true
		}
		require.NoError(t, err)
		out = append(out, tok.(Token))
	}
	return out, false
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func tokAction(name string) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return Token{Type: name, Text: string(m.Bytes), Pos: m.TC}, nil
	}
}

func TestLexerMatchesLexmachine(t *testing.T) {
	sets := []struct {
		defs  map[string]string
		alpha string
	}{
		{
			defs:  map[string]string{"A": "a", "AB": "a.b", "ABS": "a.(a|b)*"},
			alpha: "abc ",
		},
		{
			defs:  map[string]string{"IF": "i.f", "ID": "(i|f|x).(i|f|x)*", "FF": "f.f"},
			alpha: "ifx ",
		},
		{
			defs:  map[string]string{"ODD": "a.(a.a)*", "EVEN": "a.a.(a.a)*", "B": "b.b*"},
			alpha: "ab ",
		},
		{
			defs:  map[string]string{"T": "(a|b)*.a.b.b", "U": "a.b|b.a"},
			alpha: "ab ",
		},
	}
	for _, s := range sets {
		defs := make([]Definition, 0, len(s.defs))
		for name, re := range s.defs {
			defs = append(defs, Definition{Name: name, Regex: re})
		}
		set := compile(t, defs)
		lx := referenceLexer(t, set, s.defs)

		for _, text := range wordsOver(s.alpha, 6) {
			want, failed := referenceTokens(t, lx, text)
			got := Tokenize(text, set)
			last := got[len(got)-1]
			require.Equalf(t, failed, last.IsInvalid(), "%v on %q: %v", s.defs, text, got)
			require.Equalf(t, want, got[:len(got)-1], "%v on %q", s.defs, text)
		}
	}
}

func wordsOver(alpha string, n int) []string {
	out := []string{""}
	level := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, w := range level {
			for _, r := range alpha {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}
