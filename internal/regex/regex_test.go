package regex

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

// ------------------------------------------------------------------- helpers

func compileT(t *testing.T, pat string) *DFA {
	t.Helper()
	d, err := Compile(pat)
	require.NoError(t, err, pat)
	return d
}

func acc(t *testing.T, d *DFA, pat, in string, want bool) {
	t.Helper()
	require.Equalf(t, want, d.Accepts(in), "pattern %q on %q", pat, in)
}

// words returns every string over alpha of length at most n.
func words(alpha string, n int) []string {
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

// ------------------------------------------------------------------- acceptance

func TestAcceptance(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a.b", []string{"ab"}, []string{"", "a", "b", "ba", "abb"}},
		{"a|b", []string{"a", "b"}, []string{"", "ab", "c"}},
		{"a*", []string{"", "a", "aa", "aaa"}, []string{"b", "ab"}},
		{"a**", []string{"", "a", "aaaa"}, []string{"b"}},
		{"i.f.(a|b)*", []string{"if", "ifa", "ifab", "ifbba"}, []string{"", "i", "f", "fi", "ifc"}},
		{"(a.b|a)*.c", []string{"c", "ac", "abc", "aabac"}, []string{"", "a", "bc", "abbc"}},
		{"a . b", []string{"ab"}, []string{"a b", "a"}},
	}
	for _, tt := range tests {
		d := compileT(t, tt.pattern)
		for _, s := range tt.accept {
			acc(t, d, tt.pattern, s, true)
		}
		for _, s := range tt.reject {
			acc(t, d, tt.pattern, s, false)
		}
	}
}

func TestAcceptsEmptyString(t *testing.T) {
	for pat, want := range map[string]bool{
		"a":           false,
		"a.b":         false,
		"a|b":         false,
		"a*":          true,
		"(a|b)*":      true,
		"a*.b*":       true,
		"a.b*":        false,
		"a*|b":        true,
		"(a*.b)*.c*":  true,
		"(a.b)*.c":    false,
		"((a|b)*)*":   true,
		"i.f.(a|b)*":  false,
		"(a|b*).(c*)": true,
	} {
		require.Equalf(t, want, compileT(t, pat).AcceptsEmptyString(), "%q", pat)
	}
}

// The DFA must agree with Go's own engine on every short word.
func TestSubsetConstructionEquivalence(t *testing.T) {
	patterns := []string{
		"a.b",
		"a|b",
		"a*",
		"(a.b|a)*.c",
		"a*.b*",
		"(a|b)*.a.b.b",
		"(a|b.c)*.(c|a)",
		"((a.a)|b)*",
	}
	all := words("abc", 5)
	for _, pat := range patterns {
		d := compileT(t, pat)
		std := regexp.MustCompile("^(?:" + strings.ReplaceAll(pat, ".", "") + ")$")
		for _, w := range all {
			require.Equalf(t, std.MatchString(w), d.Accepts(w), "pattern %q on %q", pat, w)
		}
	}
}

// ------------------------------------------------------------------- DFA structure

func TestDeterminizeConcat(t *testing.T) {
	d := compileT(t, "a.b")
	require.Equal(t, 3, d.NumStates())
	require.Equal(t, []int{2}, d.Finals())
	require.Equal(t, []rune{'a', 'b'}, d.Alphabet())

	to, ok := d.Transition(0, 'a')
	require.True(t, ok)
	require.Equal(t, 1, to)
	_, ok = d.Transition(0, 'b')
	require.False(t, ok)
	to, ok = d.Transition(1, 'b')
	require.True(t, ok)
	require.Equal(t, 2, to)
}

func TestDeterminizeStar(t *testing.T) {
	// start {0,2,3} and after 'a' {0,1,3}: two states, both final
	d := compileT(t, "a*")
	require.Equal(t, 2, d.NumStates())
	require.Equal(t, []int{0, 1}, d.Finals())
	to, ok := d.Transition(1, 'a')
	require.True(t, ok)
	require.Equal(t, 1, to)
}

func TestCursor(t *testing.T) {
	d := compileT(t, "a.b")
	d.Reset()
	require.False(t, d.IsDead())
	require.False(t, d.Accepting())
	require.Equal(t, 0, d.State())

	d.Move('a')
	require.Equal(t, "a", d.Lexeme())
	require.False(t, d.Accepting())
	d.Move('b')
	require.Equal(t, "ab", d.Lexeme())
	require.True(t, d.Accepting())

	d.Move('b')
	require.True(t, d.IsDead())
	require.False(t, d.Accepting())
	d.Move('a')
	require.True(t, d.IsDead())
	require.Equal(t, "ab", d.Lexeme())

	d.Reset()
	require.False(t, d.IsDead())
	require.Equal(t, "", d.Lexeme())
	d.Move('b')
	require.True(t, d.IsDead())
}

func TestClone(t *testing.T) {
	d := compileT(t, "a*")
	c := d.Clone()
	d.Reset()
	c.Reset()
	d.Move('a')
	c.Move('b')
	require.False(t, d.IsDead())
	require.True(t, d.Accepting())
	require.True(t, c.IsDead())
	require.Equal(t, d.NumStates(), c.NumStates())
}

// ------------------------------------------------------------------- pipeline errors

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		cause   error
	}{
		{"", ErrEmptyRegex},
		{"  ", ErrEmptyRegex},
		{"123", ErrEmptyRegex},
		{"()", ErrEmptyRegex},
		{"a.", ErrEmptyStack},
		{"a|", ErrEmptyStack},
		{"*", ErrEmptyStack},
		{"ab", ErrDanglingOperands},
		{"(a.b", ErrUnbalancedParen},
		{"a.b)", ErrUnbalancedParen},
	}
	for _, tt := range tests {
		_, err := Compile(tt.pattern)
		require.Errorf(t, err, "%q", tt.pattern)
		require.Equalf(t, tt.cause, errors.Cause(err), "%q: %v", tt.pattern, err)
	}
	require.Panics(t, func() { MustCompile("a|") })
}

func TestCompileAll(t *testing.T) {
	c, err := CompileAll("(a|b).c")
	require.NoError(t, err)
	require.Equal(t, "ab|c.", c.Postfix)
	require.Equal(t, []rune{'a', 'b', 'c'}, c.NFA.Alphabet())
	require.True(t, c.DFA.Accepts("bc"))
}

// ------------------------------------------------------------------- DOT

func TestWriteDot(t *testing.T) {
	c, err := CompileAll("a.b")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDFADot(&buf, c.DFA))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph G {"))
	require.Contains(t, out, `q0 -> q1 [label="a"];`)
	require.Contains(t, out, `q1 -> q2 [label="b"];`)
	require.Contains(t, out, "q2 [shape=doublecircle];")
	require.Contains(t, out, "_start -> q0;")

	buf.Reset()
	require.NoError(t, WriteNFADot(&buf, c.NFA))
	out = buf.String()
	require.Contains(t, out, `n0 -> n1 [label="a"];`)
	require.Contains(t, out, `n1 -> n2 [label="ε"];`)
	require.Contains(t, out, "n3 [shape=doublecircle];")
	require.Contains(t, out, "_start -> n0;")
}

// ------------------------------------------------------------------- bench

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = MustCompile("(a.b|a)*.c.(a|b|c)*")
	}
}

func BenchmarkAccepts(b *testing.B) {
	d := MustCompile("(a|b)*.c")
	txt := strings.Repeat("ab", 500_000) + "c"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Accepts(txt)
	}
}
