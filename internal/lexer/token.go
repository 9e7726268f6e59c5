package lexer

import "fmt"

// Reserved token types.
const (
	EOS     = "EOS"
	Invalid = "INVALID"
)

// Token is one recognized lexeme. Pos is the byte offset where it starts.
type Token struct {
	Type string
	Text string
	Pos  int
}

func (t Token) IsEOS() bool { return t.Type == EOS }

func (t Token) IsInvalid() bool { return t.Type == Invalid }

func (t Token) String() string {
	return fmt.Sprintf("%s , %q", t.Type, t.Text)
}
