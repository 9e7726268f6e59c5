package report

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/fatih/color"
	"github.com/pingcap/errors"

	"lexgen/internal/lexer"
)

// Format selects how tokens are printed.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// Printer writes scan results.
type Printer struct {
	w      io.Writer
	format Format
	errc   *color.Color
}

// NewPrinter returns a Printer writing to w. With colour set, failure lines
// are highlighted.
func NewPrinter(w io.Writer, format Format, colour bool) *Printer {
	errc := color.New(color.FgRed, color.Bold)
	if colour {
		errc.EnableColor()
	} else {
		errc.DisableColor()
	}
	return &Printer{w: w, format: format, errc: errc}
}

// Tokens prints every token up to EOS. An Invalid token is printed as a
// failure and ends the output; Tokens then reports false.
func (p *Printer) Tokens(tokens []lexer.Token) (bool, error) {
	switch p.format {
	case FormatText, "":
		return p.text(tokens)
	case FormatTable:
		return p.table(tokens)
	}
	return false, errors.Errorf("unknown output format %q", p.format)
}

// text prints
//
//	NAME , "lexeme"
//
// per token and ERROR on the first invalid one.
func (p *Printer) text(tokens []lexer.Token) (bool, error) {
	for _, tok := range tokens {
		switch {
		case tok.IsEOS():
			return true, nil
		case tok.IsInvalid():
			_, err := p.errc.Fprintln(p.w, "ERROR")
			return false, errors.Trace(err)
		}
		if _, err := fmt.Fprintf(p.w, "%s , \"%s\"\n", tok.Type, tok.Text); err != nil {
			return false, errors.Trace(err)
		}
	}
	return true, nil
}

func (p *Printer) table(tokens []lexer.Token) (bool, error) {
	t := tabby.NewCustom(tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0))
	t.AddHeader("POS", "TYPE", "LEXEME")
	ok := true
	for _, tok := range tokens {
		if tok.IsEOS() {
			break
		}
		t.AddLine(strconv.Itoa(tok.Pos), tok.Type, strconv.Quote(tok.Text))
		if tok.IsInvalid() {
			ok = false
			break
		}
	}
	t.Print()
	if !ok {
		_, err := p.errc.Fprintln(p.w, "ERROR")
		return false, errors.Trace(err)
	}
	return true, nil
}

// Epsilon prints the rejection of tokens that accept the empty string.
func (p *Printer) Epsilon(err *lexer.EpsilonError) error {
	_, werr := p.errc.Fprintln(p.w, err.Error())
	return errors.Trace(werr)
}
