package config

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/pingcap/errors"

	"lexgen/internal/lexer"
)

// The classic stream: comma separated "<name> <regex>" entries up to the
// first '#', then the subject as the first double-quoted string after it.
// Anything between the '#' and the opening quote, or after the closing quote,
// is ignored.
//
//	ID i.(a|b)*, IF i.f #
//	"if iff"
type classicDefs struct {
	Entries []*classicEntry `parser:"( @@ | ',' )*"`
}

type classicEntry struct {
	Name  string   `parser:"@Word"`
	Regex []string `parser:"@Word*"`
}

var classicLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Word", Pattern: `[^\s,]+`},
})

var classicParser = participle.MustBuild[classicDefs](
	participle.Lexer(classicLexer),
	participle.Elide("Whitespace"),
)

// ParseClassic reads a classic definition stream. The regex of an entry is
// every field after the name, joined by single spaces.
func ParseClassic(name, data string) (*Document, error) {
	defs, rest, _ := strings.Cut(data, "#")
	file, err := classicParser.ParseString(name, defs)
	if err != nil {
		return nil, errors.Annotatef(err, "parse %s", name)
	}
	doc := &Document{Subject: subject(rest)}
	for _, e := range file.Entries {
		doc.Definitions = append(doc.Definitions, lexer.Definition{
			Name:  e.Name,
			Regex: strings.Join(e.Regex, " "),
		})
	}
	return doc, nil
}

// subject returns the first double-quoted string in s without its quotes.
// The closing quote may be missing when the stream ends inside the subject.
func subject(s string) string {
	_, quoted, found := strings.Cut(s, `"`)
	if !found {
		return ""
	}
	text, _, _ := strings.Cut(quoted, `"`)
	return text
}
