// Command lexgen compiles named regular expressions into automata and
// tokenizes a subject string with them by longest match.
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pingcap/errors"
	"go.uber.org/zap"

	"lexgen/internal/config"
	"lexgen/internal/lexer"
	"lexgen/internal/regex"
	"lexgen/internal/report"
)

// errFailed marks a run that already reported its failure on stdout.
var errFailed = errors.New("failed")

type cli struct {
	Verbose bool `short:"v" help:"Log compilation details to stderr."`

	Scan  scanCmd  `cmd:"" default:"withargs" help:"Tokenize the subject of a definition file (default)."`
	Check checkCmd `cmd:"" help:"Compile every token and print automaton sizes."`
	Dot   dotCmd   `cmd:"" help:"Print a Graphviz graph of one token's automaton."`
}

type defsOptions struct {
	File             string `arg:"" optional:"" default:"-" help:"Definition file, - for stdin."`
	Syntax           string `enum:"auto,classic,yaml,toml" default:"auto" help:"Definition syntax (${enum})."`
	DeclarationOrder bool   `help:"Break ties by definition order instead of name order."`
}

type runContext struct {
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
}

func (o *defsOptions) load(rc *runContext) (*config.Document, error) {
	syntax := config.Syntax(o.Syntax)
	if o.File == "-" {
		data, err := io.ReadAll(rc.stdin)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if syntax == config.SyntaxAuto {
			syntax = config.SyntaxClassic
		}
		return config.Parse("<stdin>", data, syntax)
	}
	return config.Load(o.File, syntax)
}

func (o *defsOptions) compile(rc *runContext, doc *config.Document) (*lexer.TokenSet, error) {
	opts := []lexer.Option{lexer.WithLogger(rc.log)}
	if o.DeclarationOrder {
		opts = append(opts, lexer.WithDeclarationOrder())
	}
	return lexer.Compile(doc.Definitions, opts...)
}

type scanCmd struct {
	defsOptions
	Format  string `enum:"text,table" default:"text" env:"LEXGEN_FORMAT" help:"Output format (${enum})."`
	Color   bool   `help:"Highlight failures."`
	Subject string `placeholder:"TEXT" help:"Tokenize TEXT instead of the file's subject."`
}

func (c *scanCmd) Run(rc *runContext) error {
	doc, err := c.load(rc)
	if err != nil {
		return err
	}
	p := report.NewPrinter(rc.stdout, report.Format(c.Format), c.Color)
	set, err := c.compile(rc, doc)
	var eps *lexer.EpsilonError
	if stderrors.As(err, &eps) {
		if err := p.Epsilon(eps); err != nil {
			return err
		}
		return errFailed
	}
	if err != nil {
		return err
	}

	subject := doc.Subject
	if c.Subject != "" {
		subject = c.Subject
	}
	rc.log.Debug("scanning", zap.Int("tokens", set.Len()), zap.Int("bytes", len(subject)))
	ok, err := p.Tokens(lexer.Tokenize(subject, set))
	if err != nil {
		return err
	}
	if !ok {
		return errFailed
	}
	return nil
}

type checkCmd struct {
	defsOptions
}

func (c *checkCmd) Run(rc *runContext) error {
	doc, err := c.load(rc)
	if err != nil {
		return err
	}
	failed := false
	for _, def := range doc.Definitions {
		compiled, err := regex.CompileAll(def.Regex)
		if err != nil {
			fmt.Fprintf(rc.stdout, "%s\terror: %v\n", def.Name, err)
			failed = true
			continue
		}
		eps := compiled.DFA.AcceptsEmptyString()
		fmt.Fprintf(rc.stdout, "%s\tpostfix=%s nfa=%d dfa=%d epsilon=%t\n",
			def.Name, compiled.Postfix, len(compiled.NFA.States()), compiled.DFA.NumStates(), eps)
		failed = failed || eps
	}
	if failed {
		return errFailed
	}
	return nil
}

type dotCmd struct {
	defsOptions
	Token string `required:"" short:"t" help:"Token to draw."`
	NFA   bool   `name:"nfa" help:"Draw the Thompson NFA instead of the DFA."`
}

func (c *dotCmd) Run(rc *runContext) error {
	doc, err := c.load(rc)
	if err != nil {
		return err
	}
	// the last definition of a name is the one in effect
	re, found := "", false
	for _, def := range doc.Definitions {
		if def.Name == c.Token {
			re, found = def.Regex, true
		}
	}
	if !found {
		return errors.Errorf("no token named %q", c.Token)
	}
	compiled, err := regex.CompileAll(re)
	if err != nil {
		return errors.Annotatef(err, "token %s", c.Token)
	}
	if c.NFA {
		return regex.WriteNFADot(rc.stdout, compiled.NFA)
	}
	return regex.WriteDFADot(rc.stdout, compiled.DFA)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func newParser(params *cli, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("lexgen"),
		kong.Description("Longest-match tokenizer built from named regular expressions."),
		kong.UsageOnError(),
	}, opts...)
	return kong.New(params, opts...)
}

func main() {
	var params cli
	parser, err := newParser(&params)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	log, err := newLogger(params.Verbose)
	kctx.FatalIfErrorf(err)
	defer log.Sync() //nolint:errcheck

	err = kctx.Run(&runContext{log: log, stdin: os.Stdin, stdout: os.Stdout})
	if errors.Cause(err) == errFailed {
		log.Sync() //nolint:errcheck
		os.Exit(1)
	}
	kctx.FatalIfErrorf(err)
}
