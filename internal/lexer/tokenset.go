package lexer

import (
	"slices"
	"strings"

	"github.com/pingcap/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"lexgen/internal/regex"
)

// Definition names a token and the regex that recognizes it.
type Definition struct {
	Name  string `json:"name" toml:"name"`
	Regex string `json:"regex" toml:"regex"`
}

// EpsilonError lists the tokens whose automaton accepts the empty string.
type EpsilonError struct {
	Names []string
}

func (e *EpsilonError) Error() string {
	return "EPSILON IS NOT A TOKEN " + strings.Join(e.Names, " ")
}

// Option configures Compile.
type Option func(*options)

type options struct {
	log         *zap.Logger
	declaration bool
}

// WithLogger sets the logger compilation reports to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDeclarationOrder breaks ties between equally long matches in favour of
// the token defined first. The default is lexicographic order of names.
func WithDeclarationOrder() Option {
	return func(o *options) { o.declaration = true }
}

// TokenSet is an ordered set of compiled token automata. The order decides
// which token wins when two match the same longest lexeme. A TokenSet is
// immutable; every Lexer gets its own cursors.
type TokenSet struct {
	names []string
	dfas  []*regex.DFA
}

// Compile builds the automaton of every definition. Broken regexes are all
// reported together, each annotated with its token name. A later definition
// with an already used name replaces the earlier one.
//
// If any definition accepts the empty string, including one later
// replaced, the result is an *EpsilonError naming all of them.
func Compile(defs []Definition, opts ...Option) (*TokenSet, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var names, epsilon []string
	var errs error
	byName := map[string]*regex.DFA{}
	for _, def := range defs {
		c, err := regex.CompileAll(def.Regex)
		if err != nil {
			errs = multierr.Append(errs, errors.Annotatef(err, "token %s", def.Name))
			continue
		}
		o.log.Debug("compiled token",
			zap.String("name", def.Name),
			zap.String("regex", def.Regex),
			zap.String("postfix", c.Postfix),
			zap.Int("nfaStates", len(c.NFA.States())),
			zap.Int("dfaStates", c.DFA.NumStates()))
		if _, dup := byName[def.Name]; !dup {
			names = append(names, def.Name)
		} else {
			o.log.Warn("token redefined", zap.String("name", def.Name))
		}
		byName[def.Name] = c.DFA
		if c.DFA.AcceptsEmptyString() && !slices.Contains(epsilon, def.Name) {
			epsilon = append(epsilon, def.Name)
		}
	}
	if errs != nil {
		return nil, errs
	}
	if len(epsilon) > 0 {
		slices.Sort(epsilon)
		return nil, &EpsilonError{Names: epsilon}
	}

	if !o.declaration {
		slices.Sort(names)
	}
	set := &TokenSet{names: names, dfas: make([]*regex.DFA, len(names))}
	for i, name := range names {
		set.dfas[i] = byName[name]
	}
	return set, nil
}

// Names returns the token names in tie-break order.
func (s *TokenSet) Names() []string { return slices.Clone(s.names) }

// DFA returns a copy of the automaton compiled for name, with its own cursor.
func (s *TokenSet) DFA(name string) (*regex.DFA, bool) {
	i := slices.Index(s.names, name)
	if i < 0 {
		return nil, false
	}
	return s.dfas[i].Clone(), true
}

func (s *TokenSet) Len() int { return len(s.names) }
