package regex

import "github.com/pingcap/errors"

// Compiled holds every stage of one regex compilation.
type Compiled struct {
	Infix   string
	Postfix string
	NFA     *NFA
	DFA     *DFA
}

// CompileAll runs the whole pipeline: infix to postfix, Thompson's
// construction, subset construction.
func CompileAll(infix string) (*Compiled, error) {
	postfix, err := ToPostfix(infix)
	if err != nil {
		return nil, err
	}
	if postfix == "" {
		return nil, errors.Annotatef(ErrEmptyRegex, "%q", infix)
	}
	nfa, err := Thompson(postfix)
	if err != nil {
		return nil, err
	}
	return &Compiled{
		Infix:   infix,
		Postfix: postfix,
		NFA:     nfa,
		DFA:     Determinize(nfa),
	}, nil
}

// Compile returns the DFA for an infix regex.
func Compile(infix string) (*DFA, error) {
	c, err := CompileAll(infix)
	if err != nil {
		return nil, err
	}
	return c.DFA, nil
}

func MustCompile(infix string) *DFA {
	d, err := Compile(infix)
	if err != nil {
		panic(err)
	}
	return d
}
