package regex

import "github.com/pingcap/errors"

// builder runs Thompson's construction over a postfix regex. It owns the
// state counter so every fragment gets fresh IDs and merging never collides.
type builder struct {
	next  StateID
	stack []*NFA
}

func (b *builder) fresh() StateID {
	b.next++
	return b.next - 1
}

func (b *builder) push(n *NFA) { b.stack = append(b.stack, n) }

func (b *builder) pop(op rune, pos int) (*NFA, error) {
	if len(b.stack) == 0 {
		return nil, errors.Annotatef(ErrEmptyStack, "%q at offset %d", op, pos)
	}
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return n, nil
}

func (b *builder) operand(c rune) {
	start, end := b.fresh(), b.fresh()
	n := NewNFA(start, end)
	n.AddTransition(start, On(c), end)
	b.push(n)
}

// star: a fresh start and final, epsilon into f or straight to the final,
// and from each of f's finals back to f's start or on to the final.
func (b *builder) star(f *NFA) {
	start, final := b.fresh(), b.fresh()
	n := NewNFA(start)
	n.Merge(f)
	n.SetFinals(final)
	n.AddTransition(start, Epsilon, f.Initial(), final)
	for _, s := range f.Finals() {
		n.AddTransition(s, Epsilon, f.Initial(), final)
	}
	b.push(n)
}

func (b *builder) concat(f1, f2 *NFA) {
	for _, s := range f1.Finals() {
		f1.AddTransition(s, Epsilon, f2.Initial())
	}
	finals := f2.Finals()
	f1.Merge(f2)
	f1.SetFinals(finals...)
	b.push(f1)
}

func (b *builder) union(f1, f2 *NFA) {
	start, final := b.fresh(), b.fresh()
	n := NewNFA(start)
	n.Merge(f1)
	n.Merge(f2)
	n.SetFinals(final)
	n.AddTransition(start, Epsilon, f1.Initial(), f2.Initial())
	for _, s := range f1.Finals() {
		n.AddTransition(s, Epsilon, final)
	}
	for _, s := range f2.Finals() {
		n.AddTransition(s, Epsilon, final)
	}
	b.push(n)
}

// Thompson builds an NFA from a postfix regex produced by ToPostfix.
// Malformed input fails with ErrEmptyStack, ErrDanglingOperands,
// ErrEmptyRegex or ErrUnexpectedSymbol rather than reading past the stack.
func Thompson(postfix string) (*NFA, error) {
	b := &builder{}
	sc := newScanner(postfix)
	for {
		sym, pos := sc.next()
		switch sym.kind {
		case sEOF:
			switch len(b.stack) {
			case 0:
				return nil, errors.Trace(ErrEmptyRegex)
			case 1:
				return b.stack[0], nil
			default:
				return nil, errors.Annotatef(ErrDanglingOperands, "%d fragments left from %q", len(b.stack), postfix)
			}
		case sOperand:
			b.operand(sym.ch)
		case sStar:
			f, err := b.pop(sym.ch, pos)
			if err != nil {
				return nil, err
			}
			b.star(f)
		case sConcat, sUnion:
			f2, err := b.pop(sym.ch, pos)
			if err != nil {
				return nil, err
			}
			f1, err := b.pop(sym.ch, pos)
			if err != nil {
				return nil, err
			}
			if sym.kind == sConcat {
				b.concat(f1, f2)
			} else {
				b.union(f1, f2)
			}
		default:
			return nil, errors.Annotatef(ErrUnexpectedSymbol, "%q at offset %d", sym.ch, pos)
		}
	}
}
