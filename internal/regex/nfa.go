package regex

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// StateID identifies an NFA state. IDs are unique within one construction.
type StateID int

// Symbol labels a transition: either a real input rune or epsilon.
type Symbol struct {
	r   rune
	eps bool
}

// Epsilon is the silent transition label.
var Epsilon = Symbol{eps: true}

// On returns the transition label for input rune r.
func On(r rune) Symbol { return Symbol{r: r} }

func (s Symbol) IsEpsilon() bool { return s.eps }

func (s Symbol) Rune() rune { return s.r }

func (s Symbol) String() string {
	if s.eps {
		return "ε"
	}
	return string(s.r)
}

// StateSet is a set of NFA states.
type StateSet map[StateID]struct{}

func NewStateSet(ids ...StateID) StateSet {
	set := make(StateSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s StateSet) Add(id StateID) { s[id] = struct{}{} }

func (s StateSet) Has(id StateID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s StateSet) Sorted() []StateID {
	ids := make([]StateID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Key is a canonical string for the set, usable as a map key.
func (s StateSet) Key() string {
	var b strings.Builder
	for i, id := range s.Sorted() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// NFA is a nondeterministic automaton with epsilon transitions.
type NFA struct {
	alphabet map[rune]struct{}
	initial  StateID
	finals   StateSet
	trans    map[StateID]map[Symbol][]StateID
}

// NewNFA returns an automaton with the given initial state and no transitions.
func NewNFA(initial StateID, finals ...StateID) *NFA {
	return &NFA{
		alphabet: map[rune]struct{}{},
		initial:  initial,
		finals:   NewStateSet(finals...),
		trans:    map[StateID]map[Symbol][]StateID{},
	}
}

func (n *NFA) Initial() StateID { return n.initial }

// Finals returns the final states in ascending order.
func (n *NFA) Finals() []StateID { return n.finals.Sorted() }

func (n *NFA) IsFinal(id StateID) bool { return n.finals.Has(id) }

func (n *NFA) SetFinals(ids ...StateID) { n.finals = NewStateSet(ids...) }

// Alphabet returns the input runes used on transitions, sorted. Epsilon is
// never part of it.
func (n *NFA) Alphabet() []rune {
	out := make([]rune, 0, len(n.alphabet))
	for r := range n.alphabet {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// AddTransition adds edges from one state to every state in to on sym.
func (n *NFA) AddTransition(from StateID, sym Symbol, to ...StateID) {
	if !sym.eps {
		n.alphabet[sym.r] = struct{}{}
	}
	row, ok := n.trans[from]
	if !ok {
		row = map[Symbol][]StateID{}
		n.trans[from] = row
	}
	for _, t := range to {
		if !slices.Contains(row[sym], t) {
			row[sym] = append(row[sym], t)
		}
	}
}

// Targets returns the states reachable from one state on sym.
func (n *NFA) Targets(from StateID, sym Symbol) []StateID {
	return n.trans[from][sym]
}

// States returns every state mentioned by the automaton.
func (n *NFA) States() StateSet {
	set := NewStateSet(n.initial)
	for id := range n.finals {
		set.Add(id)
	}
	for from, row := range n.trans {
		set.Add(from)
		for _, to := range row {
			for _, t := range to {
				set.Add(t)
			}
		}
	}
	return set
}

// Merge adds other's alphabet, transitions and final states to n. The two
// automata must not share state IDs; use Renumber first if they do.
func (n *NFA) Merge(other *NFA) {
	for r := range other.alphabet {
		n.alphabet[r] = struct{}{}
	}
	for from, row := range other.trans {
		for sym, to := range row {
			n.AddTransition(from, sym, to...)
		}
	}
	for id := range other.finals {
		n.finals.Add(id)
	}
}

// Renumber shifts every state ID by offset.
func (n *NFA) Renumber(offset StateID) {
	trans := make(map[StateID]map[Symbol][]StateID, len(n.trans))
	for from, row := range n.trans {
		nrow := make(map[Symbol][]StateID, len(row))
		for sym, to := range row {
			shifted := make([]StateID, len(to))
			for i, t := range to {
				shifted[i] = t + offset
			}
			nrow[sym] = shifted
		}
		trans[from+offset] = nrow
	}
	finals := make(StateSet, len(n.finals))
	for id := range n.finals {
		finals.Add(id + offset)
	}
	n.trans = trans
	n.finals = finals
	n.initial += offset
}

// EpsilonClosure returns every state reachable from set using only epsilon
// transitions, set included.
func (n *NFA) EpsilonClosure(set StateSet) StateSet {
	closure := make(StateSet, len(set))
	stack := make([]StateID, 0, len(set))
	for id := range set {
		closure.Add(id)
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range n.trans[top][Epsilon] {
			if !closure.Has(to) {
				closure.Add(to)
				stack = append(stack, to)
			}
		}
	}
	return closure
}

// Move returns the states reachable from any state of set by one transition
// on r.
func (n *NFA) Move(set StateSet, r rune) StateSet {
	res := StateSet{}
	sym := On(r)
	for id := range set {
		for _, to := range n.trans[id][sym] {
			res.Add(to)
		}
	}
	return res
}

func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start=%d finals=%v", n.initial, n.Finals())
	froms := make([]StateID, 0, len(n.trans))
	for from := range n.trans {
		froms = append(froms, from)
	}
	slices.Sort(froms)
	for _, from := range froms {
		for _, sym := range sortedSymbols(n.trans[from]) {
			fmt.Fprintf(&b, " %d-%s->%v", from, sym, n.trans[from][sym])
		}
	}
	return b.String()
}

// sortedSymbols orders epsilon first, then runes ascending.
func sortedSymbols(row map[Symbol][]StateID) []Symbol {
	syms := make([]Symbol, 0, len(row))
	for sym := range row {
		syms = append(syms, sym)
	}
	slices.SortFunc(syms, func(a, b Symbol) int {
		switch {
		case a.eps && b.eps:
			return 0
		case a.eps:
			return -1
		case b.eps:
			return 1
		}
		return int(a.r - b.r)
	})
	return syms
}
