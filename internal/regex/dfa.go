package regex

import (
	"fmt"
	"slices"
	"strings"
)

type dfaKey struct {
	state int
	sym   rune
}

// dfaTable is the immutable part of a DFA, shared between clones.
type dfaTable struct {
	alphabet  []rune
	numStates int
	finals    map[int]struct{}
	trans     map[dfaKey]int
}

// DFA is a deterministic automaton with a simulation cursor. State 0 is the
// initial state. A (state, rune) pair missing from the table leads to an
// implicit dead state, which the cursor never leaves until Reset.
//
// The cursor is not safe for concurrent use; Clone gives an independent one.
type DFA struct {
	*dfaTable

	cur    int
	dead   bool
	lexeme strings.Builder
}

func newDFA(alphabet []rune) *DFA {
	return &DFA{dfaTable: &dfaTable{
		alphabet: alphabet,
		finals:   map[int]struct{}{},
		trans:    map[dfaKey]int{},
	}}
}

func (d *DFA) addState(final bool) int {
	id := d.numStates
	d.numStates++
	if final {
		d.finals[id] = struct{}{}
	}
	return id
}

func (d *DFA) addTransition(from int, sym rune, to int) {
	d.trans[dfaKey{from, sym}] = to
}

// Clone returns a DFA sharing this one's transition table with a fresh cursor.
func (d *DFA) Clone() *DFA {
	return &DFA{dfaTable: d.dfaTable}
}

func (d *DFA) Alphabet() []rune { return slices.Clone(d.alphabet) }

func (d *DFA) NumStates() int { return d.numStates }

func (d *DFA) IsFinal(state int) bool {
	_, ok := d.finals[state]
	return ok
}

// Finals returns the final states in ascending order.
func (d *DFA) Finals() []int {
	out := make([]int, 0, len(d.finals))
	for s := range d.finals {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Transition looks up the successor of state on r.
func (d *DFA) Transition(state int, r rune) (int, bool) {
	to, ok := d.trans[dfaKey{state, r}]
	return to, ok
}

// AcceptsEmptyString reports whether the initial state is final.
func (d *DFA) AcceptsEmptyString() bool { return d.IsFinal(0) }

// Reset puts the cursor back on the initial state and clears the lexeme.
func (d *DFA) Reset() {
	d.cur = 0
	d.dead = false
	d.lexeme.Reset()
}

// Move feeds one rune to the cursor. A dead cursor stays dead.
func (d *DFA) Move(r rune) {
	if d.dead {
		return
	}
	to, ok := d.trans[dfaKey{d.cur, r}]
	if !ok {
		d.dead = true
		return
	}
	d.cur = to
	d.lexeme.WriteRune(r)
}

func (d *DFA) IsDead() bool { return d.dead }

// State returns the cursor's state; it is meaningless once IsDead.
func (d *DFA) State() int { return d.cur }

// Accepting reports whether the cursor sits on a final state.
func (d *DFA) Accepting() bool { return !d.dead && d.IsFinal(d.cur) }

// Lexeme returns the runes consumed since the last Reset.
func (d *DFA) Lexeme() string { return d.lexeme.String() }

// Accepts runs s from the initial state. It resets the cursor.
func (d *DFA) Accepts(s string) bool {
	d.Reset()
	for _, r := range s {
		d.Move(r)
		if d.dead {
			return false
		}
	}
	return d.Accepting()
}

func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "states=%d finals=%v", d.numStates, d.Finals())
	for s := 0; s < d.numStates; s++ {
		for _, r := range d.alphabet {
			if to, ok := d.trans[dfaKey{s, r}]; ok {
				fmt.Fprintf(&b, " %d-%c->%d", s, r, to)
			}
		}
	}
	return b.String()
}
