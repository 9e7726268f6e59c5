package regex

// Determinize converts n into an equivalent DFA by subset construction.
// DFA states are epsilon-closed sets of NFA states, numbered in breadth-first
// discovery order from 0. No minimization is done.
func Determinize(n *NFA) *DFA {
	alphabet := n.Alphabet()
	d := newDFA(alphabet)

	hasFinal := func(set StateSet) bool {
		for id := range set {
			if n.IsFinal(id) {
				return true
			}
		}
		return false
	}

	start := n.EpsilonClosure(NewStateSet(n.Initial()))
	ids := map[string]int{start.Key(): d.addState(hasFinal(start))}
	queue := []StateSet{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		from := ids[cur.Key()]
		for _, sym := range alphabet {
			u := n.EpsilonClosure(n.Move(cur, sym))
			if len(u) == 0 {
				continue
			}
			k := u.Key()
			to, seen := ids[k]
			if !seen {
				to = d.addState(hasFinal(u))
				ids[k] = to
				queue = append(queue, u)
			}
			d.addTransition(from, sym, to)
		}
	}
	return d
}
