package regex

import (
	"bufio"
	"fmt"
	"io"
)

// WriteNFADot prints a Graphviz digraph of n to w.
func WriteNFADot(w io.Writer, n *NFA) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for _, s := range n.States().Sorted() {
		fmt.Fprintf(bw, "    n%d [shape=%s];\n", s, shape(n.IsFinal(s)))
		for _, sym := range sortedSymbols(n.trans[s]) {
			for _, to := range n.trans[s][sym] {
				fmt.Fprintf(bw, "    n%d -> n%d [label=\"%s\"];\n", s, to, sym)
			}
		}
	}
	fmt.Fprintf(bw, "    _start [shape=point]; _start -> n%d;\n", n.Initial())
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// WriteDFADot prints a Graphviz digraph of d to w. The dead state is not drawn.
func WriteDFADot(w io.Writer, d *DFA) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "    rankdir=LR;")
	for s := 0; s < d.numStates; s++ {
		fmt.Fprintf(bw, "    q%d [shape=%s];\n", s, shape(d.IsFinal(s)))
		for _, r := range d.alphabet {
			if to, ok := d.Transition(s, r); ok {
				fmt.Fprintf(bw, "    q%d -> q%d [label=\"%c\"];\n", s, to, r)
			}
		}
	}
	fmt.Fprintln(bw, "    _start [shape=point]; _start -> q0;")
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func shape(final bool) string {
	if final {
		return "doublecircle"
	}
	return "circle"
}
