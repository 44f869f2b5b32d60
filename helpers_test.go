package dfa

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// endsInOne accepts the binary strings ending in 1.
func endsInOne(t *testing.T) *DFA {
	t.Helper()
	a, err := NewBuilder("A").
		States("q0", "q1").
		Symbols("0", "1").
		Accept("q1").
		Transition("q0", "0", "q0").
		Transition("q0", "1", "q1").
		Transition("q1", "0", "q0").
		Transition("q1", "1", "q1").
		Finish()
	require.NoError(t, err)
	return a
}

// words returns every word over alphabet of length at most maxLen, shortest first and in
// lexicographic order within a length, alphabet order taken as given.
func words(alphabet []string, maxLen int) [][]string {
	out := [][]string{{}}
	level := [][]string{{}}
	for n := 1; n <= maxLen; n++ {
		next := make([][]string, 0, len(level)*len(alphabet))
		for _, w := range level {
			for _, s := range alphabet {
				nw := make([]string, len(w)+1)
				copy(nw, w)
				nw[len(w)] = s
				next = append(next, nw)
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// randomDFA builds an automaton with numStates states over symbols, leaving roughly one transition
// in five undefined.
func randomDFA(t *testing.T, r *rand.Rand, name string, numStates int, symbols []string) *DFA {
	t.Helper()
	b := NewBuilder(name).Symbols(symbols...)
	for s := 0; s < numStates; s++ {
		label := "s" + strconv.Itoa(s)
		b.States(label)
		if r.Intn(2) == 0 {
			b.Accept(label)
		}
	}
	for s := 0; s < numStates; s++ {
		for _, symbol := range symbols {
			if r.Intn(5) == 0 {
				continue
			}
			b.Transition("s"+strconv.Itoa(s), symbol, "s"+strconv.Itoa(r.Intn(numStates)))
		}
	}
	a, err := b.Finish()
	require.NoError(t, err)
	return a
}
