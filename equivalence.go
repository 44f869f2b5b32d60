package dfa

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// How many product pairs EquivalentContext dequeues between two context checks.
const checkInterval = 1024

// Result is the verdict of an equivalence check.
type Result struct {
	Equivalent bool

	// Shortest word on which the automata disagree; nil when Equivalent. An empty, non nil witness
	// means the start states already disagree.
	Witness []string

	// Number of product pairs enqueued by the search.
	Explored int
}

// Word Returns the witness symbols joined together.
func (r *Result) Word() string {
	return strings.Join(r.Witness, "")
}

// Equivalent Decides whether a and b accept the same language. Both automata are first copied, brought
// to the union of their alphabets and completed with a sink; the originals are never modified. The
// product automaton is then searched breadth first from the pair of start states. Symbols are tried in
// sorted order, so a returned witness is the shortest distinguishing word and the smallest one in
// lexicographic order among those.
//
// Panics if either automaton is nil or has no states.
func Equivalent(a, b *DFA) *Result {
	res, _ := equivalent(context.Background(), a, b)
	return res
}

// EquivalentContext is Equivalent with cancellation: ctx is polled while the product space is searched,
// and its error is returned if it is done before a verdict is reached.
func EquivalentContext(ctx context.Context, a, b *DFA) (*Result, error) {
	return equivalent(ctx, a, b)
}

// Predecessor link of a product pair: the pair it was first reached from, and the symbol used.
type link struct {
	prev   int
	symbol int
}

func equivalent(ctx context.Context, a, b *DFA) (*Result, error) {
	mustBeUsable(a, "first")
	mustBeUsable(b, "second")

	ca, cb := a.Clone(), b.Clone()
	ca.UnionAlphabet(cb)
	ca.CompleteWithSink()
	cb.CompleteWithSink()

	alphabet := ca.Alphabet()
	slices.Sort(alphabet)
	colA := make([]int, len(alphabet))
	colB := make([]int, len(alphabet))
	for i, symbol := range alphabet {
		colA[i] = ca.symbolIndex[symbol]
		colB[i] = cb.symbolIndex[symbol]
	}

	nb := cb.NumStates()
	pair := func(p, q int) int {
		return p*nb + q
	}

	startPair := pair(ca.start, cb.start)
	seen := bitset.New(uint(ca.NumStates() * nb))
	// Indexed by pair code; grown as pairs are discovered.
	parent := make([]link, 0)

	workList := make([]int, 0)
	workList = append(workList, startPair)
	seen.Set(uint(startPair))

	res := &Result{Explored: 1}
	for n := 0; len(workList) > 0; n++ {
		if n%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := workList[0]
		workList = workList[1:]
		p, q := current/nb, current%nb

		if ca.accepts(p) != cb.accepts(q) {
			res.Witness = witness(parent, startPair, current, alphabet)
			return res, nil
		}

		for i := range alphabet {
			np := ca.transitions[p][colA[i]]
			nq := cb.transitions[q][colB[i]]
			if np == -1 || nq == -1 {
				panic(fmt.Sprintf("dfa: completed automata have no transition on %q from (%q, %q)",
					alphabet[i], ca.labels[p], cb.labels[q]))
			}
			next := pair(np, nq)
			if seen.Test(uint(next)) {
				continue
			}
			seen.Set(uint(next))
			parent = grow(parent, next+1, link{prev: -1})
			parent[next] = link{prev: current, symbol: i}
			workList = append(workList, next)
			res.Explored++
		}
	}

	res.Equivalent = true
	return res, nil
}

// witness walks the predecessor links from end back to start and returns the symbols in input order.
func witness(parent []link, start, end int, alphabet []string) []string {
	word := make([]string, 0)
	for current := end; current != start; {
		if current >= len(parent) || parent[current].prev == -1 {
			panic("dfa: broken predecessor chain in product search")
		}
		l := parent[current]
		word = append(word, alphabet[l.symbol])
		current = l.prev
	}
	slices.Reverse(word)
	return word
}

func mustBeUsable(a *DFA, which string) {
	if a == nil {
		panic("dfa: " + which + " automaton is nil")
	}
	if a.NumStates() == 0 {
		panic("dfa: " + which + " automaton has no states")
	}
}

// WordResult is the outcome of running one word on two automata.
type WordResult struct {
	A, B bool
}

// Agree Returns true if both automata gave the same answer.
func (w WordResult) Agree() bool {
	return w.A == w.B
}

// CompareWord Runs word on a and b separately. This does not search the product automaton and says
// nothing about equivalence beyond this one word.
func CompareWord(a, b *DFA, word []string) WordResult {
	return WordResult{A: a.Accepts(word), B: b.Accepts(word)}
}
