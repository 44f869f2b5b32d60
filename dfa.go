package dfa

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// sinkPrefix is the reserved label prefix for the state added by CompleteWithSink. The label is only
// for display; the sink is identified by its index, and freshLabel makes sure the label never collides.
const sinkPrefix = "⊥"

// DFA Represents a deterministic finite automaton over string labelled states and string symbols.
// Labels are interned to dense integer states when the automaton is built; all internal tables are
// indexed by those integers. Use New, NewBuilder or Definition.Build to create one; the zero value is
// not usable.
type DFA struct {
	name string

	// State label for each state index, and the reverse lookup.
	labels []string
	index  map[string]int

	// Symbols in insertion order, and the reverse lookup.
	symbols     []string
	symbolIndex map[string]int

	start int

	isAccept *bitset.BitSet

	// transitions[state][symbol] holds the destination state, or -1 if there is no transition.
	transitions [][]int

	// Index of the state added by CompleteWithSink, or -1.
	sink int
}

func newDFA(name string, numStates, numSymbols int) *DFA {
	return &DFA{
		name:        name,
		labels:      make([]string, 0, numStates),
		index:       make(map[string]int, numStates),
		symbols:     make([]string, 0, numSymbols),
		symbolIndex: make(map[string]int, numSymbols),
		isAccept:    bitset.New(uint(numStates)),
		transitions: make([][]int, 0, numStates),
		sink:        -1,
	}
}

// Create a new state with the given label. The label must not exist yet.
func (a *DFA) createState(label string) int {
	state := len(a.labels)
	a.labels = append(a.labels, label)
	a.index[label] = state

	a.transitions = append(a.transitions, grow(make([]int, 0, len(a.symbols)), len(a.symbols), -1))
	return state
}

// Add a symbol column; every existing state gets a missing transition for it.
func (a *DFA) addSymbol(symbol string) int {
	if i, ok := a.symbolIndex[symbol]; ok {
		return i
	}
	i := len(a.symbols)
	a.symbols = append(a.symbols, symbol)
	a.symbolIndex[symbol] = i
	for s := range a.transitions {
		a.transitions[s] = grow(a.transitions[s], i+1, -1)
	}
	return i
}

// freshLabel returns a label starting with prefix that no state uses yet.
func (a *DFA) freshLabel(prefix string) string {
	label := prefix
	for gen := 1; ; gen++ {
		if _, ok := a.index[label]; !ok {
			return label
		}
		label = prefix + strconv.Itoa(gen)
	}
}

// Name The name given at construction, used in error messages and output.
func (a *DFA) Name() string {
	return a.name
}

// NumStates How many states this automaton has, including a sink once added.
func (a *DFA) NumStates() int {
	return len(a.labels)
}

// NumSymbols How many symbols the alphabet has.
func (a *DFA) NumSymbols() int {
	return len(a.symbols)
}

// States Returns the state labels in index order.
func (a *DFA) States() []string {
	return slices.Clone(a.labels)
}

// Alphabet Returns the symbols in the order they were added.
func (a *DFA) Alphabet() []string {
	return slices.Clone(a.symbols)
}

// Start Returns the label of the initial state.
func (a *DFA) Start() string {
	return a.labels[a.start]
}

// Sink Returns the index of the state added by CompleteWithSink, or -1 if none was added.
func (a *DFA) Sink() int {
	return a.sink
}

// Label Returns the label of the given state index.
func (a *DFA) Label(state int) string {
	return a.labels[state]
}

// IsAccept Returns true if the state with this label exists and is an accept state.
func (a *DFA) IsAccept(label string) bool {
	s, ok := a.index[label]
	return ok && a.isAccept.Test(uint(s))
}

func (a *DFA) accepts(state int) bool {
	return a.isAccept.Test(uint(state))
}

// Step Returns the label of the state reached from label on symbol, and false if there is no such
// transition.
func (a *DFA) Step(label, symbol string) (string, bool) {
	s, ok := a.index[label]
	if !ok {
		return "", false
	}
	next := a.step(s, symbol)
	if next == -1 {
		return "", false
	}
	return a.labels[next], true
}

// step Performs lookup in transitions. Returns -1 for an unknown symbol or a missing transition.
func (a *DFA) step(state int, symbol string) int {
	i, ok := a.symbolIndex[symbol]
	if !ok {
		return -1
	}
	return a.transitions[state][i]
}

// IsComplete Returns true if every (state, symbol) pair has a transition.
func (a *DFA) IsComplete() bool {
	for _, row := range a.transitions {
		if slices.Contains(row, -1) {
			return false
		}
	}
	return true
}

// CompleteWithSink Adds a non accepting sink state that loops on every symbol and sends every missing
// transition to it. The accepted language does not change. Does nothing if the automaton is already
// complete, so calling it twice has no further effect.
func (a *DFA) CompleteWithSink() {
	if a.IsComplete() {
		return
	}

	sink := a.createState(a.freshLabel(sinkPrefix))
	a.isAccept.Clear(uint(sink))
	a.sink = sink

	for _, row := range a.transitions {
		for i, dest := range row {
			if dest == -1 {
				row[i] = sink
			}
		}
	}
}

// UnionAlphabet Makes both automata share the union of their alphabets. Symbols new to an automaton
// start out without transitions, so the accepted languages do not change.
func (a *DFA) UnionAlphabet(other *DFA) {
	for _, symbol := range other.symbols {
		a.addSymbol(symbol)
	}
	for _, symbol := range a.symbols {
		other.addSymbol(symbol)
	}
}

// Accepts Returns true if the given word is accepted by this automaton. A symbol without a transition
// from the current state rejects the word right away; this includes symbols outside the alphabet.
func (a *DFA) Accepts(word []string) bool {
	state := a.start
	for _, symbol := range word {
		state = a.step(state, symbol)
		if state == -1 {
			return false
		}
	}
	return a.accepts(state)
}

// Run Returns true if the given string is accepted, reading one symbol per rune.
func (a *DFA) Run(s string) bool {
	word := make([]string, 0, len(s))
	for _, r := range s {
		word = append(word, string(r))
	}
	return a.Accepts(word)
}

// IsEmpty Returns true if this automaton accepts no strings.
func (a *DFA) IsEmpty() bool {
	if a.accepts(a.start) {
		return false
	}
	if a.isAccept.None() {
		// Common case: no accept states at all
		return true
	}

	workList := make([]int, 0)
	seen := bitset.New(uint(a.NumStates()))
	workList = append(workList, a.start)
	seen.Set(uint(a.start))

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if a.accepts(state) {
			return false
		}

		for _, dest := range a.transitions[state] {
			if dest != -1 && !seen.Test(uint(dest)) {
				workList = append(workList, dest)
				seen.Set(uint(dest))
			}
		}
	}
	return true
}

// Clone Returns a deep copy that can be mutated without affecting a.
func (a *DFA) Clone() *DFA {
	c := &DFA{
		name:        a.name,
		labels:      slices.Clone(a.labels),
		index:       make(map[string]int, len(a.index)),
		symbols:     slices.Clone(a.symbols),
		symbolIndex: make(map[string]int, len(a.symbolIndex)),
		start:       a.start,
		isAccept:    a.isAccept.Clone(),
		transitions: make([][]int, len(a.transitions)),
		sink:        a.sink,
	}
	for k, v := range a.index {
		c.index[k] = v
	}
	for k, v := range a.symbolIndex {
		c.symbolIndex[k] = v
	}
	for s, row := range a.transitions {
		c.transitions[s] = slices.Clone(row)
	}
	return c
}

// Definition Returns a description that builds an automaton equal to this one. A sink added by
// CompleteWithSink is kept as an ordinary state.
func (a *DFA) Definition() *Definition {
	def := &Definition{
		Name:     a.name,
		States:   slices.Clone(a.labels),
		Alphabet: slices.Clone(a.symbols),
		Start:    a.labels[a.start],
	}
	for s, label := range a.labels {
		if a.accepts(s) {
			def.Accept = append(def.Accept, label)
		}
	}
	for s, row := range a.transitions {
		for i, dest := range row {
			if dest == -1 {
				continue
			}
			def.Transitions = append(def.Transitions, Transition{
				From:   a.labels[s],
				Symbol: a.symbols[i],
				To:     a.labels[dest],
			})
		}
	}
	return def
}

func (a *DFA) String() string {
	return fmt.Sprintf("dfa %q: %d states, %d symbols, start %q, %d accepting",
		a.name, a.NumStates(), a.NumSymbols(), a.labels[a.start], a.isAccept.Count())
}
