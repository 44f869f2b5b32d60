package dfa

import "strconv"

// Automata makes automata for a few fixed languages.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new automaton with the empty language over the given alphabet.
func (*Automata) MakeEmpty(alphabet ...string) *DFA {
	a := newDFA("empty", 1, len(alphabet))
	for _, symbol := range alphabet {
		a.addSymbol(symbol)
	}
	a.start = a.createState("q0")
	return a
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string. It has no transitions.
func (f *Automata) MakeEmptyString(alphabet ...string) *DFA {
	a := f.MakeEmpty(alphabet...)
	a.name = "empty-string"
	a.isAccept.Set(uint(a.start))
	return a
}

// MakeAnyString
// Returns a new complete automaton that accepts all strings over the given alphabet.
func (f *Automata) MakeAnyString(alphabet ...string) *DFA {
	a := f.MakeEmptyString(alphabet...)
	a.name = "any-string"
	for i := range a.symbols {
		a.transitions[a.start][i] = a.start
	}
	return a
}

// MakeString
// Returns a new automaton that accepts exactly the given word. The alphabet is the set of symbols in word.
func (*Automata) MakeString(word ...string) *DFA {
	a := newDFA("string", len(word)+1, len(word))
	for _, symbol := range word {
		a.addSymbol(symbol)
	}
	state := a.createState("q0")
	a.start = state
	for i, symbol := range word {
		next := a.createState("q" + strconv.Itoa(i+1))
		a.transitions[state][a.symbolIndex[symbol]] = next
		state = next
	}
	a.isAccept.Set(uint(state))
	return a
}
