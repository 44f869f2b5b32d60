package dfa

// Transition is one (From, Symbol) -> To entry of a description. Line is the 1-based source line it was
// read from, or 0 when it was not read from text.
type Transition struct {
	From   string `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to"`
	Line   int    `yaml:"-"`
}

// Definition is the unvalidated description of one automaton, as read from a file or a form.
type Definition struct {
	Name        string       `yaml:"name,omitempty"`
	States      List         `yaml:"states"`
	Alphabet    List         `yaml:"alphabet"`
	Start       string       `yaml:"start"`
	Accept      List         `yaml:"accept,omitempty"`
	Transitions []Transition `yaml:"transitions,omitempty"`
}

// New builds a DFA from its five components. See Definition.Build for the checks performed.
func New(states, alphabet []string, start string, accepting []string, transitions []Transition) (*DFA, error) {
	def := &Definition{
		States:      states,
		Alphabet:    alphabet,
		Start:       start,
		Accept:      accepting,
		Transitions: transitions,
	}
	return def.Build()
}

// Validate checks the description without building it.
func (d *Definition) Validate() error {
	_, err := d.Build()
	return err
}

// Build validates the description and returns the automaton it describes:
//   - at least one state; no empty state labels or symbols
//   - Start is one of States
//   - every Accept entry is one of States
//   - every transition goes between declared states on a declared symbol
//   - no two transitions leave the same state on the same symbol for different targets
//
// Repeated labels in States, Alphabet and Accept count once. All failures are *MalformedError.
func (d *Definition) Build() (*DFA, error) {
	name := d.Name

	if len(d.States) == 0 {
		return nil, malformed(name, "states", 0, "at least one state is required")
	}

	a := newDFA(name, len(d.States), len(d.Alphabet))
	for _, symbol := range d.Alphabet {
		if symbol == "" {
			return nil, malformed(name, "alphabet", 0, "empty symbol")
		}
		a.addSymbol(symbol)
	}
	for _, label := range d.States {
		if label == "" {
			return nil, malformed(name, "states", 0, "empty state label")
		}
		if _, ok := a.index[label]; ok {
			continue
		}
		a.createState(label)
	}

	if d.Start == "" {
		return nil, malformed(name, "start", 0, "start state is required")
	}
	start, ok := a.index[d.Start]
	if !ok {
		return nil, malformed(name, "start", 0, "start state %q is not a declared state", d.Start)
	}
	a.start = start

	for _, label := range d.Accept {
		s, ok := a.index[label]
		if !ok {
			return nil, malformed(name, "accept", 0, "accept state %q is not a declared state", label)
		}
		a.isAccept.Set(uint(s))
	}

	for _, t := range d.Transitions {
		from, ok := a.index[t.From]
		if !ok {
			return nil, malformed(name, "transitions", t.Line, "unknown state %q", t.From)
		}
		to, ok := a.index[t.To]
		if !ok {
			return nil, malformed(name, "transitions", t.Line, "unknown state %q", t.To)
		}
		i, ok := a.symbolIndex[t.Symbol]
		if !ok {
			return nil, malformed(name, "transitions", t.Line, "symbol %q is not in the alphabet", t.Symbol)
		}
		if prev := a.transitions[from][i]; prev != -1 && prev != to {
			return nil, malformed(name, "transitions", t.Line,
				"state %q already moves to %q on %q, can not also move to %q",
				t.From, a.labels[prev], t.Symbol, t.To)
		}
		a.transitions[from][i] = to
	}

	return a, nil
}

// Builder collects the parts of an automaton and validates them all at once in Finish.
type Builder struct {
	def Definition
}

func NewBuilder(name string) *Builder {
	return &Builder{def: Definition{Name: name}}
}

// States Declares states. The first state declared becomes the start state unless Start is called.
func (b *Builder) States(labels ...string) *Builder {
	b.def.States = append(b.def.States, labels...)
	return b
}

// Symbols Declares alphabet symbols.
func (b *Builder) Symbols(symbols ...string) *Builder {
	b.def.Alphabet = append(b.def.Alphabet, symbols...)
	return b
}

func (b *Builder) Start(label string) *Builder {
	b.def.Start = label
	return b
}

func (b *Builder) Accept(labels ...string) *Builder {
	b.def.Accept = append(b.def.Accept, labels...)
	return b
}

// Transition Adds from --symbol--> to.
func (b *Builder) Transition(from, symbol, to string) *Builder {
	b.def.Transitions = append(b.def.Transitions, Transition{From: from, Symbol: symbol, To: to})
	return b
}

// Finish validates and builds the automaton.
func (b *Builder) Finish() (*DFA, error) {
	def := b.def
	if def.Start == "" && len(def.States) > 0 {
		def.Start = def.States[0]
	}
	return def.Build()
}
