package dfa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// List is a set of labels. In YAML it may be written as a sequence or as a comma separated scalar.
type List []string

func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = ParseList(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a comma separated string", node.Line)
	}
}

// UnmarshalYAML accepts either "state,symbol->state" or a {from, symbol, to} mapping.
func (t *Transition) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, ok := parseTransitionLine(node.Value)
		if !ok {
			return &MalformedError{Field: "transitions", Line: node.Line, Msg: fmt.Sprintf("syntax error: %q", node.Value)}
		}
		*t = parsed
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			switch key.Value {
			case "from", "symbol", "to":
			default:
				return &MalformedError{Field: "transitions", Line: key.Line, Msg: fmt.Sprintf("unknown key %q", key.Value)}
			}
		}
		var m struct {
			From   string `yaml:"from"`
			Symbol string `yaml:"symbol"`
			To     string `yaml:"to"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*t = Transition{From: m.From, Symbol: m.Symbol, To: m.To}
	default:
		return &MalformedError{Field: "transitions", Line: node.Line, Msg: "expected \"state,symbol->state\" or a mapping"}
	}
	t.Line = node.Line
	return nil
}

// ParseList splits a comma separated list, trimming items and dropping blank ones.
func ParseList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseTransitionLine(line string) (Transition, bool) {
	left, right, ok := strings.Cut(line, "->")
	if !ok || strings.Contains(right, "->") {
		return Transition{}, false
	}
	parts := strings.Split(left, ",")
	if len(parts) != 2 {
		return Transition{}, false
	}
	t := Transition{
		From:   strings.TrimSpace(parts[0]),
		Symbol: strings.TrimSpace(parts[1]),
		To:     strings.TrimSpace(right),
	}
	if t.From == "" || t.Symbol == "" || t.To == "" {
		return Transition{}, false
	}
	return t, true
}

// ParseTransitions reads one "state,symbol->state" transition per line. Blank lines and lines starting
// with '#' are skipped. Transition.Line is set to the 1-based line number.
func ParseTransitions(text string) ([]Transition, error) {
	transitions := make([]Transition, 0)
	scanner := bufio.NewScanner(strings.NewReader(text))
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, ok := parseTransitionLine(line)
		if !ok {
			return nil, &MalformedError{Field: "transitions", Line: n, Msg: fmt.Sprintf("syntax error: %q", line)}
		}
		t.Line = n
		transitions = append(transitions, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, &MalformedError{Field: "transitions", Err: err}
	}
	return transitions, nil
}

// Fields holds the raw text of an automaton entry form: comma separated states, alphabet and accept
// states, a start label, and transitions one per line.
type Fields struct {
	States      string
	Alphabet    string
	Start       string
	Accept      string
	Transitions string
}

// ParseFields parses and validates a form. States and Start are required.
func ParseFields(name string, f Fields) (*DFA, error) {
	def := &Definition{
		Name:     name,
		States:   ParseList(f.States),
		Alphabet: ParseList(f.Alphabet),
		Start:    strings.TrimSpace(f.Start),
		Accept:   ParseList(f.Accept),
	}
	if len(def.States) == 0 {
		return nil, malformed(name, "states", 0, "required field is empty")
	}
	if def.Start == "" {
		return nil, malformed(name, "start", 0, "required field is empty")
	}

	transitions, err := ParseTransitions(f.Transitions)
	if err != nil {
		return nil, withName(err, name)
	}
	def.Transitions = transitions
	return def.Build()
}

// LoadDefinition decodes a YAML description. Unknown keys are rejected.
func LoadDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	def := &Definition{}
	if err := dec.Decode(def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &MalformedError{Field: "yaml", Msg: "empty document"}
		}
		var me *MalformedError
		if errors.As(err, &me) {
			return nil, me
		}
		return nil, &MalformedError{Field: "yaml", Err: err}
	}
	return def, nil
}

// LoadFile reads a YAML description from path and builds it. The file name is used as the automaton
// name when the description has none.
func LoadFile(path string) (*DFA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	def, err := LoadDefinition(f)
	if err != nil {
		return nil, withName(err, path)
	}
	if def.Name == "" {
		def.Name = path
	}
	return def.Build()
}

func withName(err error, name string) error {
	var me *MalformedError
	if errors.As(err, &me) && me.Automaton == "" {
		me.Automaton = name
	}
	return err
}
