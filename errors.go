package dfa

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is matched by every *MalformedError via errors.Is.
var ErrMalformed = errors.New("malformed automaton")

// MalformedError describes an automaton description that can not be turned into a DFA.
// Field names the offending part of the description (states, alphabet, start, accept,
// transitions, yaml). Line is the 1-based source line when known, 0 otherwise.
type MalformedError struct {
	Automaton string
	Field     string
	Line      int
	Msg       string
	Err       error
}

func (e *MalformedError) Error() string {
	var sb strings.Builder
	if e.Automaton != "" {
		fmt.Fprintf(&sb, "dfa %q: ", e.Automaton)
	}
	if e.Field != "" {
		sb.WriteString(e.Field)
		if e.Line > 0 {
			fmt.Fprintf(&sb, " line %d", e.Line)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(e.Msg)
	if e.Err != nil {
		if e.Msg != "" {
			sb.WriteString(": ")
		}
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(name, field string, line int, format string, args ...any) *MalformedError {
	return &MalformedError{
		Automaton: name,
		Field:     field,
		Line:      line,
		Msg:       fmt.Sprintf(format, args...),
	}
}
