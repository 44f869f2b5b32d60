// Package cli implements the dfaeq command: load two automata, optionally run a word on both, and
// decide whether they are equivalent.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	u "github.com/araddon/gou"
	"github.com/kr/pretty"

	"github.com/geange/dfa"
)

// Exit codes.
const (
	ExitEquivalent    = 0
	ExitNotEquivalent = 1
	ExitInvalidInput  = 2
	ExitInternalError = 3
)

// Invocation is a parsed command line.
type Invocation struct {
	PathA    string
	PathB    string
	Word     string
	HasWord  bool
	Timeout  time.Duration
	LogLevel string
	Dump     bool
}

// ParseArgs parses args (without the program name). Usage and flag errors are written to stderr.
func ParseArgs(args []string, stderr io.Writer) (Invocation, error) {
	var inv Invocation

	fs := flag.NewFlagSet("dfaeq", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&inv.Word, "word", "", "word to run on both automata")
	fs.DurationVar(&inv.Timeout, "timeout", 30*time.Second, "give up on the equivalence check after this long (0 for no limit)")
	fs.StringVar(&inv.LogLevel, "loglevel", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&inv.Dump, "dump", false, "dump the loaded automata at debug level")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: dfaeq [flags] A.yaml B.yaml")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return inv, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "word" {
			inv.HasWord = true
		}
	})
	if fs.NArg() != 2 {
		fs.Usage()
		return inv, fmt.Errorf("expected 2 automaton files, got %d", fs.NArg())
	}
	inv.PathA, inv.PathB = fs.Arg(0), fs.Arg(1)
	return inv, nil
}

// Run is the command entry point. It returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := ParseArgs(args, stderr)
	if err != nil {
		return ExitInvalidInput
	}
	u.SetupLogging(inv.LogLevel)
	u.SetColorIfTerminal()

	code, err := Execute(ctx, inv, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
	}
	return code
}

// Execute loads both automata and reports on them to stdout.
func Execute(ctx context.Context, inv Invocation, stdout io.Writer) (int, error) {
	a, err := load(inv.PathA, inv.Dump)
	if err != nil {
		return ExitInvalidInput, err
	}
	b, err := load(inv.PathB, inv.Dump)
	if err != nil {
		return ExitInvalidInput, err
	}

	if inv.HasWord {
		word := SplitWord(unionAlphabet(a, b), inv.Word)
		res := dfa.CompareWord(a, b, word)
		fmt.Fprintf(stdout, "word %s: %s %s, %s %s\n",
			quoteWord(inv.Word), a.Name(), verdict(res.A), b.Name(), verdict(res.B))
		if res.Agree() {
			fmt.Fprintln(stdout, "the automata agree on this word")
		} else {
			fmt.Fprintln(stdout, "the automata disagree on this word")
		}
	}

	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	start := time.Now()
	u.Infof("checking equivalence of %s and %s", a.Name(), b.Name())
	res, err := dfa.EquivalentContext(ctx, a, b)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ExitInternalError, fmt.Errorf("equivalence check timed out after %v", inv.Timeout)
		}
		return ExitInternalError, err
	}
	u.Debugf("explored %d product states in %v", res.Explored, time.Since(start))

	if res.Equivalent {
		fmt.Fprintln(stdout, "EQUIVALENT")
		fmt.Fprintln(stdout, "both automata accept exactly the same language")
		return ExitEquivalent, nil
	}

	fmt.Fprintln(stdout, "NOT EQUIVALENT")
	fmt.Fprintf(stdout, "counterexample: %s\n", quoteWord(joinWord(unionAlphabet(a, b), res.Witness)))
	fmt.Fprintf(stdout, "%s %s, %s %s\n",
		a.Name(), verdict(a.Accepts(res.Witness)), b.Name(), verdict(b.Accepts(res.Witness)))
	return ExitNotEquivalent, nil
}

func load(path string, dump bool) (*dfa.DFA, error) {
	a, err := dfa.LoadFile(path)
	if err != nil {
		return nil, err
	}
	u.Infof("loaded %v", a)
	if a.IsEmpty() {
		u.Warnf("%s accepts no words", a.Name())
	}
	if dump {
		u.Debugf("%s", pretty.Sprint(a.Definition()))
	}
	return a, nil
}

// SplitWord turns the text of a word into symbols. If every symbol of alphabet is a single rune the word
// is read one rune at a time; otherwise symbols are separated by commas.
func SplitWord(alphabet []string, s string) []string {
	for _, symbol := range alphabet {
		if utf8.RuneCountInString(symbol) != 1 {
			return dfa.ParseList(s)
		}
	}
	word := make([]string, 0, len(s))
	for _, r := range s {
		word = append(word, string(r))
	}
	return word
}

// joinWord is the inverse of SplitWord.
func joinWord(alphabet []string, word []string) string {
	for _, symbol := range alphabet {
		if utf8.RuneCountInString(symbol) != 1 {
			return strings.Join(word, ",")
		}
	}
	return strings.Join(word, "")
}

func unionAlphabet(a, b *dfa.DFA) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, a.NumSymbols()+b.NumSymbols())
	for _, symbol := range append(a.Alphabet(), b.Alphabet()...) {
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}
	return out
}

func verdict(accepted bool) string {
	if accepted {
		return "accepts"
	}
	return "rejects"
}

func quoteWord(w string) string {
	if w == "" {
		return "ε"
	}
	return strconv.Quote(w)
}
