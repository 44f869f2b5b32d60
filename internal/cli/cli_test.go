package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	u "github.com/araddon/gou"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsInOne = `name: A
states: q0, q1
alphabet: "0, 1"
start: q0
accept: q1
transitions:
  - q0,0->q0
  - q0,1->q1
  - q1,0->q0
  - q1,1->q1
`

const buggy = `name: B
states: q0, q1
alphabet: "0, 1"
start: q0
accept: q1
transitions:
  - q0,0->q1
  - q0,1->q1
  - q1,0->q0
  - q1,1->q1
`

const withExtraSymbol = `name: C
states: q0, q1
alphabet: "0, 1, 2"
start: q0
accept: q1
transitions:
  - q0,0->q0
  - q0,1->q1
  - q1,0->q0
  - q1,1->q1
`

func TestMain(m *testing.M) {
	u.SetupLogging("error")
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), append([]string{"-loglevel", "error"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Equivalent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", endsInOne)
	c := writeFile(t, dir, "c.yaml", withExtraSymbol)

	code, out, _ := run(t, a, c)
	assert.Equal(t, ExitEquivalent, code)
	assert.Contains(t, out, "EQUIVALENT\n")
	assert.NotContains(t, out, "NOT EQUIVALENT")
}

func TestRun_NotEquivalent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", endsInOne)
	b := writeFile(t, dir, "b.yaml", buggy)

	code, out, _ := run(t, a, b)
	assert.Equal(t, ExitNotEquivalent, code)
	assert.Contains(t, out, "NOT EQUIVALENT\n")
	assert.Contains(t, out, "counterexample: \"0\"\n")
	assert.Contains(t, out, "A rejects, B accepts\n")
}

func TestRun_Word(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", endsInOne)
	b := writeFile(t, dir, "b.yaml", buggy)

	_, out, _ := run(t, "-word", "01", a, b)
	assert.Contains(t, out, "word \"01\": A accepts, B accepts\n")
	assert.Contains(t, out, "the automata agree on this word\n")

	_, out, _ = run(t, "-word", "", a, b)
	assert.Contains(t, out, "word ε: A rejects, B rejects\n")

	_, out, _ = run(t, "-word", "0", a, b)
	assert.Contains(t, out, "the automata disagree on this word\n")
}

func TestRun_InvalidInput(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", endsInOne)
	bad := writeFile(t, dir, "bad.yaml", "states: q0\nstart: q1\n")

	code, _, stderr := run(t, a, bad)
	assert.Equal(t, ExitInvalidInput, code)
	assert.Equal(t, 1, strings.Count(stderr, `start state "q1" is not a declared state`))

	code, _, _ = run(t, a)
	assert.Equal(t, ExitInvalidInput, code)

	code, _, _ = run(t, "-nope", a, a)
	assert.Equal(t, ExitInvalidInput, code)

	code, _, _ = run(t, a, filepath.Join(dir, "missing.yaml"))
	assert.Equal(t, ExitInvalidInput, code)
}

func TestExecute_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", endsInOne)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	code, err := Execute(ctx, Invocation{PathA: a, PathB: a}, &stdout)
	assert.Equal(t, ExitInternalError, code)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer
	inv, err := ParseArgs([]string{"-word", "", "-dump", "x.yaml", "y.yaml"}, &stderr)
	require.NoError(t, err)
	assert.True(t, inv.HasWord)
	assert.True(t, inv.Dump)
	assert.Equal(t, "x.yaml", inv.PathA)
	assert.Equal(t, "y.yaml", inv.PathB)

	inv, err = ParseArgs([]string{"x.yaml", "y.yaml"}, &stderr)
	require.NoError(t, err)
	assert.False(t, inv.HasWord)
}

func TestSplitWord(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "1"}, SplitWord([]string{"0", "1"}, "011"))
	assert.Equal(t, []string{"go", "stop", "go"}, SplitWord([]string{"go", "stop"}, "go, stop,go"))
	assert.Empty(t, SplitWord([]string{"a"}, ""))
	assert.Equal(t, "go,stop", joinWord([]string{"go", "stop"}, []string{"go", "stop"}))
	assert.Equal(t, "ab", joinWord([]string{"a", "b"}, []string{"a", "b"}))
}
