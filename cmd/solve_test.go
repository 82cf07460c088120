package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solvable = `
problems:
  - name: transitive
    analysis: dataflow
    constraints:
      - [{var: a}, Int]
      - - comonad: {coeffect: {var: r}, inner: {var: b}}
        - comonad: {coeffect: {past: 2}, inner: {var: a}}
    show: [{var: b}]
    expect:
      types: [Int]
`

const unsolvable = `
problems:
  - name: mismatch
    analysis: implicit
    constraints:
      - [Int, Bool]
`

func writeProblems(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runWith(t *testing.T, args ...string) (string, error) {
	out := &bytes.Buffer{}
	SolveCmd.SetOut(out)
	SolveCmd.SetArgs(args)
	t.Cleanup(func() {
		*check = false
		*dump = false
	})
	err := SolveCmd.Execute()
	return out.String(), err
}

func TestSolvePrintsSolution(t *testing.T) {
	out, err := runWith(t, writeProblems(t, solvable))
	assert.NoError(t, err)
	assert.Equal(t, "transitive (dataflow)\n  : Int\n  'r = past 2\n", out)
}

func TestSolveCheck(t *testing.T) {
	out, err := runWith(t, "--check", writeProblems(t, solvable))
	assert.NoError(t, err)
	assert.Contains(t, out, "  ok\n")

	out, err = runWith(t, "--check", writeProblems(t, `
problems:
  - name: wrong
    analysis: implicit
    constraints: [[{var: a}, Int]]
    show: [{var: a}]
    expect: {types: [Bool]}
`))
	assert.ErrorContains(t, err, "1 of 1 problems did not match their expectation")
	assert.Contains(t, out, "FAIL: expected types")
}

func TestSolveFailure(t *testing.T) {
	out, err := runWith(t, writeProblems(t, unsolvable))
	assert.ErrorContains(t, err, "1 of 1 problems could not be solved")
	assert.Contains(t, out, "mismatch (implicit)\n  type-mismatch (E001)")
}

func TestSolveDump(t *testing.T) {
	out, err := runWith(t, "--dump", writeProblems(t, solvable))
	assert.NoError(t, err)
	assert.Contains(t, out, `Name: (string) (len=10) "transitive"`)
}

func TestSolveMissingFile(t *testing.T) {
	_, err := runWith(t, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "could not load problems")
}
