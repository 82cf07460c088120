package problem

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/cottand/coeffects/frontend"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lambdaFile = `
problems:
  - name: lambda
    analysis: implicit
    constraints:
      - - func:
            arg: &int Int
            result: {var: res}
            coeffects: [{var: decl}, {var: call}]
        - func:
            arg: *int
            result: {tuple: [Bool, *int]}
            coeffects: [{param: {name: x, type: Int}}, {merge: [{param: y}, use]}]
    show:
      - {var: res}
`

func TestParse(t *testing.T) {
	problems, err := Parse([]byte(lambdaFile))
	require.NoError(t, err)
	require.Len(t, problems, 1)

	p := problems[0]
	assert.Equal(t, "lambda", p.Name)
	assert.Equal(t, frontend.ImplicitParams, p.Analysis)
	assert.Nil(t, p.Expect)
	require.Len(t, p.Constraints, 1)
	assert.Equal(t, "Int -['decl | 'call]-> res ~ Int -[?x:Int | merge(?y, use)]-> (Bool, Int)", p.Constraints[0].String())
	require.Len(t, p.Show, 1)
	assert.True(t, ir.TypesEqual(&ir.TypeVar{Name: "res"}, p.Show[0]))
}

func TestParseCoeffects(t *testing.T) {
	testCases := []struct {
		yaml     string
		expected string
	}{
		{"use", "use"},
		{"ignore", "ignore"},
		{"none", "none"},
		{"{past: 3}", "past 3"},
		{"{var: r}", "'r"},
		{"{param: x}", "?x"},
		{"{param: {name: x, type: {tuple: [Int, Int]}}}", "?x:(Int, Int)"},
		{"{split: [use, {seq: [{past: 1}, {var: q}]}]}", "split(use, seq(past 1, 'q))"},
	}
	for _, tc := range testCases {
		t.Run(tc.yaml, func(t *testing.T) {
			file := "problems:\n  - name: c\n    analysis: dataflow\n    constraints:\n      - - comonad: {inner: Int, coeffect: " + tc.yaml + "}\n        - Int\n"
			problems, err := Parse([]byte(file))
			require.NoError(t, err)
			comonad, ok := problems[0].Constraints[0].Left.(*ir.Comonad)
			require.True(t, ok)
			assert.Equal(t, tc.expected, ir.CoeffectString(comonad.Coeffect))
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		contains string
	}{
		{"not yaml", "problems: [", "invalid problem file"},
		{"no name", "problems:\n  - analysis: implicit\n", "has no name"},
		{"no analysis", "problems:\n  - name: p\n", "missing analysis"},
		{"unknown analysis", "problems:\n  - name: p\n    analysis: effects\n", "unknown analysis 'effects'"},
		{"constraint not a pair", "problems:\n  - name: p\n    analysis: implicit\n    constraints: [[Int]]\n", "line 4: expected a list of two elements"},
		{"unknown type kind", "problems:\n  - name: p\n    analysis: implicit\n    constraints:\n      - [{record: Int}, Int]\n", "unknown type kind 'record'"},
		{"unknown coeffect", "problems:\n  - name: p\n    analysis: implicit\n    constraints:\n      - [{comonad: {coeffect: always, inner: Int}}, Int]\n", "unknown coeffect 'always'"},
		{"negative past", "problems:\n  - name: p\n    analysis: dataflow\n    constraints:\n      - [{comonad: {coeffect: {past: -1}, inner: Int}}, Int]\n", "natural number"},
		{"missing field", "problems:\n  - name: p\n    analysis: implicit\n    constraints:\n      - [{func: {arg: Int, result: Int}}, Int]\n", "missing key 'coeffects'"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.file))
			assert.ErrorContains(t, err, tc.contains)
		})
	}
}

func TestParseErrorNamesProblem(t *testing.T) {
	_, err := Parse([]byte("problems:\n  - name: broken\n    analysis: implicit\n    show: [{var: ''}]\n"))
	assert.ErrorContains(t, err, "problem 'broken'")
	assert.ErrorContains(t, err, "show 0")
}

func TestLoadFile(t *testing.T) {
	fsys := fstest.MapFS{"lambda.yaml": {Data: []byte(lambdaFile)}}

	problems, err := LoadFile(fsys, "lambda.yaml")
	require.NoError(t, err)
	assert.Len(t, problems, 1)

	_, err = LoadFile(fsys, "missing.yaml")
	assert.ErrorContains(t, err, "could not read missing.yaml")
}

func TestSolveAll(t *testing.T) {
	problems, err := Parse([]byte(lambdaFile + `
  - name: mismatch
    analysis: dataflow
    constraints:
      - [Int, Bool]
`))
	require.NoError(t, err)

	outcomes, err := SolveAll(context.Background(), problems)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	lambda := outcomes[0]
	assert.NoError(t, lambda.Err)
	require.Len(t, lambda.Shown, 1)
	assert.Equal(t, "(Bool, Int)", ir.TypeString(lambda.Shown[0]))
	call, err := lambda.Result.Solution.Display(&ir.CoeffectVar{Name: "call"})
	assert.NoError(t, err)
	assert.Equal(t, "?y", ir.CoeffectString(call))

	mismatch := outcomes[1]
	assert.Equal(t, "mismatch", mismatch.Problem.Name)
	assert.Nil(t, mismatch.Result)
	assert.Equal(t, cferr.TypeMismatch, cferr.CodeOf(mismatch.Err))

	assert.Len(t, Failures(outcomes).Errors(), 1)
}

func TestSolveAllCancelled(t *testing.T) {
	problems, err := Parse([]byte(lambdaFile))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = SolveAll(ctx, problems)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerify(t *testing.T) {
	problems, err := Parse([]byte(lambdaFile))
	require.NoError(t, err)
	p := problems[0]

	testCases := []struct {
		name     string
		expect   *Expectation
		contains string
	}{
		{name: "no expectation"},
		{name: "matching", expect: &Expectation{
			Types:     []string{"(Bool, Int)"},
			Subst:     map[string]string{"res": "(Bool, Int)"},
			Coeffects: map[string]string{"decl": "?x:Int", "call": "?y", "other": "use"},
		}},
		{name: "wrong type", expect: &Expectation{Types: []string{"Int"}}, contains: "expected types"},
		{name: "wrong subst", expect: &Expectation{Subst: map[string]string{"res": "Int"}}, contains: "expected res = Int, got (Bool, Int)"},
		{name: "wrong coeffect", expect: &Expectation{Coeffects: map[string]string{"call": "use"}}, contains: "expected 'call = use, got ?y"},
		{name: "missing error", expect: &Expectation{Error: "type-mismatch"}, contains: "but solving succeeded"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p.Expect = tc.expect
			err := Solve(p).Verify()
			if tc.contains == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.contains)
			}
		})
	}
}

func TestVerifyErrors(t *testing.T) {
	p := Problem{
		Name:        "mismatch",
		Analysis:    frontend.ImplicitParams,
		Constraints: []ir.TypeConstraint{{Left: &ir.Primitive{Name: "Int"}, Right: &ir.Primitive{Name: "Bool"}}},
	}

	p.Expect = &Expectation{Error: "type-mismatch"}
	assert.NoError(t, Solve(p).Verify())

	p.Expect = &Expectation{Error: "invalid-constraint"}
	assert.ErrorContains(t, Solve(p).Verify(), "expected a invalid-constraint error, got type-mismatch")

	p.Expect = &Expectation{Types: []string{}}
	assert.ErrorContains(t, Solve(p).Verify(), "expected no error")
}
