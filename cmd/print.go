package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/problem"
)

const (
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// WriteOutcomes prints every outcome to w and returns how many failed.
// Failing means not solving, or not matching the expectation when check is set.
func WriteOutcomes(w io.Writer, outcomes []problem.Outcome, colour, check bool) int {
	p := printer{w: w, colour: colour, check: check}
	failed := 0
	for _, o := range outcomes {
		var verifyErr error
		if check {
			verifyErr = o.Verify()
		}
		p.outcome(o, verifyErr)
		if (check && verifyErr != nil) || (!check && o.Err != nil) {
			failed++
		}
	}
	return failed
}

type printer struct {
	w      io.Writer
	colour bool
	// check reports whether outcomes were compared against their expectation
	check bool
}

func (p printer) paint(code, s string) string {
	if !p.colour {
		return s
	}
	return code + s + ansiReset
}

// outcome prints the solution of o, or why it failed.
// verifyErr is the result of comparing o against its expectation.
func (p printer) outcome(o problem.Outcome, verifyErr error) {
	sb := &strings.Builder{}
	sb.WriteString(p.paint(ansiBold, o.Problem.Name))
	sb.WriteString(" (" + o.Problem.Analysis.Name() + ")\n")

	if o.Err != nil {
		sb.WriteString("  " + p.paint(ansiRed, errorString(o.Err)) + "\n")
	} else {
		for _, t := range o.Shown {
			sb.WriteString("  : " + ir.TypeString(t) + "\n")
		}
		for name, c := range o.Result.Solution.Assigned() {
			sb.WriteString("  '" + name + " = " + ir.CoeffectString(c) + "\n")
		}
	}

	switch {
	case !p.check:
	case verifyErr != nil:
		sb.WriteString("  " + p.paint(ansiRed, "FAIL: "+verifyErr.Error()) + "\n")
	case o.Problem.Expect != nil:
		sb.WriteString("  " + p.paint(ansiGreen, "ok") + "\n")
	}
	_, _ = fmt.Fprint(p.w, sb.String())
}

func errorString(err error) string {
	var solveErr cferr.SolveError
	if errors.As(err, &solveErr) {
		return solveErr.Code().String() + " " + cferr.FormatWithCode(solveErr)
	}
	return err.Error()
}
