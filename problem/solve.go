package problem

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"

	"github.com/cottand/coeffects/frontend"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/frontend/types"
	"github.com/cottand/coeffects/internal/log"
	"golang.org/x/sync/errgroup"
)

var logger = log.DefaultLogger.With("section", "problem")

// Outcome is the result of solving a single Problem
type Outcome struct {
	Problem Problem
	// Result is nil when solving failed
	Result *frontend.Result
	// Shown holds the normalised Problem.Show types
	Shown []ir.Type
	Err   error
}

// Solve checks the constraints of p and normalises its Show types
func Solve(p Problem) Outcome {
	o := Outcome{Problem: p}
	res, err := frontend.Check(p.Analysis, p.Constraints)
	if err != nil {
		o.Err = err
		return o
	}
	o.Result = res
	for _, t := range p.Show {
		shown, err := res.Normalize(t)
		if err != nil {
			o.Err = err
			return o
		}
		o.Shown = append(o.Shown, shown)
	}
	return o
}

// SolveAll solves problems concurrently, returning one Outcome per problem in the same order.
// Solving failures are reported in each Outcome; the error is only set when ctx is done.
func SolveAll(ctx context.Context, problems []Problem) ([]Outcome, error) {
	outcomes := make([]Outcome, len(problems))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range problems {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = Solve(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if failures := Failures(outcomes); failures.HasError() {
		logger.Info("some problems could not be solved", "count", len(problems), "failures", failures)
	} else {
		logger.Debug("solved problems", "count", len(problems))
	}
	return outcomes, nil
}

// Failures collects the solving errors of outcomes
func Failures(outcomes []Outcome) *cferr.Errors {
	errs := &cferr.Errors{}
	for _, o := range outcomes {
		var solveErr cferr.SolveError
		if errors.As(o.Err, &solveErr) {
			errs = errs.With(solveErr)
		}
	}
	return errs
}

// Verify compares o against the expectation of its problem, if any
func (o Outcome) Verify() error {
	expect := o.Problem.Expect
	if expect == nil {
		return nil
	}
	if expect.Error != "" {
		if o.Err == nil {
			return fmt.Errorf("expected a %s error, but solving succeeded", expect.Error)
		}
		if got := cferr.CodeOf(o.Err).String(); got != expect.Error {
			return fmt.Errorf("expected a %s error, got %s: %w", expect.Error, got, o.Err)
		}
		return nil
	}
	if o.Err != nil {
		return fmt.Errorf("expected no error: %w", o.Err)
	}

	var errs []error
	if expect.Types != nil {
		shown := make([]string, 0, len(o.Shown))
		for _, t := range o.Shown {
			shown = append(shown, ir.TypeString(t))
		}
		if !slices.Equal(shown, expect.Types) {
			errs = append(errs, fmt.Errorf("expected types %q, got %q", expect.Types, shown))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(expect.Subst)) {
		got := ir.TypeString(types.Apply(o.Result.Subst, &ir.TypeVar{Name: name}))
		if got != expect.Subst[name] {
			errs = append(errs, fmt.Errorf("expected %s = %s, got %s", name, expect.Subst[name], got))
		}
	}
	for _, name := range slices.Sorted(maps.Keys(expect.Coeffects)) {
		c, err := o.Result.Solution.Display(&ir.CoeffectVar{Name: name})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if got := ir.CoeffectString(c); got != expect.Coeffects[name] {
			errs = append(errs, fmt.Errorf("expected '%s = %s, got %s", name, expect.Coeffects[name], got))
		}
	}
	return errors.Join(errs...)
}
