package frontend

import (
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/frontend/types"
	"github.com/cottand/coeffects/internal/log"
)

var logger = log.DefaultLogger.With("section", "inference.check")

// Result is a solved constraint set
type Result struct {
	// Subst assigns type variables
	Subst types.Subst
	// Coeffects are the coeffect equalities found while unifying types
	Coeffects []ir.CoeffectConstraint
	// Solution assigns the coeffect variables of Coeffects
	Solution CoeffectSolution
}

// Check unifies constraints, then solves the coeffect equalities unification
// produced with analysis. The first failure aborts the whole check.
func Check(analysis Analysis, constraints []ir.TypeConstraint) (*Result, error) {
	subst, coeffects, err := types.Solve(constraints, types.EmptySubst(), nil)
	if err != nil {
		return nil, err
	}
	solution, err := analysis.Solve(coeffects)
	if err != nil {
		return nil, err
	}
	logger.Debug("checked constraints", "analysis", analysis.Name(), "types", subst.Len(), "coeffects", len(coeffects))
	return &Result{
		Subst:     subst,
		Coeffects: coeffects,
		Solution:  solution,
	}, nil
}

// Normalize resolves t under the result, with readable variable names and evaluated coeffects
func (r *Result) Normalize(t ir.Type) (ir.Type, error) {
	return types.Normalize(r.Solution.Display, r.Subst, t)
}
