package frontend

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cottand/coeffects/frontend/coeffects/dataflow"
	"github.com/cottand/coeffects/frontend/coeffects/implicit"
	"github.com/cottand/coeffects/frontend/ir"
)

// CoeffectSolution is the assignment of coeffect variables an Analysis found
type CoeffectSolution interface {
	// Display evaluates a coeffect under the solution, and expresses the result as a coeffect
	Display(ir.Coeffect) (ir.Coeffect, error)
	// Assigned iterates the display form of every assigned coeffect variable, in name order
	Assigned() iter.Seq2[string, ir.Coeffect]
}

// Analysis is an interpretation of coeffects, able to solve coeffect equalities
type Analysis interface {
	Name() string
	Solve([]ir.CoeffectConstraint) (CoeffectSolution, error)
}

var (
	// ImplicitParams treats coeffects as the implicit parameters a computation needs
	ImplicitParams Analysis = implicitParams{}
	// Dataflow treats coeffects as the number of past values a computation needs
	Dataflow Analysis = dataflowAnalysis{}
)

var analyses = []Analysis{ImplicitParams, Dataflow}

func AnalysisByName(name string) (Analysis, error) {
	idx := slices.IndexFunc(analyses, func(a Analysis) bool { return a.Name() == name })
	if idx < 0 {
		names := make([]string, 0, len(analyses))
		for _, a := range analyses {
			names = append(names, a.Name())
		}
		return nil, fmt.Errorf("unknown analysis '%s', expected one of: %s", name, strings.Join(names, ", "))
	}
	return analyses[idx], nil
}

type implicitParams struct{}

func (implicitParams) Name() string { return "implicit" }
func (implicitParams) Solve(constraints []ir.CoeffectConstraint) (CoeffectSolution, error) {
	solution, err := implicit.Solve(constraints)
	if err != nil {
		return nil, err
	}
	return solution, nil
}

type dataflowAnalysis struct{}

func (dataflowAnalysis) Name() string { return "dataflow" }
func (dataflowAnalysis) Solve(constraints []ir.CoeffectConstraint) (CoeffectSolution, error) {
	solution, err := dataflow.Solve(constraints)
	if err != nil {
		return nil, err
	}
	return solution, nil
}
