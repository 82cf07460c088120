package dataflow

import (
	"errors"
	"iter"

	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/internal/log"
	"github.com/cottand/coeffects/util"
)

var logger = log.DefaultLogger.With("section", "coeffects.dataflow")

const invalidLabel = "invalid dataflow constraint"

// Solution is the result of solving dataflow constraints
type Solution struct {
	Assignments Assignments
}

// oriented is a constraint whose variable side has been found
type oriented struct {
	variable string
	value    ir.Coeffect
}

type solver struct {
	assign      util.Assigner[uint]
	constraints []oriented
}

// Solve finds how many past values each coeffect variable stands for.
//
// Variable-to-variable constraints make their variables equivalent, and so
// does merge('a, 'b) = 'c, for all three of a, b and c. Constraints
// mentioning none are skipped. Every other constraint must have a variable
// on one side, with merge('a, 'b) standing for 'a, and assigns the value of
// its other side to that variable until the assignments stop changing.
func Solve(constraints []ir.CoeffectConstraint) (*Solution, error) {
	var pairs []util.Pair[string, string]
	var remaining []oriented

	for _, c := range constraints {
		if isNone(c.Left) || isNone(c.Right) {
			continue
		}
		if equivalences, ok := equivalencesOf(c); ok {
			pairs = append(pairs, equivalences...)
			continue
		}
		o, ok := orient(c)
		if !ok {
			return nil, cferr.New(cferr.NewInvalidConstraint{Label: invalidLabel, First: c.Left, Second: c.Right})
		}
		remaining = append(remaining, o)
	}
	logger.Debug("solving dataflow constraints", "equivalences", len(pairs), "constraints", len(remaining))

	s := solver{
		assign:      util.BuildAssigner[uint](pairs),
		constraints: remaining,
	}
	assigns, err := util.FixedPoint(EmptyAssignments(), assignmentsEqual, s.pass)
	if errors.Is(err, util.ErrNoFixedPoint) {
		return nil, cferr.New(cferr.NewNonTermination{Operation: "dataflow solving", Fuel: util.DefaultFuel})
	}
	if err != nil {
		return nil, err
	}
	return &Solution{Assignments: assigns}, nil
}

func isNone(c ir.Coeffect) bool {
	_, ok := c.(*ir.NoCoeffect)
	return ok
}

// mergedVars returns the operands of c if it is a merge of two variables
func mergedVars(c ir.Coeffect) (string, string, bool) {
	merge, ok := c.(*ir.Merge)
	if !ok {
		return "", "", false
	}
	l, lok := merge.Left.(*ir.CoeffectVar)
	r, rok := merge.Right.(*ir.CoeffectVar)
	if !lok || !rok {
		return "", "", false
	}
	return l.Name, r.Name, true
}

// equivalencesOf returns the variables c makes equivalent, if c only relates variables
func equivalencesOf(c ir.CoeffectConstraint) ([]util.Pair[string, string], bool) {
	left, leftIsVar := c.Left.(*ir.CoeffectVar)
	right, rightIsVar := c.Right.(*ir.CoeffectVar)
	if leftIsVar && rightIsVar {
		return []util.Pair[string, string]{util.NewPair(left.Name, right.Name)}, true
	}
	if v1, v2, ok := mergedVars(c.Left); ok && rightIsVar {
		return []util.Pair[string, string]{util.NewPair(v1, v2), util.NewPair(v1, right.Name)}, true
	}
	if v1, v2, ok := mergedVars(c.Right); ok && leftIsVar {
		return []util.Pair[string, string]{util.NewPair(v1, v2), util.NewPair(v1, left.Name)}, true
	}
	return nil, false
}

func orient(c ir.CoeffectConstraint) (oriented, bool) {
	left, right := c.Left, c.Right
	// merge('a, 'b) = c becomes 'a = c, 'a and 'b being equivalent already
	if v1, _, ok := mergedVars(left); ok {
		left = &ir.CoeffectVar{Name: v1}
	}
	if v1, _, ok := mergedVars(right); ok {
		right = &ir.CoeffectVar{Name: v1}
	}
	if v, ok := left.(*ir.CoeffectVar); ok {
		return oriented{variable: v.Name, value: right}, true
	}
	if v, ok := right.(*ir.CoeffectVar); ok {
		return oriented{variable: v.Name, value: left}, true
	}
	return oriented{}, false
}

// pass applies every constraint once
func (s solver) pass(assigns Assignments) (Assignments, error) {
	for _, c := range s.constraints {
		value, err := Evaluate(assigns, c.value)
		if err != nil {
			return nil, err
		}
		assigns = s.assign(c.variable, value, assigns)
	}
	return assigns, nil
}

// Value returns the number of past values assigned to the coeffect variable name
func (s *Solution) Value(name string) (uint, bool) {
	return s.Assignments.Get(name)
}

// Display evaluates c and turns the result back into a coeffect
func (s *Solution) Display(c ir.Coeffect) (ir.Coeffect, error) {
	value, err := Evaluate(s.Assignments, c)
	if err != nil {
		return nil, err
	}
	return &ir.Past{N: value}, nil
}

// Assigned iterates the display form of every assigned variable, in name order
func (s *Solution) Assigned() iter.Seq2[string, ir.Coeffect] {
	return func(yield func(string, ir.Coeffect) bool) {
		for name, value := range util.SortedMapAll(s.Assignments) {
			if !yield(name, &ir.Past{N: value}) {
				return
			}
		}
	}
}
