package implicit

import (
	"errors"
	"iter"

	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/internal/log"
	"github.com/cottand/coeffects/util"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "coeffects.implicit")

const invalidLabel = "invalid implicit parameter constraint"

// Solution is the result of solving implicit parameter constraints
type Solution struct {
	Assignments Assignments
	// paramTypes holds the payload type of every implicit parameter seen in the constraints
	paramTypes map[string]ir.Type
}

type solver struct {
	assign      util.Assigner[*set.Set[string]]
	constraints []ir.CoeffectConstraint
}

// Solve finds the implicit parameters each coeffect variable stands for.
//
// Variable-to-variable constraints make their variables equivalent, and
// constraints mentioning none are skipped. The remaining ones must be one of
//
//	'v = c                  the parameters of c are added to v
//	merge('l, 'r) = c       r gets the parameters of c not already provided by l
//	split(?p, 'v) = c       v gets the parameters of c but p
//
// and are applied until the assignments stop changing.
func Solve(constraints []ir.CoeffectConstraint) (*Solution, error) {
	var pairs []util.Pair[string, string]
	var remaining []ir.CoeffectConstraint
	paramTypes := make(map[string]ir.Type)

	for _, c := range constraints {
		collectParamTypes(c.Left, paramTypes)
		collectParamTypes(c.Right, paramTypes)
		if isNone(c.Left) || isNone(c.Right) {
			continue
		}
		left, leftIsVar := c.Left.(*ir.CoeffectVar)
		right, rightIsVar := c.Right.(*ir.CoeffectVar)
		if leftIsVar && rightIsVar {
			pairs = append(pairs, util.NewPair(left.Name, right.Name))
			continue
		}
		remaining = append(remaining, c)
	}
	logger.Debug("solving implicit parameter constraints", "equivalences", len(pairs), "constraints", ir.SlogList(remaining))

	s := solver{
		assign:      util.BuildAssigner[*set.Set[string]](pairs),
		constraints: remaining,
	}
	assigns, err := util.FixedPoint(EmptyAssignments(), assignmentsEqual, s.pass)
	if errors.Is(err, util.ErrNoFixedPoint) {
		return nil, cferr.New(cferr.NewNonTermination{Operation: "implicit parameter solving", Fuel: util.DefaultFuel})
	}
	if err != nil {
		return nil, err
	}
	return &Solution{Assignments: assigns, paramTypes: paramTypes}, nil
}

func isNone(c ir.Coeffect) bool {
	_, ok := c.(*ir.NoCoeffect)
	return ok
}

// pass applies every constraint once
func (s solver) pass(assigns Assignments) (Assignments, error) {
	var err error
	for _, c := range s.constraints {
		assigns, err = s.apply(c, assigns)
		if err != nil {
			return nil, err
		}
	}
	return assigns, nil
}

func (s solver) apply(c ir.CoeffectConstraint, assigns Assignments) (Assignments, error) {
	switch left := c.Left.(type) {
	case *ir.CoeffectVar:
		value, err := Evaluate(assigns, c.Right)
		if err != nil {
			return nil, err
		}
		return s.assign(left.Name, union(lookup(assigns, left.Name), value), assigns), nil

	case *ir.Merge:
		declVar, declIsVar := left.Left.(*ir.CoeffectVar)
		callVar, callIsVar := left.Right.(*ir.CoeffectVar)
		if !declIsVar || !callIsVar {
			break
		}
		value, err := Evaluate(assigns, c.Right)
		if err != nil {
			return nil, err
		}
		return s.assign(callVar.Name, difference(value, lookup(assigns, declVar.Name)), assigns), nil

	case *ir.Split:
		param, isParam := left.Left.(*ir.ImplicitParam)
		v, isVar := left.Right.(*ir.CoeffectVar)
		if !isParam || !isVar {
			break
		}
		value, err := Evaluate(assigns, c.Right)
		if err != nil {
			return nil, err
		}
		value.Remove(param.Name)
		return s.assign(v.Name, value, assigns), nil
	}
	return nil, cferr.New(cferr.NewInvalidConstraint{Label: invalidLabel, First: c.Left, Second: c.Right})
}

func collectParamTypes(c ir.Coeffect, into map[string]ir.Type) {
	switch c := c.(type) {
	case *ir.ImplicitParam:
		if _, ok := into[c.Name]; !ok && c.Type != nil {
			into[c.Name] = c.Type
		}
	case *ir.Merge:
		collectParamTypes(c.Left, into)
		collectParamTypes(c.Right, into)
	case *ir.Split:
		collectParamTypes(c.Left, into)
		collectParamTypes(c.Right, into)
	case *ir.Seq:
		collectParamTypes(c.Left, into)
		collectParamTypes(c.Right, into)
	}
}

// Value returns the implicit parameters assigned to the coeffect variable name
func (s *Solution) Value(name string) (*set.Set[string], bool) {
	value, ok := s.Assignments.Get(name)
	if !ok {
		return nil, false
	}
	return value.Copy(), true
}

// Display evaluates c and turns the result back into a coeffect:
// use when no parameter is needed, or a merge of the parameters otherwise
func (s *Solution) Display(c ir.Coeffect) (ir.Coeffect, error) {
	value, err := Evaluate(s.Assignments, c)
	if err != nil {
		return nil, err
	}
	local := make(map[string]ir.Type)
	collectParamTypes(c, local)
	return s.fromSet(value, local), nil
}

func (s *Solution) fromSet(value *set.Set[string], local map[string]ir.Type) ir.Coeffect {
	var res ir.Coeffect
	for _, name := range util.SortedSetItems(value) {
		t, ok := local[name]
		if !ok {
			t = s.paramTypes[name]
		}
		param := &ir.ImplicitParam{Name: name, Type: t}
		if res == nil {
			res = param
		} else {
			res = &ir.Merge{Left: res, Right: param}
		}
	}
	if res == nil {
		return &ir.Use{}
	}
	return res
}

// Assigned iterates the display form of every assigned variable, in name order
func (s *Solution) Assigned() iter.Seq2[string, ir.Coeffect] {
	return func(yield func(string, ir.Coeffect) bool) {
		for name, value := range util.SortedMapAll(s.Assignments) {
			if !yield(name, s.fromSet(value, nil)) {
				return
			}
		}
	}
}
