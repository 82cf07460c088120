// Package implicit interprets coeffects as the set of implicit parameters a computation depends on
package implicit

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/util"
	"github.com/hashicorp/go-set/v3"
)

// Assignments maps coeffect variables to the implicit parameters they stand for
type Assignments = *immutable.SortedMap[string, *set.Set[string]]

func EmptyAssignments() Assignments {
	return util.NewStringMap[*set.Set[string]]()
}

// Evaluate computes the set of implicit parameters c requires, reading
// coeffect variables from assigns. Unassigned variables require nothing.
//
// The returned set is never shared with assigns.
func Evaluate(assigns Assignments, c ir.Coeffect) (*set.Set[string], error) {
	switch c := c.(type) {
	case *ir.Use, *ir.Ignore:
		return set.New[string](0), nil
	case *ir.ImplicitParam:
		return set.From([]string{c.Name}), nil
	case *ir.Merge:
		return evaluateUnion(assigns, c.Left, c.Right)
	case *ir.Split:
		return evaluateUnion(assigns, c.Left, c.Right)
	case *ir.Seq:
		return evaluateUnion(assigns, c.Left, c.Right)
	case *ir.CoeffectVar:
		return lookup(assigns, c.Name), nil
	}
	return nil, cferr.New(cferr.NewUnexpected{
		Message: fmt.Sprintf("coeffect '%v' cannot be evaluated as implicit parameters", ir.CoeffectString(c)),
	})
}

func evaluateUnion(assigns Assignments, left, right ir.Coeffect) (*set.Set[string], error) {
	l, err := Evaluate(assigns, left)
	if err != nil {
		return nil, err
	}
	r, err := Evaluate(assigns, right)
	if err != nil {
		return nil, err
	}
	return union(l, r), nil
}

func lookup(assigns Assignments, name string) *set.Set[string] {
	if value, ok := assigns.Get(name); ok {
		return value.Copy()
	}
	return set.New[string](0)
}

func union(a, b *set.Set[string]) *set.Set[string] {
	res := a.Copy()
	res.InsertSet(b)
	return res
}

func difference(a, b *set.Set[string]) *set.Set[string] {
	res := a.Copy()
	res.RemoveSet(b)
	return res
}

func setsEqual(a, b *set.Set[string]) bool {
	return a.EqualSet(b)
}

func assignmentsEqual(a, b Assignments) bool {
	return util.SortedMapsEqual(a, b, setsEqual)
}
