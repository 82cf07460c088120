// Package dataflow interprets coeffects as the number of past values a computation needs
package dataflow

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/util"
)

// Assignments maps coeffect variables to a number of past steps
type Assignments = *immutable.SortedMap[string, uint]

func EmptyAssignments() Assignments {
	return util.NewStringMap[uint]()
}

// Evaluate computes how many past values c needs, reading coeffect variables
// from assigns. Unassigned variables need none.
func Evaluate(assigns Assignments, c ir.Coeffect) (uint, error) {
	switch c := c.(type) {
	case *ir.Use, *ir.Ignore:
		return 0, nil
	case *ir.Past:
		return c.N, nil
	case *ir.CoeffectVar:
		value, _ := assigns.Get(c.Name)
		return value, nil
	case *ir.Merge:
		l, r, err := evaluateBoth(assigns, c.Left, c.Right)
		return min(l, r), err
	case *ir.Split:
		l, r, err := evaluateBoth(assigns, c.Left, c.Right)
		return max(l, r), err
	case *ir.Seq:
		l, r, err := evaluateBoth(assigns, c.Left, c.Right)
		return l + r, err
	}
	return 0, cferr.New(cferr.NewUnexpected{
		Message: fmt.Sprintf("coeffect '%v' cannot be evaluated as a dataflow coeffect", ir.CoeffectString(c)),
	})
}

func evaluateBoth(assigns Assignments, left, right ir.Coeffect) (uint, uint, error) {
	l, err := Evaluate(assigns, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := Evaluate(assigns, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func assignmentsEqual(a, b Assignments) bool {
	return util.SortedMapsEqual(a, b, func(x, y uint) bool { return x == y })
}
