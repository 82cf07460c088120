package types

import (
	"slices"

	"github.com/benbjohnson/immutable"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/internal/log"
	"github.com/cottand/coeffects/util"
)

var (
	unifyLogger     = log.DefaultLogger.With("section", "inference.unify")
	normaliseLogger = log.DefaultLogger.With("section", "inference.normalise")
)

// Subst maps type variable names to the type they stand for
type Subst = *immutable.SortedMap[string, ir.Type]

func EmptySubst() Subst {
	return util.NewStringMap[ir.Type]()
}

// pending is a pair of types left to unify, along with the top-level constraint it came from
type pending struct {
	left, right ir.Type
	origin      ir.TypeConstraint
}

type unifier struct {
	assigns   Subst
	coeffects []ir.CoeffectConstraint
	worklist  *util.Stack[pending]
	fuel      int
}

// Solve unifies every constraint, extending assigns, and returns the
// resulting substitution together with coeffects extended by the coeffect
// equalities found at matching function and comonad types.
//
// Coeffects are not unified here: they are left for whichever coeffect
// analysis the caller runs on them.
//
// The returned substitution is fully resolved, so applying it once to a type
// yields a type which mentions no assigned variable.
func Solve(constraints []ir.TypeConstraint, assigns Subst, coeffects []ir.CoeffectConstraint) (Subst, []ir.CoeffectConstraint, error) {
	if assigns == nil {
		assigns = EmptySubst()
	}
	u := &unifier{
		assigns:   assigns,
		coeffects: slices.Clone(coeffects),
		worklist:  util.NewStack[pending](),
		fuel:      util.DefaultFuel * (1 + len(constraints)),
	}
	for c := range util.Reverse(constraints) {
		u.worklist.Push(pending{left: c.Left, right: c.Right, origin: c})
	}
	unifyLogger.Debug("solving type constraints", "constraints", ir.SlogList(constraints))

	startingFuel := u.fuel
	for {
		p, ok := u.worklist.Pop()
		if !ok {
			break
		}
		u.fuel--
		if u.fuel < 0 {
			return nil, nil, cferr.New(cferr.NewNonTermination{Operation: "type unification", Fuel: startingFuel})
		}
		if err := u.step(p); err != nil {
			unifyLogger.Debug("unification failed", "left", p.left, "right", p.right, "error", err)
			return nil, nil, err
		}
	}

	resolved := EmptySubst()
	for name, t := range util.SortedMapAll(u.assigns) {
		resolved = resolved.Set(name, Apply(u.assigns, t))
	}
	unifyLogger.Debug("solved type constraints", "assigned", resolved.Len(), "coeffects", ir.SlogList(u.coeffects))
	return resolved, u.coeffects, nil
}

func (u *unifier) push(left, right ir.Type, origin ir.TypeConstraint) {
	u.worklist.Push(pending{left: left, right: right, origin: origin})
}

func (u *unifier) step(p pending) error {
	left, right := p.left, p.right
	leftVar, leftIsVar := left.(*ir.TypeVar)
	rightVar, rightIsVar := right.(*ir.TypeVar)

	// assigned variables are resolved one hop at a time: the pair becomes
	// (other side, assignment), which also orients the coeffect equalities found later
	if leftIsVar {
		if t, ok := u.assigns.Get(leftVar.Name); ok {
			u.push(right, t, p.origin)
			return nil
		}
	}
	if rightIsVar {
		if t, ok := u.assigns.Get(rightVar.Name); ok {
			u.push(left, t, p.origin)
			return nil
		}
	}
	if leftIsVar && rightIsVar && leftVar.Name == rightVar.Name {
		return nil
	}
	if leftIsVar {
		return u.bind(leftVar, right, p)
	}
	if rightIsVar {
		return u.bind(rightVar, left, p)
	}

	if ir.TypesEqual(left, right) {
		return nil
	}

	switch left := left.(type) {
	case *ir.FnType:
		if right, ok := right.(*ir.FnType); ok {
			u.push(left.Result, right.Result, p.origin)
			u.push(left.Arg, right.Arg, p.origin)
			u.coeffects = append(u.coeffects,
				ir.CoeffectConstraint{Left: left.Coeffects.Decl, Right: right.Coeffects.Decl},
				ir.CoeffectConstraint{Left: left.Coeffects.Call, Right: right.Coeffects.Call},
			)
			return nil
		}
	case *ir.Tuple:
		if right, ok := right.(*ir.Tuple); ok && len(left.Elems) == len(right.Elems) {
			for i := len(left.Elems) - 1; i >= 0; i-- {
				u.push(left.Elems[i], right.Elems[i], p.origin)
			}
			return nil
		}
	case *ir.Comonad:
		if right, ok := right.(*ir.Comonad); ok {
			u.push(left.Inner, right.Inner, p.origin)
			u.coeffects = append(u.coeffects, ir.CoeffectConstraint{Left: left.Coeffect, Right: right.Coeffect})
			return nil
		}
	}
	return u.mismatch(p, "")
}

func (u *unifier) bind(v *ir.TypeVar, t ir.Type, p pending) error {
	if u.occurs(v.Name, t) {
		return u.mismatch(p, "type variable '"+v.Name+"' occurs in '"+ir.TypeString(t)+"'")
	}
	u.assigns = u.assigns.Set(v.Name, t)
	return nil
}

func (u *unifier) mismatch(p pending, reason string) error {
	if !ir.TypesEqual(p.left, p.origin.Left) || !ir.TypesEqual(p.right, p.origin.Right) {
		if reason != "" {
			reason += ", "
		}
		reason += "in constraint '" + p.origin.String() + "'"
	}
	return cferr.New(cferr.NewTypeMismatch{First: p.left, Second: p.right, Reason: reason})
}

// occurs reports whether the variable name appears in t, looking through assigned variables
func (u *unifier) occurs(name string, t ir.Type) bool {
	switch t := t.(type) {
	case *ir.TypeVar:
		if t.Name == name {
			return true
		}
		if assigned, ok := u.assigns.Get(t.Name); ok {
			return u.occurs(name, assigned)
		}
		return false
	case *ir.Tuple:
		return slices.ContainsFunc(t.Elems, func(elem ir.Type) bool { return u.occurs(name, elem) })
	case *ir.FnType:
		return u.occurs(name, t.Arg) || u.occurs(name, t.Result)
	case *ir.Comonad:
		return u.occurs(name, t.Inner)
	default:
		return false
	}
}

// Apply replaces every assigned variable in t by its assignment, transitively.
// subst must not contain cycles, which Solve guarantees for the substitutions it returns
func Apply(subst Subst, t ir.Type) ir.Type {
	switch t := t.(type) {
	case *ir.TypeVar:
		if assigned, ok := subst.Get(t.Name); ok {
			return Apply(subst, assigned)
		}
		return t
	case *ir.Tuple:
		elems := make([]ir.Type, 0, len(t.Elems))
		for _, elem := range t.Elems {
			elems = append(elems, Apply(subst, elem))
		}
		return &ir.Tuple{Elems: elems}
	case *ir.FnType:
		return &ir.FnType{Coeffects: t.Coeffects, Arg: Apply(subst, t.Arg), Result: Apply(subst, t.Result)}
	case *ir.Comonad:
		return &ir.Comonad{Coeffect: t.Coeffect, Inner: Apply(subst, t.Inner)}
	default:
		return t
	}
}
