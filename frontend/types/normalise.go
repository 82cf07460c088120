package types

import (
	"log/slog"

	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/cottand/coeffects/util"
)

// CoeffectEvaluator resolves a coeffect to the value an analysis gives it,
// expressed back as a coeffect so it can be displayed
type CoeffectEvaluator func(ir.Coeffect) (ir.Coeffect, error)

// IdentityEvaluator leaves coeffects untouched
func IdentityEvaluator(c ir.Coeffect) (ir.Coeffect, error) { return c, nil }

// Normalize applies solution to t, renames the free type variables left to
// a, b, c, ... in order of first occurrence, and rewrites every coeffect with eval.
//
// Names are only consistent within a single call.
func Normalize(eval CoeffectEvaluator, solution Subst, t ir.Type) (res ir.Type, err error) {
	if solution == nil {
		solution = EmptySubst()
	}
	n := typeNormaliser{
		Logger:    normaliseLogger,
		eval:      eval,
		solution:  solution,
		names:     make(map[string]string),
		resolving: util.NewEmptySet[string](),
	}
	defer func() {
		n.Debug("normalised type", "type", t, "result", res, "error", err)
	}()
	return n.processType(t)
}

type typeNormaliser struct {
	*slog.Logger
	eval     CoeffectEvaluator
	solution Subst
	// names holds the canonical name given to each free variable so far
	names map[string]string
	// resolving holds the variables whose assignment is being normalised
	resolving util.MSet[string]
}

func (n typeNormaliser) processType(t ir.Type) (ir.Type, error) {
	switch t := t.(type) {
	case *ir.TypeVar:
		return n.processVar(t)
	case *ir.Primitive:
		return t, nil
	case *ir.Tuple:
		elems := make([]ir.Type, 0, len(t.Elems))
		for _, elem := range t.Elems {
			normalised, err := n.processType(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, normalised)
		}
		return &ir.Tuple{Elems: elems}, nil
	case *ir.FnType:
		decl, err := n.eval(t.Coeffects.Decl)
		if err != nil {
			return nil, err
		}
		call, err := n.eval(t.Coeffects.Call)
		if err != nil {
			return nil, err
		}
		arg, err := n.processType(t.Arg)
		if err != nil {
			return nil, err
		}
		result, err := n.processType(t.Result)
		if err != nil {
			return nil, err
		}
		return &ir.FnType{Coeffects: ir.CoeffectPair{Decl: decl, Call: call}, Arg: arg, Result: result}, nil
	case *ir.Comonad:
		c, err := n.eval(t.Coeffect)
		if err != nil {
			return nil, err
		}
		inner, err := n.processType(t.Inner)
		if err != nil {
			return nil, err
		}
		return &ir.Comonad{Coeffect: c, Inner: inner}, nil
	}
	return nil, cferr.New(cferr.NewUnexpected{Message: "cannot normalise type " + ir.TypeString(t)})
}

func (n typeNormaliser) processVar(v *ir.TypeVar) (ir.Type, error) {
	if assigned, ok := n.solution.Get(v.Name); ok {
		if n.resolving.Contains(v.Name) {
			return nil, cferr.New(cferr.NewUnexpected{Message: "cyclic assignment of type variable '" + v.Name + "'"})
		}
		n.resolving.Add(v.Name)
		defer n.resolving.Remove(v.Name)
		return n.processType(assigned)
	}
	name, ok := n.names[v.Name]
	if !ok {
		name = util.CanonicalName(len(n.names))
		n.names[v.Name] = name
	}
	return &ir.TypeVar{Name: name}, nil
}
