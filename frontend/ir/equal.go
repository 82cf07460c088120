package ir

import "slices"

// TypesEqual reports whether a and b are the same type, structurally
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	// hashes cover the whole tree, so they are only compared once, at the root
	if a.Hash() != b.Hash() {
		return false
	}
	return typesEqual(a, b)
}

// CoeffectsEqual reports whether a and b are the same coeffect term, structurally
func CoeffectsEqual(a, b Coeffect) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Hash() != b.Hash() {
		return false
	}
	return coeffectsEqual(a, b)
}

func typesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *TypeVar:
		b, ok := b.(*TypeVar)
		return ok && a.Name == b.Name
	case *Primitive:
		b, ok := b.(*Primitive)
		return ok && a.Name == b.Name
	case *Tuple:
		b, ok := b.(*Tuple)
		return ok && slices.EqualFunc(a.Elems, b.Elems, typesEqual)
	case *FnType:
		b, ok := b.(*FnType)
		return ok &&
			coeffectsEqual(a.Coeffects.Decl, b.Coeffects.Decl) &&
			coeffectsEqual(a.Coeffects.Call, b.Coeffects.Call) &&
			typesEqual(a.Arg, b.Arg) &&
			typesEqual(a.Result, b.Result)
	case *Comonad:
		b, ok := b.(*Comonad)
		return ok && coeffectsEqual(a.Coeffect, b.Coeffect) && typesEqual(a.Inner, b.Inner)
	}
	return false
}

func coeffectsEqual(a, b Coeffect) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Use:
		_, ok := b.(*Use)
		return ok
	case *Ignore:
		_, ok := b.(*Ignore)
		return ok
	case *NoCoeffect:
		_, ok := b.(*NoCoeffect)
		return ok
	case *Past:
		b, ok := b.(*Past)
		return ok && a.N == b.N
	case *ImplicitParam:
		b, ok := b.(*ImplicitParam)
		return ok && a.Name == b.Name && typesEqual(a.Type, b.Type)
	case *CoeffectVar:
		b, ok := b.(*CoeffectVar)
		return ok && a.Name == b.Name
	case *Merge:
		b, ok := b.(*Merge)
		return ok && coeffectsEqual(a.Left, b.Left) && coeffectsEqual(a.Right, b.Right)
	case *Split:
		b, ok := b.(*Split)
		return ok && coeffectsEqual(a.Left, b.Left) && coeffectsEqual(a.Right, b.Right)
	case *Seq:
		b, ok := b.(*Seq)
		return ok && coeffectsEqual(a.Left, b.Left) && coeffectsEqual(a.Right, b.Right)
	}
	return false
}
