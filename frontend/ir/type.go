package ir

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
)

func TypeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.ShowIn(DumbShowCtx, 0)
}

// Type is a structural type, possibly annotated with coeffects.
// Types are immutable trees: two types are the same type iff they are TypesEqual
type Type interface {
	ShowIn(ctx ShowCtx, outerPrecedence uint16) string
	Hash() uint64
	isType()
}

var (
	_ Type = (*TypeVar)(nil)
	_ Type = (*Primitive)(nil)
	_ Type = (*Tuple)(nil)
	_ Type = (*FnType)(nil)
	_ Type = (*Comonad)(nil)
)

const (
	fnPrecedence      uint16 = 10
	comonadPrecedence uint16 = 30
)

func parensIf(cond bool, s string) string {
	if cond {
		return "(" + s + ")"
	}
	return s
}

func hashOf(tag string, children ...uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(tag))
	arr := make([]byte, 0, 8*len(children))
	for _, c := range children {
		arr = binary.LittleEndian.AppendUint64(arr, c)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

type TypeVar struct {
	Name string
}

func (t *TypeVar) ShowIn(ctx ShowCtx, _ uint16) string { return ctx.NameOf(t) }
func (t *TypeVar) Hash() uint64                        { return hashOf("TypeVar" + t.Name) }
func (t *TypeVar) String() string                      { return TypeString(t) }
func (*TypeVar) isType()                               {}

// Primitive is a named ground type like Int or Bool
type Primitive struct {
	Name string
}

func (t *Primitive) ShowIn(ShowCtx, uint16) string { return t.Name }
func (t *Primitive) Hash() uint64                  { return hashOf("Primitive" + t.Name) }
func (t *Primitive) String() string                { return TypeString(t) }
func (*Primitive) isType()                         {}

type Tuple struct {
	Elems []Type
}

func (t *Tuple) ShowIn(ctx ShowCtx, _ uint16) string {
	sb := strings.Builder{}
	sb.WriteString("(")
	for i, elem := range t.Elems {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.ShowIn(ctx, 0))
	}
	sb.WriteString(")")
	return sb.String()
}

func (t *Tuple) Hash() uint64 {
	hashes := make([]uint64, 0, len(t.Elems))
	for _, elem := range t.Elems {
		hashes = append(hashes, elem.Hash())
	}
	return hashOf("Tuple", hashes...)
}
func (t *Tuple) String() string { return TypeString(t) }
func (*Tuple) isType()          {}

// CoeffectPair annotates a function arrow
type CoeffectPair struct {
	// Decl is the requirement of the declaration site of the function
	Decl Coeffect
	// Call is the requirement of the call site
	Call Coeffect
}

type FnType struct {
	Coeffects CoeffectPair
	Arg       Type
	Result    Type
}

func (t *FnType) ShowIn(ctx ShowCtx, outerPrecedence uint16) string {
	s := t.Arg.ShowIn(ctx, fnPrecedence+1) +
		" -[" + CoeffectString(t.Coeffects.Decl) + " | " + CoeffectString(t.Coeffects.Call) + "]-> " +
		t.Result.ShowIn(ctx, fnPrecedence)
	return parensIf(outerPrecedence > fnPrecedence, s)
}

func (t *FnType) Hash() uint64 {
	return hashOf("FnType", coeffectHash(t.Coeffects.Decl), coeffectHash(t.Coeffects.Call), t.Arg.Hash(), t.Result.Hash())
}
func (t *FnType) String() string { return TypeString(t) }
func (*FnType) isType()          {}

// Comonad wraps a type with the coeffect describing the context needed to use it
type Comonad struct {
	Coeffect Coeffect
	Inner    Type
}

func (t *Comonad) ShowIn(ctx ShowCtx, outerPrecedence uint16) string {
	s := "[" + CoeffectString(t.Coeffect) + "]" + t.Inner.ShowIn(ctx, comonadPrecedence)
	return parensIf(outerPrecedence > comonadPrecedence, s)
}
func (t *Comonad) Hash() uint64   { return hashOf("Comonad", coeffectHash(t.Coeffect), t.Inner.Hash()) }
func (t *Comonad) String() string { return TypeString(t) }
func (*Comonad) isType()          {}

type ShowCtx interface {
	NameOf(typeVar *TypeVar) string
}

type dumbShowCtx struct{}

var DumbShowCtx ShowCtx = (*dumbShowCtx)(nil)

func (*dumbShowCtx) NameOf(typeVar *TypeVar) string { return typeVar.Name }
