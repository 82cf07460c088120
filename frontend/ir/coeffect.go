package ir

import (
	"strconv"
)

// Coeffect is an annotation describing what a computation requires from its context.
// How a Coeffect is interpreted depends on the analysis solving it
type Coeffect interface {
	String() string
	Hash() uint64
	isCoeffect()
}

var (
	_ Coeffect = (*Use)(nil)
	_ Coeffect = (*Ignore)(nil)
	_ Coeffect = (*NoCoeffect)(nil)
	_ Coeffect = (*Past)(nil)
	_ Coeffect = (*ImplicitParam)(nil)
	_ Coeffect = (*CoeffectVar)(nil)
	_ Coeffect = (*Merge)(nil)
	_ Coeffect = (*Split)(nil)
	_ Coeffect = (*Seq)(nil)
)

func CoeffectString(c Coeffect) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}

func coeffectHash(c Coeffect) uint64 {
	if c == nil {
		return 0
	}
	return c.Hash()
}

type Use struct{}

func (*Use) String() string { return "use" }
func (*Use) Hash() uint64   { return hashOf("Use") }
func (*Use) isCoeffect()    {}

type Ignore struct{}

func (*Ignore) String() string { return "ignore" }
func (*Ignore) Hash() uint64   { return hashOf("Ignore") }
func (*Ignore) isCoeffect()    {}

// NoCoeffect marks a position where no constraint applies.
// Solvers skip constraints mentioning it, and it must never be evaluated
type NoCoeffect struct{}

func (*NoCoeffect) String() string { return "none" }
func (*NoCoeffect) Hash() uint64   { return hashOf("NoCoeffect") }
func (*NoCoeffect) isCoeffect()    {}

// Past requires N past versions of a value
type Past struct {
	N uint
}

func (c *Past) String() string { return "past " + strconv.FormatUint(uint64(c.N), 10) }
func (c *Past) Hash() uint64   { return hashOf("Past", uint64(c.N)) }
func (*Past) isCoeffect()      {}

// ImplicitParam requires the implicit parameter Name, of type Type, to be in scope
type ImplicitParam struct {
	Name string
	// Type may be nil if the payload type is not known
	Type Type
}

func (c *ImplicitParam) String() string {
	if c.Type == nil {
		return "?" + c.Name
	}
	return "?" + c.Name + ":" + c.Type.ShowIn(DumbShowCtx, comonadPrecedence)
}
func (c *ImplicitParam) Hash() uint64 {
	if c.Type == nil {
		return hashOf("ImplicitParam" + c.Name)
	}
	return hashOf("ImplicitParam"+c.Name, c.Type.Hash())
}
func (*ImplicitParam) isCoeffect() {}

type CoeffectVar struct {
	Name string
}

func (c *CoeffectVar) String() string { return "'" + c.Name }
func (c *CoeffectVar) Hash() uint64   { return hashOf("CoeffectVar" + c.Name) }
func (*CoeffectVar) isCoeffect()      {}

// Merge combines the requirements of two computations which share a context
type Merge struct {
	Left, Right Coeffect
}

func (c *Merge) String() string {
	return "merge(" + CoeffectString(c.Left) + ", " + CoeffectString(c.Right) + ")"
}
func (c *Merge) Hash() uint64 { return hashOf("Merge", coeffectHash(c.Left), coeffectHash(c.Right)) }
func (*Merge) isCoeffect()    {}

// Split divides a context between two computations
type Split struct {
	Left, Right Coeffect
}

func (c *Split) String() string {
	return "split(" + CoeffectString(c.Left) + ", " + CoeffectString(c.Right) + ")"
}
func (c *Split) Hash() uint64 { return hashOf("Split", coeffectHash(c.Left), coeffectHash(c.Right)) }
func (*Split) isCoeffect()    {}

// Seq composes the requirements of two computations run one after the other
type Seq struct {
	Left, Right Coeffect
}

func (c *Seq) String() string {
	return "seq(" + CoeffectString(c.Left) + ", " + CoeffectString(c.Right) + ")"
}
func (c *Seq) Hash() uint64 { return hashOf("Seq", coeffectHash(c.Left), coeffectHash(c.Right)) }
func (*Seq) isCoeffect()    {}
