package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	intT  = &Primitive{Name: "Int"}
	boolT = &Primitive{Name: "Bool"}
)

func TestTypeString(t *testing.T) {
	testCases := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"variable", &TypeVar{Name: "a"}, "a"},
		{"primitive", intT, "Int"},
		{"tuple", &Tuple{Elems: []Type{intT, boolT}}, "(Int, Bool)"},
		{"empty tuple", &Tuple{}, "()"},
		{
			"function",
			&FnType{Coeffects: CoeffectPair{&Use{}, &CoeffectVar{Name: "r"}}, Arg: intT, Result: boolT},
			"Int -[use | 'r]-> Bool",
		},
		{
			"curried function associates to the right",
			&FnType{
				Coeffects: CoeffectPair{&Use{}, &Use{}},
				Arg:       intT,
				Result:    &FnType{Coeffects: CoeffectPair{&Use{}, &Use{}}, Arg: intT, Result: intT},
			},
			"Int -[use | use]-> Int -[use | use]-> Int",
		},
		{
			"function argument",
			&FnType{
				Coeffects: CoeffectPair{&Use{}, &Use{}},
				Arg:       &FnType{Coeffects: CoeffectPair{&Use{}, &Use{}}, Arg: intT, Result: intT},
				Result:    intT,
			},
			"(Int -[use | use]-> Int) -[use | use]-> Int",
		},
		{
			"comonad",
			&Comonad{Coeffect: &Merge{Left: &Past{N: 1}, Right: &ImplicitParam{Name: "x", Type: intT}}, Inner: intT},
			"[merge(past 1, ?x:Int)]Int",
		},
		{
			"comonad of a function",
			&Comonad{Coeffect: &Ignore{}, Inner: &FnType{Coeffects: CoeffectPair{&NoCoeffect{}, &Use{}}, Arg: intT, Result: intT}},
			"[ignore](Int -[none | use]-> Int)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TypeString(tc.typ))
		})
	}
}

func TestTypesEqual(t *testing.T) {
	fn := func(c Coeffect, arg Type) Type {
		return &FnType{Coeffects: CoeffectPair{c, &Use{}}, Arg: arg, Result: &Tuple{Elems: []Type{arg}}}
	}
	assert.True(t, TypesEqual(fn(&Past{N: 2}, intT), fn(&Past{N: 2}, &Primitive{Name: "Int"})))
	assert.False(t, TypesEqual(fn(&Past{N: 2}, intT), fn(&Past{N: 3}, intT)))
	assert.False(t, TypesEqual(fn(&Past{N: 2}, intT), fn(&Past{N: 2}, boolT)))
	assert.False(t, TypesEqual(&TypeVar{Name: "Int"}, intT))
	assert.False(t, TypesEqual(&Tuple{Elems: []Type{intT}}, &Tuple{Elems: []Type{intT, intT}}))
	assert.True(t, TypesEqual(nil, nil))
	assert.False(t, TypesEqual(intT, nil))
}

func TestCoeffectsEqual(t *testing.T) {
	assert.True(t, CoeffectsEqual(
		&Seq{Left: &CoeffectVar{Name: "a"}, Right: &ImplicitParam{Name: "x", Type: intT}},
		&Seq{Left: &CoeffectVar{Name: "a"}, Right: &ImplicitParam{Name: "x", Type: intT}},
	))
	assert.False(t, CoeffectsEqual(
		&Seq{Left: &CoeffectVar{Name: "a"}, Right: &Use{}},
		&Merge{Left: &CoeffectVar{Name: "a"}, Right: &Use{}},
	))
	assert.False(t, CoeffectsEqual(&ImplicitParam{Name: "x", Type: intT}, &ImplicitParam{Name: "x", Type: boolT}))
	assert.False(t, CoeffectsEqual(&Use{}, &Ignore{}))
}

// countedType is a leaf type counting how often it is hashed
type countedType struct {
	hashes *int
}

func (t *countedType) ShowIn(ShowCtx, uint16) string { return "counted" }
func (t *countedType) Hash() uint64 {
	*t.hashes++
	return hashOf("counted")
}
func (*countedType) isType() {}

func TestTypesEqualHashesOnlyAtTheRoot(t *testing.T) {
	hashes := 0
	nested := func() Type {
		var res Type = &countedType{hashes: &hashes}
		for i := 0; i < 50; i++ {
			res = &Comonad{Coeffect: &Use{}, Inner: &Tuple{Elems: []Type{res}}}
		}
		return res
	}
	a, b := nested(), nested()

	TypesEqual(a, b)
	assert.Equal(t, 2, hashes)
}
