package frontend_test

import (
	"testing"

	"github.com/cottand/coeffects/frontend"
	"github.com/cottand/coeffects/frontend/cferr"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/stretchr/testify/assert"
)

var (
	intT  = &ir.Primitive{Name: "Int"}
	boolT = &ir.Primitive{Name: "Bool"}
)

func tv(name string) *ir.TypeVar     { return &ir.TypeVar{Name: name} }
func cv(name string) *ir.CoeffectVar { return &ir.CoeffectVar{Name: name} }
func fn(decl, call ir.Coeffect, arg, res ir.Type) *ir.FnType {
	return &ir.FnType{Coeffects: ir.CoeffectPair{Decl: decl, Call: call}, Arg: arg, Result: res}
}

func TestCheckImplicitParams(t *testing.T) {
	// f needs ?x where it is declared, and ?x and ?y where it is called;
	// resolving f against the annotated lambda puts its variables on the left
	constraints := []ir.TypeConstraint{
		{
			Left:  tv("f"),
			Right: fn(&ir.ImplicitParam{Name: "x", Type: intT}, &ir.Merge{Left: &ir.ImplicitParam{Name: "x", Type: intT}, Right: &ir.ImplicitParam{Name: "y", Type: boolT}}, boolT, tv("r")),
		},
		{Left: tv("f"), Right: fn(cv("d"), cv("c"), tv("a"), intT)},
	}
	result, err := frontend.Check(frontend.ImplicitParams, constraints)
	assert.NoError(t, err)
	assert.Len(t, result.Coeffects, 2)

	normalised, err := result.Normalize(tv("f"))
	assert.NoError(t, err)
	assert.Equal(t, "Bool -[?x:Int | merge(?x:Int, ?y:Bool)]-> Int", ir.TypeString(normalised))

	normalised, err = result.Normalize(fn(cv("d"), cv("c"), tv("unknown"), tv("r")))
	assert.NoError(t, err)
	assert.Equal(t, "a -[?x:Int | merge(?x:Int, ?y:Bool)]-> Int", ir.TypeString(normalised))
}

func TestCheckDataflow(t *testing.T) {
	constraints := []ir.TypeConstraint{
		{
			Left:  &ir.Comonad{Coeffect: cv("r"), Inner: tv("a")},
			Right: &ir.Comonad{Coeffect: &ir.Seq{Left: &ir.Past{N: 2}, Right: &ir.Past{N: 3}}, Inner: intT},
		},
	}
	result, err := frontend.Check(frontend.Dataflow, constraints)
	assert.NoError(t, err)

	normalised, err := result.Normalize(&ir.Comonad{Coeffect: cv("r"), Inner: tv("a")})
	assert.NoError(t, err)
	assert.Equal(t, "[past 5]Int", ir.TypeString(normalised))

	assigned := make(map[string]string)
	for name, c := range result.Solution.Assigned() {
		assigned[name] = c.String()
	}
	assert.Equal(t, map[string]string{"r": "past 5"}, assigned)
}

func TestCheckFailures(t *testing.T) {
	testCases := []struct {
		name        string
		analysis    frontend.Analysis
		constraints []ir.TypeConstraint
		errCode     cferr.ErrCode
	}{
		{
			name:     "implicit parameters resolved onto a variable",
			analysis: frontend.ImplicitParams,
			constraints: []ir.TypeConstraint{
				{Left: tv("f"), Right: fn(cv("d"), cv("c1"), intT, intT)},
				{Left: tv("f"), Right: fn(&ir.ImplicitParam{Name: "x", Type: intT}, cv("c2"), intT, intT)},
			},
			errCode: cferr.InvalidConstraint,
		},
		{
			name:        "type mismatch",
			analysis:    frontend.Dataflow,
			constraints: []ir.TypeConstraint{{Left: intT, Right: boolT}},
			errCode:     cferr.TypeMismatch,
		},
		{
			name:     "dataflow constraint without variables",
			analysis: frontend.Dataflow,
			constraints: []ir.TypeConstraint{{
				Left:  &ir.Comonad{Coeffect: &ir.Past{N: 1}, Inner: intT},
				Right: &ir.Comonad{Coeffect: &ir.Past{N: 2}, Inner: intT},
			}},
			errCode: cferr.InvalidConstraint,
		},
		{
			name:     "implicit parameters under the dataflow analysis",
			analysis: frontend.Dataflow,
			constraints: []ir.TypeConstraint{{
				Left:  &ir.Comonad{Coeffect: cv("r"), Inner: intT},
				Right: &ir.Comonad{Coeffect: &ir.ImplicitParam{Name: "x", Type: intT}, Inner: intT},
			}},
			errCode: cferr.Unexpected,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := frontend.Check(tc.analysis, tc.constraints)
			assert.Equal(t, tc.errCode, cferr.CodeOf(err), "error: %v", err)
		})
	}
}

func TestAnalysisByName(t *testing.T) {
	a, err := frontend.AnalysisByName("dataflow")
	assert.NoError(t, err)
	assert.Equal(t, frontend.Dataflow, a)

	_, err = frontend.AnalysisByName("effects")
	assert.ErrorContains(t, err, "implicit, dataflow")
}
