// Package problem loads constraint problems from YAML files and solves them
package problem

import (
	"io/fs"

	"github.com/cottand/coeffects/frontend"
	"github.com/cottand/coeffects/frontend/ir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Problem is a list of type constraints to be solved under an analysis
type Problem struct {
	Name        string
	Analysis    frontend.Analysis
	Constraints []ir.TypeConstraint
	// Show lists types to normalise once the constraints are solved
	Show []ir.Type
	// Expect is optional
	Expect *Expectation
}

// Expectation describes the outcome a Problem should have
type Expectation struct {
	// Error is the kind of error solving should fail with, like type-mismatch
	Error string `yaml:"error"`
	// Types are the normalised Show types
	Types []string `yaml:"types"`
	// Subst maps type variables to their assignment
	Subst map[string]string `yaml:"subst"`
	// Coeffects maps coeffect variables to their display form
	Coeffects map[string]string `yaml:"coeffects"`
}

type rawFile struct {
	Problems []rawProblem `yaml:"problems"`
}

type rawProblem struct {
	Name        string       `yaml:"name"`
	Analysis    string       `yaml:"analysis"`
	Constraints []yaml.Node  `yaml:"constraints"`
	Show        []yaml.Node  `yaml:"show"`
	Expect      *Expectation `yaml:"expect"`
}

// Parse reads every problem of a YAML problem file
func Parse(data []byte) ([]Problem, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "invalid problem file")
	}
	problems := make([]Problem, 0, len(raw.Problems))
	for i, rp := range raw.Problems {
		if rp.Name == "" {
			return nil, errors.Errorf("problem %d has no name", i)
		}
		p, err := rp.decode()
		if err != nil {
			return nil, errors.Wrapf(err, "problem '%s'", rp.Name)
		}
		problems = append(problems, p)
	}
	return problems, nil
}

// LoadFile parses the problem file at path in fsys
func LoadFile(fsys fs.FS, path string) ([]Problem, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	problems, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return problems, nil
}

func (rp rawProblem) decode() (Problem, error) {
	if rp.Analysis == "" {
		return Problem{}, errors.New("missing analysis")
	}
	analysis, err := frontend.AnalysisByName(rp.Analysis)
	if err != nil {
		return Problem{}, errors.WithStack(err)
	}
	p := Problem{
		Name:     rp.Name,
		Analysis: analysis,
		Expect:   rp.Expect,
	}
	for i := range rp.Constraints {
		c, err := decodeConstraint(&rp.Constraints[i])
		if err != nil {
			return Problem{}, errors.Wrapf(err, "constraint %d", i)
		}
		p.Constraints = append(p.Constraints, c)
	}
	for i := range rp.Show {
		t, err := decodeType(&rp.Show[i])
		if err != nil {
			return Problem{}, errors.Wrapf(err, "show %d", i)
		}
		p.Show = append(p.Show, t)
	}
	return p, nil
}
