// Package polynomial generates root-finding tests for polynomials built from
// random linear factors.
//
// Each test case expands a product such as (x - 4) * (x - 3) * (x - 2) and
// asserts that every root the solver finds satisfies the expression. The
// coefficients come from a seeded random.Stream, so the generated file is
// byte-identical across runs for the same seed and class set.
package polynomial

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simonhull/firebird-suite/testgen/internal/generator"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/shared"
	"github.com/simonhull/firebird-suite/testgen/internal/random"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// CoefficientBound is the exclusive upper bound of every drawn coefficient.
const CoefficientBound = 10

// Options describes one generated test class.
type Options struct {
	ClassName  string `mapstructure:"class" yaml:"class"`
	Iterations int    `mapstructure:"iterations" yaml:"iterations"`
	Power      int    `mapstructure:"power" yaml:"power"`
	Complex    bool   `mapstructure:"complex" yaml:"complex"`
}

// DefaultClasses returns the class set committed in the upstream test suite:
// real and complex cubics (Cardano) and quartics (Ferrari).
func DefaultClasses() []Options {
	return []Options{
		{ClassName: "ClassRealCardanoNumericRoots", Iterations: 20, Power: 3},
		{ClassName: "ClassComplexCardanoNumericRoots", Iterations: 30, Power: 3, Complex: true},
		{ClassName: "ClassRealFerrariNumericRoots", Iterations: 12, Power: 4},
		{ClassName: "ClassComplexFerrariNumericRoots", Iterations: 8, Power: 4, Complex: true},
	}
}

// Validate checks the options without drawing from any stream.
func (o Options) Validate() error {
	var errs []error
	if strings.TrimSpace(o.ClassName) == "" {
		errs = append(errs, errors.New("class name is required"))
	}
	if o.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be >= 0, got %d", o.Iterations))
	}
	if o.Power < 1 {
		errs = append(errs, fmt.Errorf("power must be >= 1, got %d", o.Power))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid polynomial class %q: %w", o.ClassName, err)
	}
	return nil
}

// Case is one rendered test case.
type Case struct {
	Number  int      // 1-based case number
	Power   int      // number of factors
	Factors []string // "(x - a)" or "(x - a + MathS.i * b)"
	Expr    string   // Factors joined with " * "
}

// BuildCases draws the coefficients for every case of opts from rng.
// Draw order: case by case, factor by factor, real part before imaginary.
func BuildCases(opts Options, rng *random.Stream) []Case {
	cases := make([]Case, 0, opts.Iterations)
	for i := 0; i < opts.Iterations; i++ {
		factors := make([]string, opts.Power)
		for j := range factors {
			a := rng.Intn(CoefficientBound)
			if opts.Complex {
				b := rng.Intn(CoefficientBound)
				factors[j] = fmt.Sprintf("(x - %d + MathS.i * %d)", a, b)
			} else {
				factors[j] = fmt.Sprintf("(x - %d)", a)
			}
		}
		cases = append(cases, Case{
			Number:  i + 1,
			Power:   opts.Power,
			Factors: factors,
			Expr:    strings.Join(factors, " * "),
		})
	}
	return cases
}

// Generator renders polynomial test classes.
type Generator struct {
	renderer    *generator.Renderer
	templateDir string
}

// NewGenerator creates a polynomial generator. templateDir, when not empty,
// may hold polynomial/class.cs.tmpl or polynomial/suite.cs.tmpl overriding
// the embedded templates.
func NewGenerator(templateDir string) *Generator {
	return &Generator{
		renderer:    generator.NewRenderer(),
		templateDir: templateDir,
	}
}

// Generate renders one test class, drawing its coefficients from rng.
func (g *Generator) Generate(opts Options, rng *random.Stream) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data := struct {
		ClassName string
		Cases     []Case
	}{
		ClassName: opts.ClassName,
		Cases:     BuildCases(opts, rng),
	}
	return g.render("class.cs.tmpl", data)
}

// Suite renders the complete test file for classes. Every class draws from a
// fresh stream seeded with seed, so adding or reordering classes does not
// change the coefficients of the others.
func (g *Generator) Suite(classes []Options, seed int64) ([]byte, error) {
	rendered := make([]string, 0, len(classes))
	for _, opts := range classes {
		class, err := g.Generate(opts, random.New(seed))
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, string(class))
	}

	return g.render("suite.cs.tmpl", struct {
		Header  string
		Classes []string
	}{
		Header:  shared.Header(),
		Classes: rendered,
	})
}

// Operations renders the suite and returns the write operation for path.
func (g *Generator) Operations(path string, classes []Options, seed int64, resolver *generator.Resolver) ([]generator.Operation, error) {
	content, err := g.Suite(classes, seed)
	if err != nil {
		return nil, fmt.Errorf("generating polynomial tests: %w", err)
	}
	return []generator.Operation{
		&generator.WriteFileOp{
			Path:     path,
			Content:  content,
			Mode:     0644,
			Resolver: resolver,
		},
	}, nil
}

func (g *Generator) render(name string, data any) ([]byte, error) {
	if g.templateDir != "" {
		override := filepath.Join(g.templateDir, shared.TargetPolynomial, name)
		if _, err := os.Stat(override); err == nil {
			return g.renderer.RenderFile(override, data)
		}
	}
	return g.renderer.RenderFS(templatesFS, "templates/"+name, data)
}
