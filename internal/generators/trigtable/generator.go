// Package trigtable generates tests that check the trigonometric table
// replacements: f(2π/i) must evaluate to the same value before and after
// simplification.
//
// No randomness is involved. Output depends only on the function names and
// the ascending index enumeration.
package trigtable

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/simonhull/firebird-suite/testgen/internal/generator"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/shared"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Default index range, [DefaultStart, DefaultEnd).
const (
	DefaultStart = 1
	DefaultEnd   = 30
)

// Functions lists the supported function names in generation order.
func Functions() []string {
	return []string{"Sin", "Cos", "Tan", "Cotan"}
}

// DefaultExclude holds the indices whose simplified form is ambiguous.
// 2π/9 goes through a cubic root with several valid branches.
func DefaultExclude() []int {
	return []int{9}
}

// Options describes one generated test class.
type Options struct {
	Function string `mapstructure:"function" yaml:"function"`
	Start    int    `mapstructure:"start" yaml:"start,omitempty"`
	End      int    `mapstructure:"end" yaml:"end,omitempty"`
	Exclude  []int  `mapstructure:"exclude" yaml:"exclude"`
}

// DefaultTables returns one table per supported function with the default
// range and exclusion set.
func DefaultTables() []Options {
	fns := Functions()
	tables := make([]Options, len(fns))
	for i, fn := range fns {
		tables[i] = Options{
			Function: fn,
			Start:    DefaultStart,
			End:      DefaultEnd,
			Exclude:  DefaultExclude(),
		}
	}
	return tables
}

// bounds returns the effective range. Each bound left at zero takes its
// default on its own.
func (o Options) bounds() (start, end int) {
	start, end = o.Start, o.End
	if start == 0 {
		start = DefaultStart
	}
	if end == 0 {
		end = DefaultEnd
	}
	return start, end
}

// Validate checks the function name, the range and that every excluded
// index lies inside the range.
func (o Options) Validate() error {
	if !slices.Contains(Functions(), o.Function) {
		return fmt.Errorf("unsupported function %q (supported: Sin, Cos, Tan, Cotan)", o.Function)
	}

	start, end := o.bounds()
	if start < 1 {
		return fmt.Errorf("%s: range start must be >= 1, got %d", o.Function, start)
	}
	if end <= start {
		return fmt.Errorf("%s: empty range [%d, %d)", o.Function, start, end)
	}
	for _, i := range o.Exclude {
		if i < start || i >= end {
			return fmt.Errorf("%s: excluded index %d outside range [%d, %d)", o.Function, i, start, end)
		}
	}
	return nil
}

// Indices returns the ascending indices that get a test case.
func Indices(opts Options) ([]int, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start, end := opts.bounds()
	indices := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		if slices.Contains(opts.Exclude, i) {
			continue
		}
		indices = append(indices, i)
	}
	return indices, nil
}

// Generator renders trigonometric table test classes.
type Generator struct {
	renderer    *generator.Renderer
	templateDir string
}

// NewGenerator creates a trig table generator. templateDir, when not empty,
// may hold trig/class.cs.tmpl or trig/suite.cs.tmpl overriding the embedded
// templates.
func NewGenerator(templateDir string) *Generator {
	return &Generator{
		renderer:    generator.NewRenderer(),
		templateDir: templateDir,
	}
}

// Generate renders the test class for one function.
func (g *Generator) Generate(opts Options) ([]byte, error) {
	indices, err := Indices(opts)
	if err != nil {
		return nil, err
	}

	return g.render("class.cs.tmpl", struct {
		Function string
		Indices  []int
	}{
		Function: opts.Function,
		Indices:  indices,
	})
}

// Suite renders the complete test file, one class per table in order.
func (g *Generator) Suite(tables []Options) ([]byte, error) {
	classes := make([]string, 0, len(tables))
	for _, opts := range tables {
		class, err := g.Generate(opts)
		if err != nil {
			return nil, err
		}
		classes = append(classes, string(class))
	}

	return g.render("suite.cs.tmpl", struct {
		Header  string
		Classes []string
	}{
		Header:  shared.Header(),
		Classes: classes,
	})
}

// Operations renders the suite and returns the write operation for path.
func (g *Generator) Operations(path string, tables []Options, resolver *generator.Resolver) ([]generator.Operation, error) {
	content, err := g.Suite(tables)
	if err != nil {
		return nil, fmt.Errorf("generating trig table tests: %w", err)
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
		override := filepath.Join(g.templateDir, shared.TargetTrig, name)
		if _, err := os.Stat(override); err == nil {
			return g.renderer.RenderFile(override, data)
		}
	}
	return g.renderer.RenderFS(templatesFS, "templates/"+name, data)
}
