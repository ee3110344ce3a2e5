// Package config loads testgen.yml.
//
// Every setting has a default, so testgen runs without a config file. Values
// are layered as defaults < testgen.yml < TESTGEN_* environment variables
// (e.g. TESTGEN_POLYNOMIAL_ENABLED=true, TESTGEN_ROOT=../UnitTests).
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/testgen/internal/generator"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/polynomial"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/shared"
	"github.com/simonhull/firebird-suite/testgen/internal/generators/trigtable"
	"github.com/simonhull/firebird-suite/testgen/internal/random"
)

// FileName is the config file looked up in the working directory.
const FileName = "testgen.yml"

// Config represents testgen.yml.
type Config struct {
	Root       string           `mapstructure:"root" yaml:"root"`
	Templates  string           `mapstructure:"templates" yaml:"templates,omitempty"`
	Conflict   string           `mapstructure:"conflict" yaml:"conflict"`
	Polynomial PolynomialConfig `mapstructure:"polynomial" yaml:"polynomial"`
	Trig       TrigConfig       `mapstructure:"trig" yaml:"trig"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-" yaml:"-"`
}

// PolynomialConfig configures the polynomial root tests.
type PolynomialConfig struct {
	Enabled bool                 `mapstructure:"enabled" yaml:"enabled"`
	Output  string               `mapstructure:"output" yaml:"output"`
	Seed    int64                `mapstructure:"seed" yaml:"seed"`
	Classes []polynomial.Options `mapstructure:"classes" yaml:"classes"`
}

// TrigConfig configures the trigonometric table tests.
type TrigConfig struct {
	Enabled bool                `mapstructure:"enabled" yaml:"enabled"`
	Output  string              `mapstructure:"output" yaml:"output"`
	Tables  []trigtable.Options `mapstructure:"tables" yaml:"tables"`
}

// Default returns the configuration used when no file is present.
// The polynomial suite is disabled by default; its fixtures are committed
// and only regenerated on request.
func Default() *Config {
	return &Config{
		Root:     ".",
		Conflict: string(generator.ModeOverwrite),
		Polynomial: PolynomialConfig{
			Enabled: false,
			Output:  filepath.Join("Algebra", "SolveTest", "SolverNumericalTests.cs"),
			Seed:    random.DefaultSeed,
			Classes: polynomial.DefaultClasses(),
		},
		Trig: TrigConfig{
			Enabled: true,
			Output:  filepath.Join("Core", "TableTrigConstTest.cs"),
			Tables:  trigtable.DefaultTables(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("root", d.Root)
	v.SetDefault("templates", d.Templates)
	v.SetDefault("conflict", d.Conflict)
	v.SetDefault("polynomial.enabled", d.Polynomial.Enabled)
	v.SetDefault("polynomial.output", d.Polynomial.Output)
	v.SetDefault("polynomial.seed", d.Polynomial.Seed)
	v.SetDefault("polynomial.classes", d.Polynomial.Classes)
	v.SetDefault("trig.enabled", d.Trig.Enabled)
	v.SetDefault("trig.output", d.Trig.Output)
	v.SetDefault("trig.tables", d.Trig.Tables)
}

// Load reads configuration. An explicit path must exist; with an empty path
// testgen.yml is looked up in dir and defaults are used when it is missing.
func Load(dir, path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("TESTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", describe(path), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", describe(path), err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func describe(path string) string {
	if path == "" {
		return FileName
	}
	return path
}

// Validate returns every problem found in the configuration.
func (c *Config) Validate() error {
	var errs []error

	if _, err := generator.ParseMode(c.Conflict); err != nil {
		errs = append(errs, err)
	}

	if c.Polynomial.Output == "" {
		errs = append(errs, errors.New("polynomial.output is required"))
	}
	seen := map[string]bool{}
	for _, class := range c.Polynomial.Classes {
		if err := class.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[class.ClassName] {
			errs = append(errs, fmt.Errorf("duplicate polynomial class %q", class.ClassName))
		}
		seen[class.ClassName] = true
	}

	if c.Trig.Output == "" {
		errs = append(errs, errors.New("trig.output is required"))
	}
	seen = map[string]bool{}
	for _, table := range c.Trig.Tables {
		if err := table.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[table.Function] {
			errs = append(errs, fmt.Errorf("duplicate trig table %q", table.Function))
		}
		seen[table.Function] = true
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// PolynomialPath returns the polynomial output path resolved against Root.
func (c *Config) PolynomialPath() string {
	return c.resolve(c.Polynomial.Output)
}

// TrigPath returns the trig output path resolved against Root.
func (c *Config) TrigPath() string {
	return c.resolve(c.Trig.Output)
}

// TemplatesDir returns the template override directory resolved against
// Root, or "" when no overrides are configured.
func (c *Config) TemplatesDir() string {
	if c.Templates == "" {
		return ""
	}
	return c.resolve(c.Templates)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Enabled reports whether target runs when no targets are given explicitly.
func (c *Config) Enabled(target string) bool {
	switch target {
	case shared.TargetPolynomial:
		return c.Polynomial.Enabled
	case shared.TargetTrig:
		return c.Trig.Enabled
	default:
		return false
	}
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
