// Package shared holds pieces common to the test generators.
package shared

import "fmt"

// Target names accepted on the command line and in testgen.yml.
const (
	TargetPolynomial = "polynomial"
	TargetTrig       = "trig"
	TargetAll        = "all"
)

// Targets lists the concrete targets in generation order.
func Targets() []string {
	return []string{TargetPolynomial, TargetTrig}
}

// Header returns the warning comment placed at the top of every generated
// file. It ends with a newline.
func Header() string {
	return "/*\n" +
		" * This file was auto-generated by testgen\n" +
		" * Do not modify it; edit testgen.yml and run `testgen generate` instead.\n" +
		" */\n"
}

// ValidTarget reports an error for unknown target names.
func ValidTarget(name string) error {
	switch name {
	case TargetPolynomial, TargetTrig, TargetAll:
		return nil
	default:
		return fmt.Errorf("unknown target %q (supported: polynomial, trig, all)", name)
	}
}
