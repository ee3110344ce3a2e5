// Package testgen generates deterministic test sources for the symbolic math
// test suite: polynomial root fixtures and trigonometric table checks.
package testgen

// Version is the current testgen release.
const Version = "0.3.0"
