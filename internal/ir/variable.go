// Package ir is the intermediate algebraic representation produced by the
// LP-format parser: variables, the objective, constraints, and bounds.
//
// What: Variable/SymbolTable/Expression/Constraint/Problem, the shapes named
// by the specification's data model.
// How: a direct, idiomatic-Go translation of the reference implementation's
// IR module — tagged variants (Equation/Inequality) as distinct structs
// implementing a marker interface instead of duck-typed Python classes.
// Why: keeping the IR a thin, mutation-friendly value layer lets the
// presolver and the tableau builder stay simple single-pass transforms.
package ir

import "math"

// Variable is a decision variable, created lazily by the symbol table on
// first reference. Invariant: LowerBound <= UpperBound after any mutation.
type Variable struct {
	Name string

	LowerBound  float64
	LowerStrict bool
	UpperBound  float64
	UpperStrict bool
	Binary      bool
}

// NewVariable returns a Variable with the default bounds: lower 0
// (non-strict), upper +inf (non-strict), not binary.
func NewVariable(name string) *Variable {
	return &Variable{
		Name:       name,
		LowerBound: 0,
		UpperBound: math.Inf(1),
	}
}

// SetLowerBound sets the variable's lower bound and strictness.
func (v *Variable) SetLowerBound(bound float64, strict bool) {
	v.LowerBound = bound
	v.LowerStrict = strict
}

// SetUpperBound sets the variable's upper bound and strictness.
func (v *Variable) SetUpperBound(bound float64, strict bool) {
	v.UpperBound = bound
	v.UpperStrict = strict
}

// SetBinary sets the variable's binary flag.
func (v *Variable) SetBinary(binary bool) {
	v.Binary = binary
}

// Fixed reports whether the variable's bounds pin it to a single value.
func (v *Variable) Fixed() bool {
	return v.UpperBound == v.LowerBound && !v.UpperStrict && !v.LowerStrict
}
