package ir

// Term is an ordered (coefficient, variable) pair.
type Term struct {
	Coefficient float64
	Variable    *Variable
}

// Expression is a named ordered sequence of terms. A variable may appear
// more than once; terms are not algebraically coalesced (see DESIGN.md's
// "repeated terms" note) — CoefficientOf returns only the first match.
type Expression struct {
	Name  string
	Terms []Term
}

// NewExpression returns an Expression with the given name and terms.
func NewExpression(name string, terms []Term) *Expression {
	return &Expression{Name: name, Terms: terms}
}

// Multiply scales every term's coefficient by factor, in place.
func (e *Expression) Multiply(factor float64) {
	for i := range e.Terms {
		e.Terms[i].Coefficient *= factor
	}
}

// CoefficientOf returns the coefficient of the first term referencing v, or
// def if v does not appear in the expression.
func (e *Expression) CoefficientOf(v *Variable, def float64) float64 {
	for _, t := range e.Terms {
		if t.Variable == v {
			return t.Coefficient
		}
	}
	return def
}
