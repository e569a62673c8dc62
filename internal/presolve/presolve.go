// Package presolve rewrites a parsed problem into standard form: a
// maximization with every constraint an equation and every variable
// non-negative, ready for tableau construction.
//
// What: ToStandardForm and its four ordered steps.
// How: direct, line-for-line translation of the reference presolver —
// mutate the IR in place, one pass per step, rather than a combined
// single-pass rewrite, so each step's post-condition stays checkable in
// isolation.
// Why: keeping the four steps separate (and separately testable) matches
// how the reference implementation documents and tests them.
package presolve

import (
	"fmt"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

// ToStandardForm applies the four presolve steps in order (section 4.6):
// objective orientation, upper-bound orientation, slack insertion, and
// non-negativity enforcement.
func ToStandardForm(problem *ir.Problem) error {
	invertObjective(problem)
	ensureUpperBoundedConstraints(problem)
	if err := insertSlackVariables(problem); err != nil {
		return err
	}
	ensureVariablesGTEZero(problem)
	return nil
}

// invertObjective flips a minimization into an equivalent maximization.
func invertObjective(problem *ir.Problem) {
	if problem.Mode != ir.Minimize {
		return
	}
	problem.Objective.Multiply(-1)
	problem.Mode = ir.Maximize
}

// ensureUpperBoundedConstraints flips every "greater_than" inequality into
// its mirror-image "≤" form.
func ensureUpperBoundedConstraints(problem *ir.Problem) {
	for _, name := range problem.ConstraintNames() {
		if ineq, ok := problem.Constraint(name).(*ir.Inequality); ok && ineq.GreaterThan {
			ineq.Invert()
		}
	}
}

// insertSlackVariables replaces every remaining Inequality with an
// Equation carrying an extra slack term, per variable "_s_<name>".
func insertSlackVariables(problem *ir.Problem) error {
	for _, name := range problem.ConstraintNames() {
		ineq, ok := problem.Constraint(name).(*ir.Inequality)
		if !ok {
			continue
		}
		if ineq.GreaterThan {
			return fmt.Errorf("constraint %s is still greater-than after orientation", name)
		}

		slack := problem.Symbols.New("_s_" + name)
		expr := ineq.Expression
		expr.Terms = append(expr.Terms, ir.Term{Coefficient: 1.0, Variable: slack})

		problem.AddConstraint(name, &ir.Equation{Expression: expr, Constant: ineq.Constant})
	}
	return nil
}

// ensureVariablesGTEZero sets every variable's lower bound to 0
// (non-strict), the simplification documented in section 9: variables
// with a pre-existing nonzero or negative lower bound are not free-split.
func ensureVariablesGTEZero(problem *ir.Problem) {
	for _, v := range problem.Symbols.Variables() {
		v.SetLowerBound(0, false)
	}
}
