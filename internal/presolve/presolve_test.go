package presolve

import (
	"testing"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

func buildMinProblem() *ir.Problem {
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	y := p.Symbols.New("y")
	p.SetObjective(ir.NewExpression("obj", []ir.Term{{Coefficient: 1, Variable: x}, {Coefficient: 1, Variable: y}}), ir.Minimize)
	p.AddConstraint("c1", &ir.Inequality{
		Expression:  ir.NewExpression("c1", []ir.Term{{Coefficient: 1, Variable: x}, {Coefficient: 1, Variable: y}}),
		GreaterThan: true,
		Constant:    2,
	})
	return p
}

func TestToStandardFormPostConditions(t *testing.T) {
	p := buildMinProblem()
	if err := ToStandardForm(p); err != nil {
		t.Fatalf("ToStandardForm: %v", err)
	}

	if p.Mode != ir.Maximize {
		t.Errorf("mode: got %v, want max", p.Mode)
	}

	c := p.Constraint("c1")
	eq, ok := c.(*ir.Equation)
	if !ok {
		t.Fatalf("c1 is not an Equation after presolve: %T", c)
	}

	slack := p.Symbols.Get("_s_c1", false)
	if slack == nil {
		t.Fatalf("slack variable _s_c1 was not created")
	}
	if got := eq.Expression.CoefficientOf(slack, 0); got != 1 {
		t.Errorf("slack coefficient in its own row: got %v, want 1", got)
	}

	for _, v := range p.Symbols.Variables() {
		if v.LowerBound != 0 || v.LowerStrict {
			t.Errorf("variable %s: lower bound not normalized to 0, got %v (strict=%v)", v.Name, v.LowerBound, v.LowerStrict)
		}
	}
}

func TestInvertObjectiveFlipsSignAndMode(t *testing.T) {
	p := buildMinProblem()
	invertObjective(p)
	if p.Mode != ir.Maximize {
		t.Fatalf("mode: got %v, want max", p.Mode)
	}
	for _, term := range p.Objective.Terms {
		if term.Coefficient != -1 {
			t.Errorf("objective coefficient: got %v, want -1", term.Coefficient)
		}
	}
}

func TestInvertObjectiveNoOpForMaximize(t *testing.T) {
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	p.SetObjective(ir.NewExpression("obj", []ir.Term{{Coefficient: 3, Variable: x}}), ir.Maximize)
	invertObjective(p)
	if p.Objective.Terms[0].Coefficient != 3 {
		t.Errorf("maximize objective should be unchanged, got %v", p.Objective.Terms[0].Coefficient)
	}
}

func TestEnsureUpperBoundedConstraintsFlipsGreaterThan(t *testing.T) {
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	p.AddConstraint("c1", &ir.Inequality{
		Expression:  ir.NewExpression("c1", []ir.Term{{Coefficient: 2, Variable: x}}),
		GreaterThan: true,
		Constant:    4,
	})
	ensureUpperBoundedConstraints(p)

	ineq := p.Constraint("c1").(*ir.Inequality)
	if ineq.GreaterThan {
		t.Errorf("GreaterThan should be false after orientation")
	}
	if ineq.Constant != -4 {
		t.Errorf("constant: got %v, want -4", ineq.Constant)
	}
	if ineq.Expression.Terms[0].Coefficient != -2 {
		t.Errorf("coefficient: got %v, want -2", ineq.Expression.Terms[0].Coefficient)
	}
}

func TestInsertSlackVariablesRejectsUnorientedInequality(t *testing.T) {
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	p.AddConstraint("c1", &ir.Inequality{
		Expression:  ir.NewExpression("c1", []ir.Term{{Coefficient: 1, Variable: x}}),
		GreaterThan: true,
		Constant:    1,
	})
	if err := insertSlackVariables(p); err == nil {
		t.Fatalf("expected an error for a still-greater-than inequality")
	}
}

func TestToStandardFormIsIdempotent(t *testing.T) {
	p := buildMinProblem()
	if err := ToStandardForm(p); err != nil {
		t.Fatalf("first ToStandardForm: %v", err)
	}
	constraintsBefore := len(p.ConstraintNames())
	variablesBefore := p.Symbols.Len()

	if err := ToStandardForm(p); err != nil {
		t.Fatalf("second ToStandardForm: %v", err)
	}
	if len(p.ConstraintNames()) != constraintsBefore {
		t.Errorf("re-running presolve should not add constraints, got %d want %d", len(p.ConstraintNames()), constraintsBefore)
	}
	if p.Symbols.Len() != variablesBefore {
		t.Errorf("re-running presolve should not add variables, got %d want %d", p.Symbols.Len(), variablesBefore)
	}
}
