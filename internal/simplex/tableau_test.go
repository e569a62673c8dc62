package simplex

import (
	"testing"

	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/presolve"
)

// standardForm builds a presolved two-variable max problem:
// max 3x + 5y; x + y <= 4; x <= 3; x,y >= 0.
func standardForm(t testing.TB) *ir.Problem {
	t.Helper()
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	y := p.Symbols.New("y")
	p.SetObjective(ir.NewExpression("obj", []ir.Term{{Coefficient: 3, Variable: x}, {Coefficient: 5, Variable: y}}), ir.Maximize)
	p.AddConstraint("c1", &ir.Inequality{
		Expression: ir.NewExpression("c1", []ir.Term{{Coefficient: 1, Variable: x}, {Coefficient: 1, Variable: y}}),
		Constant:   4,
	})
	p.AddConstraint("c2", &ir.Inequality{
		Expression: ir.NewExpression("c2", []ir.Term{{Coefficient: 1, Variable: x}}),
		Constant:   3,
	})
	if err := presolve.ToStandardForm(p); err != nil {
		t.Fatalf("ToStandardForm: %v", err)
	}
	return p
}

func TestBuildTableauShape(t *testing.T) {
	p := standardForm(t)
	tab, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantCols := p.Symbols.Len() + 1
	wantRows := len(p.ConstraintNames()) + 1
	if len(tab.rows) != wantRows {
		t.Errorf("rows: got %d, want %d", len(tab.rows), wantRows)
	}
	for i, row := range tab.rows {
		if len(row) != wantCols {
			t.Errorf("row %d: got %d cols, want %d", i, len(row), wantCols)
		}
	}
}

func TestBuildRejectsNonPresolvedProblem(t *testing.T) {
	p := ir.NewProblem()
	x := p.Symbols.New("x")
	p.SetObjective(ir.NewExpression("obj", []ir.Term{{Coefficient: 1, Variable: x}}), ir.Maximize)
	p.AddConstraint("c1", &ir.Inequality{Expression: ir.NewExpression("c1", nil), Constant: 1})

	if _, err := Build(p); err == nil {
		t.Fatalf("expected an error building a tableau over an un-presolved problem")
	}
}

func TestPivotPreservesShape(t *testing.T) {
	p := standardForm(t)
	tab, err := Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rowsBefore, colsBefore := len(tab.rows), len(tab.rows[0])
	col, row, unbounded, ok := tab.SelectPivot(Lowest)
	if !ok || unbounded {
		t.Fatalf("expected a valid pivot to exist, got ok=%v unbounded=%v", ok, unbounded)
	}
	tab.Pivot(col, row)

	if len(tab.rows) != rowsBefore {
		t.Errorf("rows changed after pivot: got %d, want %d", len(tab.rows), rowsBefore)
	}
	for i, r := range tab.rows {
		if len(r) != colsBefore {
			t.Errorf("row %d cols changed after pivot: got %d, want %d", i, len(r), colsBefore)
		}
	}
}

func TestPivotBasicColumnInvariant(t *testing.T) {
	p := standardForm(t)
	tab, _ := Build(p)

	col, row, _, ok := tab.SelectPivot(Lowest)
	if !ok {
		t.Fatalf("no pivot available")
	}
	tab.Pivot(col, row)

	if tab.rows[row][col] != 1 {
		t.Errorf("pivot row entry in entering column: got %v, want 1", tab.rows[row][col])
	}
	for r := range tab.rows {
		if r == row {
			continue
		}
		if tab.rows[r][col] != 0 {
			t.Errorf("row %d entering column entry: got %v, want 0", r, tab.rows[r][col])
		}
	}
}

func TestOptimalDetectsNonNegativeObjectiveRow(t *testing.T) {
	tab := &Tableau{rows: [][]float64{{1, 2, 3}, {0, 0, 0}}, variables: make([]*ir.Variable, 2)}
	if !tab.Optimal() {
		t.Errorf("expected optimal when every objective-row entry is non-negative")
	}

	tab.rows[1][0] = -1
	if tab.Optimal() {
		t.Errorf("expected non-optimal when an objective-row entry is negative")
	}
}

func BenchmarkPivot(b *testing.B) {
	for i := 0; i < b.N; i++ {
		tab, err := Build(standardForm(b))
		if err != nil {
			b.Fatalf("Build: %v", err)
		}
		col, row, unbounded, ok := tab.SelectPivot(Lowest)
		if !ok || unbounded {
			b.Fatalf("expected a valid pivot, got ok=%v unbounded=%v", ok, unbounded)
		}
		tab.Pivot(col, row)
	}
}
