package simplex

import (
	"fmt"
	"math"
	"strings"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

// Status is the terminal condition the driver loop stopped on.
type Status int

const (
	Optimal Status = iota
	IterationCapped
	Unbounded
)

// Options configures the driver loop (section 4.11).
type Options struct {
	Heuristic      Heuristic
	IterationLimit int
	FloatTolerance float64
}

// DefaultOptions mirrors the reference solver's defaults.
func DefaultOptions() Options {
	return Options{
		Heuristic:      Lowest,
		IterationLimit: 1000,
		FloatTolerance: 1e-5,
	}
}

// Solve runs the driver loop to completion over a tableau built from a
// presolved problem, returning the resulting Solution.
func Solve(problem *ir.Problem, opts Options) (*ir.Solution, error) {
	t, err := Build(problem)
	if err != nil {
		return nil, err
	}

	status := Optimal
	iterations := 0
	for {
		if t.Optimal() {
			status = Optimal
			break
		}
		if iterations >= opts.IterationLimit {
			status = IterationCapped
			break
		}

		col, row, unbounded, ok := t.SelectPivot(opts.Heuristic)
		if !ok {
			status = Optimal
			break
		}
		if unbounded {
			status = Unbounded
			break
		}

		t.Pivot(col, row)
		iterations++
	}

	if status == Unbounded {
		return nil, fmt.Errorf("problem is unbounded")
	}

	return t.extractSolution(status == Optimal, opts.FloatTolerance), nil
}

// extractSolution reads section 4.12's basic/non-basic test for every
// original (non-synthetic) variable; synthesized slack columns ("_s_...",
// see presolve.insertSlackVariables) are not part of the reported solution.
func (t *Tableau) extractSolution(optimal bool, tol float64) *ir.Solution {
	values := make(map[*ir.Variable]float64, len(t.variables))

	for col, v := range t.variables {
		if strings.HasPrefix(v.Name, "_s_") {
			continue
		}

		basicRow := -1
		isBasic := true
		for r := 0; r < t.objRow(); r++ {
			val := round(t.rows[r][col], tol)
			switch val {
			case 0:
				// non-basic contribution, continue checking
			case 1:
				if basicRow != -1 {
					isBasic = false
				}
				basicRow = r
			default:
				isBasic = false
			}
			if !isBasic {
				break
			}
		}

		if isBasic && basicRow != -1 {
			values[v] = round(t.rows[basicRow][t.constantCol()], tol)
		} else {
			values[v] = 0
		}
	}

	return &ir.Solution{Problem: t.problem, Values: values, Optimal: optimal}
}

func round(v, tol float64) float64 {
	if math.Abs(v) < tol {
		return 0
	}
	if math.Abs(v-1) < tol {
		return 1
	}
	return v
}
