// Package lpsolve provides a CPLEX LP-format linear programming solver.
//
// lpsolve parses LP-format text into an intermediate representation,
// rewrites it into standard form (a maximization with every constraint an
// equation and every variable non-negative), and solves it with a dense
// primal simplex tableau.
//
// # Basic usage
//
//	problem, err := lpsolve.ParseFile("model.lp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := lpsolve.ToStandardForm(problem); err != nil {
//	    log.Fatal(err)
//	}
//	sol, err := lpsolve.Solve(problem, lpsolve.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, v := range problem.Symbols.Variables() {
//	    fmt.Println(v.Name, sol.ValueOf(v))
//	}
package lpsolve

import (
	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/lpparser"
	"github.com/StephenWattam/lpsolve/internal/presolve"
	"github.com/StephenWattam/lpsolve/internal/simplex"
)

// Problem is the parsed, mutable intermediate representation of an LP
// document: its symbol table, objective, mode, and constraints.
type Problem = ir.Problem

// Solution is the result of a solve.
type Solution = ir.Solution

// Options configures the simplex driver loop.
type Options = simplex.Options

// Heuristic selects how Solve picks the entering column on each pivot.
type Heuristic = simplex.Heuristic

const (
	// Lowest enters the column with the most negative objective-row entry.
	Lowest = simplex.Lowest
	// Bland enters the first column (in order) with a negative entry,
	// guaranteeing termination on degenerate problems.
	Bland = simplex.Bland
)

// DefaultOptions returns the driver loop's default tolerances and limits.
func DefaultOptions() Options {
	return simplex.DefaultOptions()
}

// ParseFile reads and parses an LP-format document from path.
func ParseFile(path string) (*Problem, error) {
	return lpparser.ParseFile(path)
}

// ParseString parses an LP-format document from source text.
func ParseString(source string) (*Problem, error) {
	return lpparser.ParseString(source)
}

// ToStandardForm rewrites problem in place into standard form, ready for
// Solve.
func ToStandardForm(problem *Problem) error {
	return presolve.ToStandardForm(problem)
}

// Solve runs the primal simplex driver loop over a presolved problem.
func Solve(problem *Problem, opts Options) (*Solution, error) {
	return simplex.Solve(problem, opts)
}
