package lpparser

import (
	"fmt"
	"os"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

// ParseFile reads path and parses it as an LP-format document.
func ParseFile(path string) (*ir.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	problem, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return problem, nil
}

// ParseString runs the full front end over LP source text: section
// splitting, per-section tokenizing, phrase grouping, and section-to-IR
// translation (section 4).
func ParseString(source string) (*ir.Problem, error) {
	rawSections, err := SplitSections(source)
	if err != nil {
		return nil, err
	}

	problem := ir.NewProblem()
	var sawObjective bool

	for _, raw := range rawSections {
		tokens, err := NewLexer(raw.Body).Tokenize()
		if err != nil {
			return nil, fmt.Errorf("tokenizing section: %w", err)
		}
		phrases := GroupPhrases(tokens)

		switch raw.Kind {
		case SectionObjectiveMax:
			if err := buildObjective(problem, phrases, ir.Maximize); err != nil {
				return nil, err
			}
			sawObjective = true
		case SectionObjectiveMin:
			if err := buildObjective(problem, phrases, ir.Minimize); err != nil {
				return nil, err
			}
			sawObjective = true
		case SectionConstraints:
			if err := buildConstraints(problem, phrases); err != nil {
				return nil, err
			}
		case SectionBounds:
			if err := buildBounds(problem, phrases); err != nil {
				return nil, err
			}
		case SectionGenerals:
			if err := buildIntegrality(problem, phrases, false); err != nil {
				return nil, err
			}
		case SectionBinaries:
			if err := buildIntegrality(problem, phrases, true); err != nil {
				return nil, err
			}
		}
	}

	if !sawObjective {
		return nil, fmt.Errorf("document has no objective section")
	}

	return problem, nil
}
