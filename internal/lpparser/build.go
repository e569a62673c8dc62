package lpparser

import (
	"fmt"

	"github.com/StephenWattam/lpsolve/internal/ir"
	"github.com/StephenWattam/lpsolve/internal/token"
)

// reduceExpression is the shared expression reducer (section 4.5): a
// two-state running-coefficient / running-sign scan that must accept
// "- 3 x", "-3 x", "- 3x", and "3 x - 2 y" identically.
func reduceExpression(symbols *ir.SymbolTable, name string, tokens []token.Token) ([]ir.Term, error) {
	var terms []ir.Term
	coefficient := 1.0
	negative := false

	for _, tok := range tokens {
		switch {
		case tok.Kind == token.NUMBER:
			coefficient = tok.Number
		case tok.Kind == token.OPERATOR && tok.Lexeme == "-":
			negative = !negative
		case tok.Kind == token.OPERATOR && tok.Lexeme == "+":
			// no-op
		case tok.Kind == token.IDENTIFIER:
			v := symbols.Get(tok.Lexeme, true)
			sign := 1.0
			if negative {
				sign = -1.0
			}
			terms = append(terms, ir.Term{Coefficient: coefficient * sign, Variable: v})
			coefficient = 1.0
			negative = false
		default:
			return nil, fmt.Errorf("unexpected token in expression %q: %q", name, tok.Lexeme)
		}
	}

	return terms, nil
}

// buildObjective implements section 4.5's objective translation: exactly one
// phrase is expected.
func buildObjective(problem *ir.Problem, phrases []Phrase, mode ir.Mode) error {
	if len(phrases) > 1 {
		return fmt.Errorf("too many objective expressions -- only one is supported")
	}
	if len(phrases) == 0 {
		return fmt.Errorf("missing objective expression")
	}

	phrase := phrases[0]
	terms, err := reduceExpression(problem.Symbols, phrase.Name, phrase.Tokens)
	if err != nil {
		return err
	}

	problem.SetObjective(ir.NewExpression(phrase.Name, terms), mode)
	return nil
}

var relationInversion = map[string]string{
	">":  "<",
	">=": "<=",
	"=>": "<=",
	"=":  "=",
	"<":  ">",
	"<=": ">=",
	"=<": ">=",
}

func isGreaterThan(rel string) bool {
	return rel == ">" || rel == ">=" || rel == "=>"
}

func isStrict(rel string) bool {
	for _, c := range rel {
		if c == '=' {
			return false
		}
	}
	return true
}

// buildConstraints implements section 4.5's constraint translation.
func buildConstraints(problem *ir.Problem, phrases []Phrase) error {
	for _, phrase := range phrases {
		tokens := phrase.Tokens
		if len(tokens) < 3 {
			return fmt.Errorf("not enough tokens to form a meaningful constraint, name %s", phrase.Name)
		}

		if tokens[len(tokens)-1].Kind == token.NUMBER &&
			len(tokens) >= 2 &&
			tokens[len(tokens)-2].Kind == token.OPERATOR && tokens[len(tokens)-2].Lexeme == "-" {
			collapsed := tokens[len(tokens)-1]
			collapsed.Number = -collapsed.Number
			tokens = append(append([]token.Token{}, tokens[:len(tokens)-2]...), collapsed)
		}

		if tokens[len(tokens)-1].Kind != token.NUMBER {
			return fmt.Errorf("expected number (coefficient) on RHS of constraint %s but found %q", phrase.Name, tokens[len(tokens)-1].Lexeme)
		}
		if tokens[len(tokens)-2].Kind != token.RELATION {
			return fmt.Errorf("expected a relation as the penultimate token in constraint %s, but found %q", phrase.Name, tokens[len(tokens)-2].Lexeme)
		}

		relation := tokens[len(tokens)-2].Lexeme
		constant := tokens[len(tokens)-1].Number

		terms, err := reduceExpression(problem.Symbols, phrase.Name, tokens[:len(tokens)-2])
		if err != nil {
			return err
		}

		var c ir.Constraint
		if relation == "=" {
			c = &ir.Equation{Expression: ir.NewExpression(phrase.Name, terms), Constant: constant}
		} else {
			c = &ir.Inequality{
				Expression:  ir.NewExpression(phrase.Name, terms),
				GreaterThan: isGreaterThan(relation),
				Strict:      isStrict(relation),
				Constant:    constant,
			}
		}

		problem.AddConstraint(phrase.Name, c)
	}

	return nil
}

func setVariableBound(problem *ir.Problem, identifier, relation string, number float64) {
	v := problem.Symbols.Get(identifier, true)
	strict := isStrict(relation)

	switch {
	case isGreaterThan(relation):
		v.SetLowerBound(number, strict)
	case relation == "=":
		v.SetLowerBound(number, false)
		v.SetUpperBound(number, false)
	default:
		v.SetUpperBound(number, strict)
	}
}

// buildBounds implements section 4.5's bounds translation (single-sided,
// fixed, and two-sided forms).
func buildBounds(problem *ir.Problem, phrases []Phrase) error {
	for _, phrase := range phrases {
		tokens := phrase.Tokens

		switch len(tokens) {
		case 3:
			if tokens[1].Kind != token.RELATION {
				return fmt.Errorf("bound %s: expected a relation as the middle token", phrase.Name)
			}

			var identifier string
			var relation string
			var number float64

			switch {
			case tokens[0].Kind == token.IDENTIFIER && tokens[2].Kind == token.NUMBER:
				identifier = tokens[0].Lexeme
				relation = tokens[1].Lexeme
				number = tokens[2].Number
			case tokens[0].Kind == token.NUMBER && tokens[2].Kind == token.IDENTIFIER:
				identifier = tokens[2].Lexeme
				relation = relationInversion[tokens[1].Lexeme]
				number = tokens[0].Number
			default:
				return fmt.Errorf("bound %s: expected an identifier and a number", phrase.Name)
			}

			setVariableBound(problem, identifier, relation, number)

		case 5:
			if tokens[0].Kind != token.NUMBER || tokens[1].Kind != token.RELATION ||
				tokens[2].Kind != token.IDENTIFIER || tokens[3].Kind != token.RELATION ||
				tokens[4].Kind != token.NUMBER {
				return fmt.Errorf("bound %s: expected <number, relation, identifier, relation, number>", phrase.Name)
			}

			lower := tokens[0].Number
			lowerRelation := tokens[1].Lexeme
			identifier := tokens[2].Lexeme
			upperRelation := tokens[3].Lexeme
			upper := tokens[4].Number

			setVariableBound(problem, identifier, relationInversion[lowerRelation], lower)
			setVariableBound(problem, identifier, upperRelation, upper)

		default:
			return fmt.Errorf("bound %s: expected 3 or 5 tokens, got %d", phrase.Name, len(tokens))
		}
	}

	return nil
}

func buildIntegrality(problem *ir.Problem, phrases []Phrase, binary bool) error {
	for _, phrase := range phrases {
		if len(phrase.Tokens) == 0 || phrase.Tokens[0].Kind != token.IDENTIFIER {
			return fmt.Errorf("%s: expected a single identifier token", phrase.Name)
		}
		v := problem.Symbols.Get(phrase.Tokens[0].Lexeme, true)
		v.SetBinary(binary)
	}
	return nil
}
