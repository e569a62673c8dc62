package lpparser

import (
	"math"

	"github.com/StephenWattam/lpsolve/internal/token"
)

// Phrase is a maximal span of tokens bounded by phrase terminators, carrying
// a user-given label (from a "name:" prefix) or an auto-generated name.
type Phrase struct {
	Name   string
	Tokens []token.Token
}

// GroupPhrases runs the normalization pass of section 4.3 over a flat token
// stream for one section and slices the result into named phrases, in
// encounter order.
func GroupPhrases(tokens []token.Token) []Phrase {
	normalized := normalize(tokens)
	return slicePhrases(normalized)
}

func normalize(tokens []token.Token) []token.Token {
	var out []token.Token
	n := len(tokens)

	isContinuationKind := func(k token.Kind) bool {
		return k == token.OPERATOR || k == token.RELATION
	}

	for i, tok := range tokens {
		switch {
		case i == 0 && tok.Kind == token.NEWLINE:
			// Drop a leading newline.

		case tok.Kind == token.IDENTIFIER && i > 0 && tokens[i-1].Kind == token.NEWLINE &&
			i < n-1 && tokens[i+1].Kind == token.NAME_SEPARATOR:
			out = append(out, token.Token{Kind: token.PHRASE_LABEL, Lexeme: tok.Lexeme, Line: tok.Line, Char: tok.Char})

		case tok.Kind == token.NAME_SEPARATOR:
			// Consumed by the phrase_label case above.

		case tok.Kind == token.IDENTIFIER && i < n-1 && tokens[i+1].Kind == token.FREE:
			out = append(out,
				token.Token{Kind: token.NUMBER, Number: math.Inf(-1), Line: tok.Line, Char: tok.Char},
				token.Token{Kind: token.RELATION, Lexeme: "<=", Line: tok.Line, Char: tok.Char},
				tok,
				token.Token{Kind: token.RELATION, Lexeme: "<=", Line: tok.Line, Char: tok.Char},
				token.Token{Kind: token.NUMBER, Number: math.Inf(1), Line: tok.Line, Char: tok.Char},
			)

		case tok.Kind == token.FREE:
			// Dropped alongside the identifier-free expansion above.

		case tok.Kind == token.NEWLINE && i < n-1 && isContinuationKind(tokens[i+1].Kind):
			// Continues: next line starts with an operator/relation.

		case tok.Kind == token.NEWLINE && i > 0 && isContinuationKind(tokens[i-1].Kind):
			// Continues: this line ended with an operator/relation.

		case tok.Kind == token.NEWLINE:
			out = append(out, token.Token{Kind: token.END_PHRASE, Lexeme: "\n", Line: tok.Line, Char: tok.Char})

		default:
			out = append(out, tok)
		}
	}

	if len(out) > 0 {
		out = append(out, token.Token{Kind: token.END_PHRASE, Lexeme: "EOF"})
	}

	return out
}

func slicePhrases(tokens []token.Token) []Phrase {
	var phrases []Phrase
	var name string
	var named bool
	var unnamedCount int
	var cur []token.Token

	for _, tok := range tokens {
		switch tok.Kind {
		case token.PHRASE_LABEL:
			name = tok.Lexeme
			named = true
		case token.END_PHRASE:
			if !named {
				unnamedCount++
				name = ruleName(unnamedCount)
			}
			phrases = append(phrases, Phrase{Name: name, Tokens: cur})
			cur = nil
			name = ""
			named = false
		default:
			cur = append(cur, tok)
		}
	}

	return phrases
}

func ruleName(n int) string {
	return "rule_" + itoa(n)
}
