package lpparser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/StephenWattam/lpsolve/internal/token"
)

// Precompiled, priority-ordered token patterns (section 4.2). Order here is
// the recognition priority: number before operator (so "+inf" isn't
// mistaken for an operator), free before identifier (so the bare keyword is
// recognized before falling through to the general identifier rule),
// relation's two-character forms listed before their one-character prefixes.
var (
	numberPattern = regexp.MustCompile(`^([0-9]+(\.[0-9]+)?([eE][0-9]+(\.[0-9]+)?)?|[+-]inf(inity)?)`)
	freePattern   = regexp.MustCompile(`^free`)
	// Identifiers may not start with a digit, +, -, ., or e/E (the first
	// three are already distinct token kinds; e/E is excluded from the
	// start class to keep "1e5"-shaped exponents unambiguous from
	// identifiers, matching the reference tokenizer).
	identifierPattern    = regexp.MustCompile("^[ABCDFGHIJKLMNOPQRSTUVWXYZabcdfghijklmnopqrstuvwxyz!\"#$%&()/,;?@_`'{}|~][a-zA-Z0-9!\"#$%&()/,;?@_`'{}|~.]*")
	operatorPattern      = regexp.MustCompile(`^[+-]`)
	relationPattern      = regexp.MustCompile(`^(<=|=<|>=|=>|=|<|>)`)
	newlinePattern       = regexp.MustCompile(`^\n`)
	nameSeparatorPattern = regexp.MustCompile(`^\s*:\s*`)
	whitespacePattern    = regexp.MustCompile(`^[ \t]+`)
)

// Lexer recognizes the token stream for a single section's body, using a
// Buffer for the underlying cursor.
type Lexer struct {
	buf *Buffer
}

// NewLexer returns a Lexer over a section's raw text.
func NewLexer(sectionBody string) *Lexer {
	return &Lexer{buf: NewBuffer(sectionBody)}
}

// Next returns the next token, or an error if the cursor sits on input no
// pattern recognizes. At end of input it returns a zero Token and io.EOF-like
// sentinel via the ok bool being false with a nil error.
func (l *Lexer) Next() (token.Token, bool, error) {
	if l.buf.Empty() {
		return token.Token{}, false, nil
	}

	line, char := l.buf.line, l.buf.char

	if m, ok := l.buf.Consume(numberPattern); ok {
		return token.Token{Kind: token.NUMBER, Lexeme: m, Number: parseNumberLiteral(m), Line: line, Char: char}, true, nil
	}
	if m, ok := l.buf.Consume(freePattern); ok {
		return token.Token{Kind: token.FREE, Lexeme: m, Line: line, Char: char}, true, nil
	}
	if m, ok := l.buf.Consume(identifierPattern); ok {
		return token.Token{Kind: token.IDENTIFIER, Lexeme: m, Line: line, Char: char}, true, nil
	}
	if m, ok := l.buf.Consume(operatorPattern); ok {
		return token.Token{Kind: token.OPERATOR, Lexeme: m, Line: line, Char: char}, true, nil
	}
	if m, ok := l.buf.Consume(relationPattern); ok {
		return token.Token{Kind: token.RELATION, Lexeme: m, Line: line, Char: char}, true, nil
	}
	if _, ok := l.buf.Consume(newlinePattern); ok {
		return token.Token{Kind: token.NEWLINE, Lexeme: "\n", Line: line, Char: char}, true, nil
	}
	if _, ok := l.buf.Consume(nameSeparatorPattern); ok {
		return token.Token{Kind: token.NAME_SEPARATOR, Lexeme: ":", Line: line, Char: char}, true, nil
	}
	if _, ok := l.buf.Consume(whitespacePattern); ok {
		return l.Next()
	}

	preview := l.buf.Remaining()
	if len(preview) > 10 {
		preview = preview[:10]
	}
	return token.Token{}, false, fmt.Errorf("unknown token at %s: %q...", l.buf.Report(), preview)
}

// Tokenize drains the lexer into a flat slice.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var toks []token.Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func parseNumberLiteral(lexeme string) float64 {
	lower := strings.ToLower(lexeme)
	switch lower {
	case "+inf", "+infinity":
		return math.Inf(1)
	case "-inf", "-infinity":
		return math.Inf(-1)
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return 0
	}
	return v
}
