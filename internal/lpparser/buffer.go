// Package lpparser implements the CPLEX LP-format front end: a
// regex-anchored cursor (Buffer), a per-section tokenizer (Lexer), a
// phrase-grouping pass, a section splitter, and the section-to-IR
// builders that together produce an ir.Problem from LP source text.
//
// What: turns LP-format text into an ir.Problem.
// How: a small hand-rolled pipeline of successively higher-level passes,
// mirroring this codebase's lexer-then-parser layering but driven by
// regexp instead of a rune-by-rune scanner, per the source format's own
// regex-first tokenizer.
// Why: the LP grammar is small and irregular enough (free-form
// continuation lines, optional labels) that a phrase-oriented grouping
// pass on top of a flat token stream is far simpler than a
// recursive-descent grammar.
package lpparser

import "regexp"

// Buffer wraps a string with a cursor, exposing regex-anchored peek/consume
// primitives and (line, char) position tracking for diagnostics.
type Buffer struct {
	s    string
	line int
	char int
}

// NewBuffer returns a Buffer positioned at the start of s.
func NewBuffer(s string) *Buffer {
	return &Buffer{s: s, line: 1, char: 0}
}

// Peek reports whether pattern matches anchored at the cursor, without
// advancing it.
func (b *Buffer) Peek(pattern *regexp.Regexp) bool {
	return pattern.FindStringIndex(b.s) != nil && pattern.FindStringIndex(b.s)[0] == 0
}

// Consume advances the cursor past pattern's match at the cursor and
// returns the matched substring. The second return is false if pattern
// does not match at the cursor (the sentinel "no match" case); the
// cursor is left unchanged in that case.
func (b *Buffer) Consume(pattern *regexp.Regexp) (string, bool) {
	loc := pattern.FindStringIndex(b.s)
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	match := b.s[:loc[1]]
	b.advance(match)
	b.s = b.s[loc[1]:]
	return match, true
}

func (b *Buffer) advance(match string) {
	newlines := 0
	lastNL := -1
	for i, r := range match {
		if r == '\n' {
			newlines++
			lastNL = i
		}
	}
	if newlines > 0 {
		b.line += newlines
		b.char = len(match) - lastNL - 1
	} else {
		b.char += len(match)
	}
}

// Report returns a human-readable position for diagnostics.
func (b *Buffer) Report() string {
	return "line " + itoa(b.line) + ", char " + itoa(b.char)
}

// Empty reports whether the cursor is at end-of-input.
func (b *Buffer) Empty() bool {
	return len(b.s) == 0
}

// Remaining returns the unconsumed tail of the buffer (used for error
// previews; never for matching).
func (b *Buffer) Remaining() string {
	return b.s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
