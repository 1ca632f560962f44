package scanner

import "strings"

// Scanner classifies the input at a cursor position as plain document
// content, whitespace internal to a SPIP construct, or the start of a
// construct that the surrounding grammar must parse structurally. The caller
// names which token types it will currently accept; the scanner answers with
// at most one token per call.
//
// A Scanner carries no state between calls: every call is a pure function of
// the remaining input and the requested kind set.
type Scanner struct {
	rules *ScannerRules
}

// NewScanner creates a new scanner instance with default rules.
func NewScanner() *Scanner {
	return NewScannerWithRules(DefaultRules())
}

// NewScannerWithRules creates a new scanner instance with custom rules.
func NewScannerWithRules(rules *ScannerRules) *Scanner {
	return &Scanner{rules: rules}
}

// Scan attempts to classify the input at the cursor position, emitting only
// token types named in valid. On success the cursor is left just past the
// emitted token. On failure the cursor is restored to where the call began,
// as though no lookahead had happened, and the caller is expected to retry
// with a different kind set or fail at the grammar level.
func (s *Scanner) Scan(c *Cursor, valid KindSet) (*Token, bool) {
	if !c.HasMore() {
		return nil, false
	}

	// Whitespace inside a construct. Note that a failed whitespace match is
	// the call's failure: the run must not be silently retried as content,
	// so the grammar can attempt a different production at this position.
	if valid.Has(WhitespaceTokenType) {
		if r, _ := c.Peek(); isSpipWhitespace(r) {
			return s.scanWhitespace(c)
		}
	}

	// '{' opening a parameter list right after a shorthand balise. The
	// grammar requests this type only in that position.
	if s.rules.ShorthandBrace && valid.Has(ShorthandBraceTokenType) {
		if r, _ := c.Peek(); r == '{' {
			start := c.Pos()
			c.Next()
			span := Span{Start: start, End: c.Pos()}
			return NewToken("{", ShorthandBraceTokenType, span), true
		}
	}

	// One code point of plain content, unless a construct starts here.
	if valid.Has(ContentTokenType) {
		if s.AtConstructStart(c) {
			return nil, false
		}
		start := c.Pos()
		r := c.Next()
		span := Span{Start: start, End: c.Pos()}
		return NewToken(string(r), ContentTokenType, span), true
	}

	return nil, false
}

// scanWhitespace consumes a maximal whitespace run, accepting it only when
// the run is immediately followed by something that continues the construct:
// one of the fixed continuation characters, or (under the opener policy) the
// start of the next construct. Anything else rejects the whole run.
func (s *Scanner) scanWhitespace(c *Cursor) (*Token, bool) {
	start := c.Pos()
	c.markPosition()

	for {
		r, ok := c.Peek()
		if !ok || !isSpipWhitespace(r) {
			break
		}
		c.Next()
	}

	if !s.whitespaceContinues(c) {
		c.resetPosition()
		return nil, false
	}

	text := c.popMark()
	span := Span{Start: start, End: c.Pos()}
	return NewToken(text, WhitespaceTokenType, span), true
}

// whitespaceContinues tests the code point after a whitespace run.
func (s *Scanner) whitespaceContinues(c *Cursor) bool {
	r, ok := c.Peek()
	if !ok {
		return false
	}
	if strings.ContainsRune(s.rules.Continuation, r) {
		return true
	}
	if s.rules.WhitespacePolicy == PolicyOpener {
		return s.AtConstructStart(c)
	}
	return false
}

// isSpipWhitespace reports whether a rune is whitespace within a SPIP
// construct. The set is deliberately narrower than unicode.IsSpace.
func isSpipWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
