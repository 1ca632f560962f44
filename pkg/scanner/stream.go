package scanner

import "unicode/utf8"

// Cursor is a forward-only reader over the code points of a document. The
// position only ever moves forward; speculative lookahead is done by marking
// the current position and resetting to it, never by seeking backwards past
// a mark.
type Cursor struct {
	input    string
	position int
	line     int
	column   int

	markStack    []int // Stack of position markers
	lineNoStack  []int // Line numbers matching each marker
	lineColStack []int // Column numbers matching each marker
}

// NewCursor creates a cursor positioned at the start of the input.
func NewCursor(input string) *Cursor {
	return &Cursor{
		input:  input,
		line:   1,
		column: 1,
	}
}

// Peek returns the code point at the current position without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.position >= len(c.input) {
		return rune(0), false // End of input
	}
	r, size := utf8.DecodeRuneInString(c.input[c.position:])
	return r, size > 0
}

// Next consumes the current code point and advances the position.
// At end of input it returns the zero rune.
func (c *Cursor) Next() rune {
	r, ok := c.Peek()
	if !ok {
		return r
	}
	if r == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.position += utf8.RuneLen(r)
	return r
}

// HasMore checks whether there is any remaining input to be processed.
func (c *Cursor) HasMore() bool {
	return c.position < len(c.input)
}

// Pos returns the current position of the cursor.
func (c *Cursor) Pos() Position {
	return Position{Offset: c.position, Line: c.line, Col: c.column}
}

// Slice returns the input text between two positions.
func (c *Cursor) Slice(span Span) string {
	return c.input[span.Start.Offset:span.End.Offset]
}

func (c *Cursor) markPosition() {
	// Mark the current position in the input
	c.markStack = append(c.markStack, c.position)
	c.lineNoStack = append(c.lineNoStack, c.line)
	c.lineColStack = append(c.lineColStack, c.column)
}

// Reset the position to the last marked position
func (c *Cursor) resetPosition() {
	if len(c.markStack) == 0 {
		return
	}
	n1 := len(c.markStack) - 1
	c.position = c.markStack[n1]
	c.line = c.lineNoStack[n1]
	c.column = c.lineColStack[n1]
	c.markStack = c.markStack[:n1]
	c.lineNoStack = c.lineNoStack[:n1]
	c.lineColStack = c.lineColStack[:n1]
}

// popMark drops the last marked position, keeping the current position, and
// returns the text consumed since the mark.
func (c *Cursor) popMark() string {
	if len(c.markStack) == 0 {
		return ""
	}
	n1 := len(c.markStack) - 1
	start := c.markStack[n1]
	c.markStack = c.markStack[:n1]
	c.lineNoStack = c.lineNoStack[:n1]
	c.lineColStack = c.lineColStack[:n1]
	return c.input[start:c.position]
}
