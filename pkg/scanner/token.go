package scanner

import "encoding/json"

// TokenType represents the kinds of token the scanner can emit.
type TokenType string

const (
	ContentTokenType        TokenType = "C" // One code point of plain document content
	WhitespaceTokenType     TokenType = "W" // Whitespace separating parts of a SPIP construct
	ShorthandBraceTokenType TokenType = "{" // '{' opening a shorthand balise parameter list
)

// Position represents a location in the source document.
type Position struct {
	Offset int `json:"offset"` // Byte offset into the document
	Line   int `json:"line"`
	Col    int `json:"col"`
}

// Span represents the start and end positions of a token.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
// Byte offsets are not part of the wire format and are left zero.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// KindSet names which token types the caller will accept for one Scan call.
// The scanner never emits a type outside the set.
type KindSet map[TokenType]bool

// Kinds builds a KindSet from the given token types.
func Kinds(kinds ...TokenType) KindSet {
	set := make(KindSet, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// Has reports whether the set contains the given token type. A nil set
// contains nothing.
func (k KindSet) Has(t TokenType) bool {
	return k[t]
}

// Token represents a single classified segment of the input document.
type Token struct {
	Text string    `json:"text"`
	Type TokenType `json:"type"`
	Span Span      `json:"span"`
}

// NewToken creates a new token with the basic required fields.
func NewToken(text string, tokenType TokenType, span Span) *Token {
	return &Token{
		Text: text,
		Type: tokenType,
		Span: span,
	}
}
