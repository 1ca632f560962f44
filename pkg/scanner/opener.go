package scanner

// ConstructType identifies which SPIP construct an opener introduces.
type ConstructType string

const (
	ParenShorthand  ConstructType = "paren_shorthand" // (#BALISE...)
	BaliseShorthand ConstructType = "balise_shorthand"
	BoucleOpen      ConstructType = "boucle_open"
	BoucleClose     ConstructType = "boucle_close"
	BoucleElseClose ConstructType = "boucle_else_close"
	Include         ConstructType = "include"
	MultiOpen       ConstructType = "multi_open"
	MultiClose      ConstructType = "multi_close"
	Idiome          ConstructType = "idiome" // <:module:chaine:> inline translation
	BracketOpen     ConstructType = "bracket_open"
	BracketClose    ConstructType = "bracket_close"
)

// openerPattern is one row of the recognizer table: a literal prefix of code
// points, optionally followed by a single rune-class test on the next code
// point, naming the construct the prefix introduces.
type openerPattern struct {
	prefix string
	class  func(rune) bool
	typ    ConstructType
}

// isBaliseLead reports whether a rune can follow '#' in a shorthand balise:
// an uppercase ASCII letter, or '_' for the #_loopname:BALISE form.
func isBaliseLead(r rune) bool {
	return (r >= 'A' && r <= 'Z') || r == '_'
}

// matchPattern reports whether the pattern matches at the cursor position.
// All peeking is transactional: the cursor is restored before returning.
func matchPattern(c *Cursor, p openerPattern) bool {
	c.markPosition()
	defer c.resetPosition()

	for _, want := range p.prefix {
		r, ok := c.Peek()
		if !ok || r != want {
			return false
		}
		c.Next()
	}

	if p.class != nil {
		r, ok := c.Peek()
		if !ok || !p.class(r) {
			return false
		}
	}

	return true
}

// RecognizeConstruct reports the construct whose opener begins at the cursor
// position, together with the literal prefix that matched. The cursor is left
// where it was. Rows are tried longest prefix first, so "<//B" wins over
// "</B" at a boucle else-close.
func (s *Scanner) RecognizeConstruct(c *Cursor) (ConstructType, string, bool) {
	for _, p := range s.rules.Openers {
		if matchPattern(c, p) {
			return p.typ, p.prefix, true
		}
	}
	return "", "", false
}

// AtConstructStart reports whether a top-level SPIP construct begins at the
// cursor position. Characters that are structurally meaningful only inside an
// already-open construct ('{', '}', ')', '*', '|') are never openers: there is
// no top-level production to consume them, and blocking content at such a
// position would leave the caller with no way to make progress.
func (s *Scanner) AtConstructStart(c *Cursor) bool {
	_, _, ok := s.RecognizeConstruct(c)
	return ok
}
