package scanner

// SegmentKind classifies one stretch of the document.
type SegmentKind string

const (
	ContentSegment    SegmentKind = "content"
	WhitespaceSegment SegmentKind = "whitespace"
	OpenerSegment     SegmentKind = "opener"
)

// Segment is a run of document text with a single classification. Opener
// segments cover only the recognizer's matched prefix; parsing the rest of
// the construct is the grammar's job, not the scanner's.
type Segment struct {
	Kind      SegmentKind   `json:"kind"`
	Construct ConstructType `json:"construct,omitempty"`
	Text      string        `json:"text"`
	Span      Span          `json:"span"`
}

// Segmenter drives a Scanner over a whole document the way a grammar host
// would: it requests content code points one at a time, merges consecutive
// content tokens into runs, and labels construct openers where content is
// refused.
type Segmenter struct {
	scanner *Scanner
}

// NewSegmenter creates a segmenter driving the given scanner.
func NewSegmenter(s *Scanner) *Segmenter {
	return &Segmenter{scanner: s}
}

// Segment splits the document into classified segments. The segments are
// contiguous and cover the whole input.
func (sg *Segmenter) Segment(input string) []Segment {
	c := NewCursor(input)
	segments := make([]Segment, 0)

	var run *Segment // pending content run, flushed before any other segment

	flush := func() {
		if run != nil {
			segments = append(segments, *run)
			run = nil
		}
	}

	withWhitespace := Kinds(ContentTokenType, WhitespaceTokenType)
	contentOnly := Kinds(ContentTokenType)

	for c.HasMore() {
		if token, ok := sg.scanner.Scan(c, withWhitespace); ok {
			if token.Type == WhitespaceTokenType {
				flush()
				segments = append(segments, Segment{
					Kind: WhitespaceSegment,
					Text: token.Text,
					Span: token.Span,
				})
			} else {
				appendContent(&run, token)
			}
			continue
		}

		// The whitespace rule rejected a run not followed by a construct.
		// Retry the same position as bare content, one code point at a time.
		if token, ok := sg.scanner.Scan(c, contentOnly); ok {
			appendContent(&run, token)
			continue
		}

		// Content refused: a construct opener starts here. Emit the matched
		// prefix and resume after it.
		typ, prefix, ok := sg.scanner.RecognizeConstruct(c)
		if !ok {
			// Unreachable while every opener-only character has a construct
			// type; consume one code point so the loop always advances.
			if token, ok := sg.scanner.Scan(c, Kinds(ContentTokenType)); ok {
				appendContent(&run, token)
			}
			continue
		}

		flush()
		start := c.Pos()
		for range prefix {
			c.Next()
		}
		span := Span{Start: start, End: c.Pos()}
		segments = append(segments, Segment{
			Kind:      OpenerSegment,
			Construct: typ,
			Text:      c.Slice(span),
			Span:      span,
		})
	}

	flush()
	return segments
}

// appendContent merges a content token into the pending run, starting a new
// run if none is open.
func appendContent(run **Segment, token *Token) {
	if *run == nil {
		*run = &Segment{
			Kind: ContentSegment,
			Text: token.Text,
			Span: token.Span,
		}
		return
	}
	(*run).Text += token.Text
	(*run).Span.End = token.Span.End
}
