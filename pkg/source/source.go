// Package source holds the input text a program was compiled from and the
// spans that point back into it. Every token, AST node, and diagnostic in
// this module carries a Span rather than a copy of the text it covers.
package source

import "fmt"

// Source is one compilation unit: a name (for diagnostics) and its text.
type Source struct {
	Name string
	Text string
}

// New wraps program text under a name for diagnostics.
func New(name, text string) *Source {
	return &Source{Name: name, Text: text}
}

// Span identifies a byte range within a Source. It never copies the text
// itself; Text() slices the owning Source on demand.
type Span struct {
	Source *Source
	Offset int
	Length int
}

// NewSpan builds a Span of the given byte length starting at offset.
func NewSpan(src *Source, offset, length int) Span {
	return Span{Source: src, Offset: offset, Length: length}
}

// EOFSpan returns a zero-length span at the end of src, used for
// diagnostics about input that ended before a construct could be completed.
func EOFSpan(src *Source) Span {
	return Span{Source: src, Offset: len(src.Text), Length: 0}
}

// End returns the offset one past the span's last byte.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Text returns the substring of the owning Source this span covers.
func (s Span) Text() string {
	if s.Source == nil {
		return ""
	}
	return s.Source.Text[s.Offset:s.End()]
}

// Union returns the smallest span covering every span passed in. All spans
// must share the same Source; Union panics otherwise, since a span spanning
// two different inputs is a programming error, not a user-facing one.
func Union(spans ...Span) Span {
	if len(spans) == 0 {
		panic("source: Union called with no spans")
	}
	first := spans[0]
	start, end := first.Offset, first.End()
	for _, s := range spans[1:] {
		if s.Source != first.Source {
			panic("source: Union called with spans from different sources")
		}
		if s.Offset < start {
			start = s.Offset
		}
		if s.End() > end {
			end = s.End()
		}
	}
	return Span{Source: first.Source, Offset: start, Length: end - start}
}

// String renders a span as "name:offset+length", primarily for test
// failure messages and debug dumps rather than user-facing diagnostics.
func (s Span) String() string {
	name := "<unknown>"
	if s.Source != nil {
		name = s.Source.Name
	}
	return fmt.Sprintf("%s:%d+%d", name, s.Offset, s.Length)
}
