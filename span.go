package main

import "fmt"

// Span is a source range. Lines and columns are 1-indexed; EndCol points one
// past the last character of the range.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Source    string
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	out := s
	if other.StartLine < out.StartLine || (other.StartLine == out.StartLine && other.StartCol < out.StartCol) {
		out.StartLine = other.StartLine
		out.StartCol = other.StartCol
	}
	if other.EndLine > out.EndLine || (other.EndLine == out.EndLine && other.EndCol > out.EndCol) {
		out.EndLine = other.EndLine
		out.EndCol = other.EndCol
	}
	return out
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	startOK := s.StartLine < other.StartLine ||
		(s.StartLine == other.StartLine && s.StartCol <= other.StartCol)
	endOK := s.EndLine > other.EndLine ||
		(s.EndLine == other.EndLine && s.EndCol >= other.EndCol)
	return startOK && endOK
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.Source, s.StartLine, s.StartCol)
}
