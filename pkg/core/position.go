package core

import (
	"fmt"
	"strings"
)

// Position is a 0-based location in a text buffer.
// Column counts bytes from the start of the line.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Compare orders positions by line, then column.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// String renders the position 1-based, the way editors display it.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Range spans two positions. Start never sorts after End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange builds a range, swapping the bounds when they are reversed.
func NewRange(start, end Position) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// Contains reports whether pos lies inside the range, bounds included.
func (r Range) Contains(pos Position) bool {
	return r.Start.Compare(pos) <= 0 && pos.Compare(r.End) <= 0
}

// OffsetToPosition converts a byte offset into a Position.
// Offsets outside the text are clamped.
func OffsetToPosition(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n")
	col := offset
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		col = offset - i - 1
	}
	return Position{Line: line, Column: col}
}

// PositionToOffset converts a Position into a byte offset.
// Lines past the end clamp to len(text); columns past a line end clamp to that line's end.
func PositionToOffset(text string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(text[offset:], '\n')
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}
	lineEnd := len(text)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	col := pos.Column
	if col < 0 {
		col = 0
	}
	if offset+col > lineEnd {
		return lineEnd
	}
	return offset + col
}

// RangeFromOffsets converts a [start, end) byte span into a Range.
func RangeFromOffsets(text string, start, end int) Range {
	return NewRange(OffsetToPosition(text, start), OffsetToPosition(text, end))
}
