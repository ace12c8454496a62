package buffer

import "fmt"

// Edit replaces the text in [Start, End) with NewText.
type Edit struct {
	Start   int
	End     int
	NewText string
}

// NewReplace creates an Edit that replaces a range of text.
func NewReplace(start, end int, newText string) Edit {
	return Edit{Start: start, End: end, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset int, text string) Edit {
	return Edit{Start: offset, End: offset, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end int) Edit {
	return Edit{Start: start, End: end}
}

// IsInsert reports whether this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Start == e.End && e.NewText != ""
}

// IsDelete reports whether this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return e.Start < e.End && e.NewText == ""
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	switch {
	case e.IsInsert():
		return fmt.Sprintf("Insert(%d, %q)", e.Start, e.NewText)
	case e.IsDelete():
		return fmt.Sprintf("Delete[%d:%d)", e.Start, e.End)
	default:
		return fmt.Sprintf("Replace[%d:%d) with %q", e.Start, e.End, e.NewText)
	}
}

// Range is a half-open [Start, End) byte range, used for selections.
type Range struct {
	Start int
	End   int
}

// IsEmpty reports whether the range selects nothing.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether Start <= End and both are non-negative.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Len returns the range length in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Normalize returns a range with Start before End.
func (r Range) Normalize() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}
