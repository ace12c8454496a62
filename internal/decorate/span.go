package decorate

import "fmt"

// PrioritySelection is the precedence of selection-driven spans. Keyword
// group spans use the group's declaration index plus one, so the
// selection always outranks keyword groups and earlier groups outrank
// later ones. Lower value means higher precedence.
const PrioritySelection = 0

// Span is one decoration: an absolute [Start, End) byte range, the
// precedence of the source that produced it, and a style reference.
// Spans are created fresh on every recomputation and never mutated.
type Span struct {
	Start    int
	End      int
	Priority int
	Style    StyleRef
}

// IsSelection reports whether the span came from the selection source.
func (s Span) IsSelection() bool {
	return s.Priority == PrioritySelection
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)@%d", s.Start, s.End, s.Priority)
}

// Set is the final decoration sequence: sorted ascending by Start, ties
// broken by precedence then by End, with no two spans sharing an
// identical (Start, End) pair.
type Set []Span

// At returns the highest-precedence span covering the given offset.
func (set Set) At(offset int) (Span, bool) {
	best := Span{}
	found := false
	for _, s := range set {
		if s.Start > offset {
			break
		}
		if offset < s.End && (!found || s.Priority < best.Priority) {
			best = s
			found = true
		}
	}
	return best, found
}
