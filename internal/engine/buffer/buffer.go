package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")
)

// Buffer holds document text and applies edits to it.
// All methods are safe for concurrent use.
type Buffer struct {
	mu       sync.RWMutex
	text     string
	revision uint64
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// FromString creates a buffer with initial content.
func FromString(s string) *Buffer {
	return &Buffer{text: s}
}

// FromReader creates a buffer from an io.Reader.
func FromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{text: string(data)}, nil
}

// String returns the full document text.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the document length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// TextRange returns the text in [start, end), clamped to the document.
func (b *Buffer) TextRange(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// Replace replaces the text in [start, end) with newText.
func (b *Buffer) Replace(start, end int, newText string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if start < 0 || start > end || end > len(b.text) {
		return ErrRangeInvalid
	}
	b.text = b.text[:start] + newText + b.text[end:]
	b.revision++
	return nil
}

// Insert inserts text at the given offset.
func (b *Buffer) Insert(offset int, text string) error {
	if offset < 0 || offset > b.Len() {
		return ErrOffsetOutOfRange
	}
	return b.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end int) error {
	return b.Replace(start, end, "")
}

// ApplyEdits applies the edits as one atomic change. The edits must be
// non-overlapping and in reverse document order (highest offset first);
// anything else is rejected before any text is touched, so a failed call
// leaves the buffer exactly as it was.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].End > edits[i-1].Start {
			return ErrEditsOverlap
		}
	}
	for _, e := range edits {
		if e.Start < 0 || e.Start > e.End || e.End > len(b.text) {
			return ErrRangeInvalid
		}
	}

	var sb strings.Builder
	rest := b.text
	// Edits arrive rightmost first; build the pieces right to left.
	tail := ""
	for _, e := range edits {
		tail = e.NewText + rest[e.End:] + tail
		rest = rest[:e.Start]
	}
	sb.WriteString(rest)
	sb.WriteString(tail)
	b.text = sb.String()
	b.revision++
	return nil
}

// Revision returns a counter incremented on every mutation. Equal values
// mean the text has not changed between two observations.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines in the document. An empty
// document has one (empty) line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Count(b.text, "\n") + 1
}

// LineRange returns the [start, end) byte range of the given zero-based
// line, excluding the trailing newline. Out-of-range lines return an
// empty range at the document end.
func (b *Buffer) LineRange(line int) (start, end int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return len(b.text), len(b.text)
	}
	pos := 0
	for i := 0; i < line; i++ {
		nl := strings.IndexByte(b.text[pos:], '\n')
		if nl < 0 {
			return len(b.text), len(b.text)
		}
		pos += nl + 1
	}
	nl := strings.IndexByte(b.text[pos:], '\n')
	if nl < 0 {
		return pos, len(b.text)
	}
	return pos, pos + nl
}
