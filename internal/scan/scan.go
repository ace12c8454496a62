// Package scan finds pattern occurrences inside visible text windows and
// reports them as absolute document offsets.
package scan

import (
	"github.com/dshills/keylight/internal/pattern"
)

// Window is a half-open [Start, End) byte range of document text that is
// currently materialized for scanning. Windows are supplied by the host;
// they may overlap and need not be sorted.
type Window struct {
	Start int
	End   int
}

// Len returns the window length in bytes.
func (w Window) Len() int {
	return w.End - w.Start
}

// IsValid reports whether the window is a usable non-empty range.
func (w Window) IsValid() bool {
	return w.Start >= 0 && w.Start < w.End
}

// TextFunc returns the document text in the half-open range [start, end).
// Implementations clamp out-of-range offsets rather than failing.
type TextFunc func(start, end int) string

// RawSpan is a single unclassified match location in absolute offsets.
type RawSpan struct {
	Start int
	End   int
}

// Scan finds every occurrence of the matcher inside each window, in the
// order the windows are given, left to right within a window.
//
// Offsets in the result are absolute document offsets. Overlapping windows
// produce duplicate spans; deduplication is the aggregator's job. Every
// window is scanned with an independent pass, so no matcher position state
// can carry over from one window to the next.
func Scan(m pattern.Matcher, windows []Window, text TextFunc) []RawSpan {
	var spans []RawSpan
	for _, w := range windows {
		if !w.IsValid() {
			continue
		}
		s := text(w.Start, w.End)
		for _, loc := range m.Matches(s) {
			spans = append(spans, RawSpan{
				Start: w.Start + loc[0],
				End:   w.Start + loc[1],
			})
		}
	}
	return spans
}

// ScanAll finds every occurrence of the matcher in the full document text.
// Used by whole-document transforms that must not be viewport-limited.
func ScanAll(m pattern.Matcher, doc string) []RawSpan {
	spans := make([]RawSpan, 0)
	for _, loc := range m.Matches(doc) {
		spans = append(spans, RawSpan{Start: loc[0], End: loc[1]})
	}
	return spans
}
