package scan

import (
	"testing"

	"github.com/dshills/keylight/internal/pattern"
)

const doc = "the cat sat on the mat. category theory"

func textOf(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(doc) {
		end = len(doc)
	}
	if start >= end {
		return ""
	}
	return doc[start:end]
}

func TestScanSingleWindow(t *testing.T) {
	m := pattern.Build("cat", true, false)
	windows := []Window{{Start: 0, End: len(doc)}}

	spans := Scan(m, windows, textOf)

	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].Start != 4 || spans[0].End != 7 {
		t.Errorf("spans[0] = [%d:%d), want [4:7)", spans[0].Start, spans[0].End)
	}
	if spans[1].Start != 24 || spans[1].End != 27 {
		t.Errorf("spans[1] = [%d:%d), want [24:27)", spans[1].Start, spans[1].End)
	}
}

func TestScanAbsoluteOffsets(t *testing.T) {
	// A window that starts mid-document must still yield absolute offsets.
	m := pattern.Build("cat", true, false)
	windows := []Window{{Start: 20, End: len(doc)}}

	spans := Scan(m, windows, textOf)

	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Start != 24 || spans[0].End != 27 {
		t.Errorf("span = [%d:%d), want absolute [24:27)", spans[0].Start, spans[0].End)
	}
}

func TestScanOverlappingWindowsNotDeduplicated(t *testing.T) {
	m := pattern.Build("cat", true, false)
	windows := []Window{
		{Start: 0, End: 10},
		{Start: 0, End: 10},
	}

	spans := Scan(m, windows, textOf)

	if len(spans) != 2 {
		t.Errorf("overlapping windows yielded %d spans, want 2 duplicates", len(spans))
	}
}

func TestScanWindowOrderPreserved(t *testing.T) {
	// Windows are scanned in the order given, even out of document order.
	m := pattern.Build("cat", true, false)
	windows := []Window{
		{Start: 20, End: len(doc)},
		{Start: 0, End: 10},
	}

	spans := Scan(m, windows, textOf)

	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].Start != 24 {
		t.Errorf("spans[0].Start = %d, want 24 (first window first)", spans[0].Start)
	}
	if spans[1].Start != 4 {
		t.Errorf("spans[1].Start = %d, want 4", spans[1].Start)
	}
}

func TestScanNoStateAcrossWindows(t *testing.T) {
	// A match near the end of one window must not shift or suppress
	// matches at the start of the next window.
	m := pattern.Build("cat", true, false)
	windows := []Window{
		{Start: 0, End: 7},   // ends exactly at the first "cat"
		{Start: 24, End: 27}, // exactly the second "cat"
	}

	spans := Scan(m, windows, textOf)

	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[1].Start != 24 || spans[1].End != 27 {
		t.Errorf("second window span = [%d:%d), want [24:27)",
			spans[1].Start, spans[1].End)
	}
}

func TestScanSkipsInvalidWindows(t *testing.T) {
	m := pattern.Build("cat", true, false)
	windows := []Window{
		{Start: 7, End: 7},
		{Start: 10, End: 4},
		{Start: -3, End: 2},
		{Start: 0, End: 10},
	}

	spans := Scan(m, windows, textOf)

	if len(spans) != 1 {
		t.Errorf("spans = %d, want 1 (invalid windows skipped)", len(spans))
	}
}

func TestScanAll(t *testing.T) {
	m := pattern.Build("the", true, false)
	spans := ScanAll(m, doc)

	if len(spans) != 3 {
		t.Fatalf("spans = %d, want 3", len(spans))
	}
	if spans[0].Start != 0 {
		t.Errorf("spans[0].Start = %d, want 0", spans[0].Start)
	}
}

func TestScanAllEmptyDocument(t *testing.T) {
	m := pattern.Build("cat", true, false)
	if spans := ScanAll(m, ""); len(spans) != 0 {
		t.Errorf("spans = %d, want 0", len(spans))
	}
}
