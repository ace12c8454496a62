package buffer

import (
	"errors"
	"strings"
	"testing"
)

func TestFromString(t *testing.T) {
	b := FromString("hello")
	if b.String() != "hello" {
		t.Errorf("String() = %q, want %q", b.String(), "hello")
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5", b.Len())
	}
}

func TestFromReader(t *testing.T) {
	b, err := FromReader(strings.NewReader("from reader"))
	if err != nil {
		t.Fatalf("FromReader failed: %v", err)
	}
	if b.String() != "from reader" {
		t.Errorf("String() = %q, want %q", b.String(), "from reader")
	}
}

func TestTextRangeClamps(t *testing.T) {
	b := FromString("hello")
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 5, "hello"},
		{1, 3, "el"},
		{-2, 3, "hel"},
		{3, 99, "lo"},
		{4, 2, ""},
		{9, 12, ""},
	}

	for _, tt := range tests {
		if got := b.TextRange(tt.start, tt.end); got != tt.want {
			t.Errorf("TextRange(%d, %d) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestReplace(t *testing.T) {
	b := FromString("the cat sat")
	if err := b.Replace(4, 7, "dog"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if b.String() != "the dog sat" {
		t.Errorf("String() = %q, want %q", b.String(), "the dog sat")
	}
}

func TestReplaceInvalidRange(t *testing.T) {
	b := FromString("abc")
	if err := b.Replace(2, 1, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Replace(2, 1) error = %v, want ErrRangeInvalid", err)
	}
	if err := b.Replace(0, 99, "x"); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("Replace(0, 99) error = %v, want ErrRangeInvalid", err)
	}
	if b.String() != "abc" {
		t.Errorf("failed replace mutated buffer: %q", b.String())
	}
}

func TestApplyEditsReverseOrder(t *testing.T) {
	b := FromString("abcdef")
	edits := []Edit{
		NewReplace(4, 5, "X"),
		NewReplace(1, 2, "Y"),
	}
	if err := b.ApplyEdits(edits); err != nil {
		t.Fatalf("ApplyEdits failed: %v", err)
	}
	if b.String() != "aYcdXf" {
		t.Errorf("String() = %q, want %q", b.String(), "aYcdXf")
	}
}

func TestApplyEditsRejectsAscendingOrder(t *testing.T) {
	b := FromString("abcdef")
	edits := []Edit{
		NewReplace(1, 2, "Y"),
		NewReplace(4, 5, "X"),
	}
	if err := b.ApplyEdits(edits); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("ascending edits error = %v, want ErrEditsOverlap", err)
	}
	if b.String() != "abcdef" {
		t.Errorf("rejected edits mutated buffer: %q", b.String())
	}
}

func TestApplyEditsRejectsOverlap(t *testing.T) {
	b := FromString("abcdef")
	edits := []Edit{
		NewReplace(2, 5, "X"),
		NewReplace(1, 3, "Y"),
	}
	if err := b.ApplyEdits(edits); !errors.Is(err, ErrEditsOverlap) {
		t.Errorf("overlapping edits error = %v, want ErrEditsOverlap", err)
	}
}

func TestApplyEditsRejectsOutOfRange(t *testing.T) {
	b := FromString("abc")
	edits := []Edit{NewReplace(2, 9, "X")}
	if err := b.ApplyEdits(edits); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("out-of-range edit error = %v, want ErrRangeInvalid", err)
	}
	if b.String() != "abc" {
		t.Errorf("rejected edit mutated buffer: %q", b.String())
	}
}

func TestApplyEditsInsertsAtSameGap(t *testing.T) {
	// Adjacent inserts at descending offsets are legal.
	b := FromString("catcat")
	edits := []Edit{
		NewInsert(6, "!"),
		NewInsert(3, "!"),
		NewInsert(0, "!"),
	}
	if err := b.ApplyEdits(edits); err != nil {
		t.Fatalf("ApplyEdits failed: %v", err)
	}
	if b.String() != "!cat!cat!" {
		t.Errorf("String() = %q, want %q", b.String(), "!cat!cat!")
	}
}

func TestRevision(t *testing.T) {
	b := FromString("abc")
	r0 := b.Revision()
	if err := b.Replace(0, 1, "x"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if b.Revision() == r0 {
		t.Error("Revision should change after mutation")
	}
	r1 := b.Revision()
	if err := b.ApplyEdits(nil); err != nil {
		t.Fatalf("empty ApplyEdits failed: %v", err)
	}
	if b.Revision() != r1 {
		t.Error("empty edit batch should not change revision")
	}
}

func TestLineRange(t *testing.T) {
	b := FromString("one\ntwo\nthree")
	tests := []struct {
		line       int
		start, end int
	}{
		{0, 0, 3},
		{1, 4, 7},
		{2, 8, 13},
		{3, 13, 13},
		{-1, 13, 13},
	}

	for _, tt := range tests {
		start, end := b.LineRange(tt.line)
		if start != tt.start || end != tt.end {
			t.Errorf("LineRange(%d) = [%d:%d), want [%d:%d)",
				tt.line, start, end, tt.start, tt.end)
		}
	}

	if got := b.LineCount(); got != 3 {
		t.Errorf("LineCount() = %d, want 3", got)
	}
}

func TestRangeNormalize(t *testing.T) {
	r := Range{Start: 7, End: 4}.Normalize()
	if r.Start != 4 || r.End != 7 {
		t.Errorf("Normalize() = %v, want [4:7)", r)
	}
	empty := Range{Start: 2, End: 2}
	if !empty.IsEmpty() {
		t.Error("empty range should report IsEmpty")
	}
}
