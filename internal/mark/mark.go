// Package mark implements the permanent-mark commands: durable textual
// annotations applied to the whole document, independent of the live
// viewport-scoped decorations.
//
// Wrap surrounds every occurrence of a selected literal with a marker
// pair; Tag prefixes every whole-word occurrence with a sigil. Each
// command has an inverse that strips its markup. All occurrences for one
// invocation are applied as a single atomic edit batch in descending
// position order, so earlier edits never shift offsets still to be
// edited. Commands that cannot run report a user notice and leave the
// document untouched.
package mark

import (
	"sort"
	"strings"

	"github.com/dshills/keylight/internal/engine/buffer"
	"github.com/dshills/keylight/internal/pattern"
	"github.com/dshills/keylight/internal/scan"
)

// Markup characters.
const (
	// WrapMarker is placed on both sides of a wrapped occurrence.
	WrapMarker = "=="

	// TagSigil prefixes a tagged occurrence.
	TagSigil = "#"
)

// Notice is user-facing guidance for a command that did not run. It is
// reported to the user, never raised as a fault, and always means the
// document was left untouched.
type Notice string

// Guidance notices.
const (
	// NoticeOK means the command ran.
	NoticeOK Notice = ""

	// NoticeNoDocument means there is no active document to transform.
	NoticeNoDocument Notice = "no active document"

	// NoticeBadSelection means the selection is empty or contains
	// whitespace.
	NoticeBadSelection Notice = "select a single word or phrase without spaces"

	// NoticeNoMatches means the document contains nothing to transform.
	NoticeNoMatches Notice = "no matches found"
)

// OK reports whether the command ran.
func (n Notice) OK() bool {
	return n == NoticeOK
}

// Wrap surrounds every document occurrence of the selected literal with
// the marker pair. Matching is case-sensitive substring containment, so
// occurrences inside longer words are wrapped too. Returns the number of
// occurrences transformed.
func Wrap(buf *buffer.Buffer, selection string) (int, Notice) {
	return transform(buf, selection, func(doc string) []buffer.Edit {
		m := pattern.Build(selection, true, false)
		var edits []buffer.Edit
		for _, s := range scan.ScanAll(m, doc) {
			wrapped := WrapMarker + doc[s.Start:s.End] + WrapMarker
			edits = append(edits, buffer.NewReplace(s.Start, s.End, wrapped))
		}
		return edits
	})
}

// Unwrap strips the marker pair from every wrapped occurrence of the
// selected literal, inverting Wrap.
func Unwrap(buf *buffer.Buffer, selection string) (int, Notice) {
	return transform(buf, selection, func(doc string) []buffer.Edit {
		m := pattern.Build(WrapMarker+selection+WrapMarker, true, false)
		var edits []buffer.Edit
		for _, s := range scan.ScanAll(m, doc) {
			inner := doc[s.Start+len(WrapMarker) : s.End-len(WrapMarker)]
			edits = append(edits, buffer.NewReplace(s.Start, s.End, inner))
		}
		return edits
	})
}

// Tag prefixes every whole-word occurrence of the selected literal with
// the tag sigil. Occurrences inside longer words are left alone.
func Tag(buf *buffer.Buffer, selection string) (int, Notice) {
	return transform(buf, selection, func(doc string) []buffer.Edit {
		m := pattern.Build(selection, true, true)
		var edits []buffer.Edit
		for _, s := range scan.ScanAll(m, doc) {
			edits = append(edits, buffer.NewInsert(s.Start, TagSigil))
		}
		return edits
	})
}

// Untag strips the leading sigil from every tagged whole-word occurrence
// of the selected literal, inverting Tag.
func Untag(buf *buffer.Buffer, selection string) (int, Notice) {
	return transform(buf, selection, func(doc string) []buffer.Edit {
		m := pattern.Build(selection, true, true)
		var edits []buffer.Edit
		for _, s := range scan.ScanAll(m, doc) {
			if !strings.HasSuffix(doc[:s.Start], TagSigil) {
				continue
			}
			edits = append(edits, buffer.NewDelete(s.Start-len(TagSigil), s.Start))
		}
		return edits
	})
}

// transform runs one permanent-mark command: validate, collect edits
// over the whole document, and apply them as a single atomic batch in
// descending position order. Failure is always detected before any edit
// is attempted.
func transform(buf *buffer.Buffer, selection string, collect func(doc string) []buffer.Edit) (int, Notice) {
	if buf == nil {
		return 0, NoticeNoDocument
	}
	if !pattern.Valid(selection) {
		return 0, NoticeBadSelection
	}

	doc := buf.String()
	edits := collect(doc)
	if len(edits) == 0 {
		return 0, NoticeNoMatches
	}

	// Rightmost first: an edit can never shift a match still to be
	// processed.
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Start > edits[j].Start
	})

	if err := buf.ApplyEdits(edits); err != nil {
		// Matches come from one document snapshot and cannot overlap;
		// a rejected batch is a programming error, not a user condition.
		panic(err)
	}
	return len(edits), NoticeOK
}
