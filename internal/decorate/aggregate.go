package decorate

import (
	"fmt"
	"sort"

	"github.com/dshills/keylight/internal/config"
	"github.com/dshills/keylight/internal/pattern"
	"github.com/dshills/keylight/internal/scan"
)

// Source is one independent producer of match spans.
type Source struct {
	Matcher  pattern.Matcher
	Style    StyleRef
	Priority int

	// Selection marks the selection source, whose match count and
	// literal feed the status side channel.
	Selection bool
}

// Result is one full recomputation of the decoration set.
type Result struct {
	// Set is the ordered, deduplicated decoration sequence.
	Set Set

	// Pattern is the selection literal, empty when no selection source
	// was active.
	Pattern string

	// MatchCount is the number of distinct selection occurrences found
	// in the visible windows. Zero when Pattern is empty.
	MatchCount int
}

// Status returns the human-readable status line for the side display:
// `"<pattern>" found <N> times`, or empty when there is no selection
// pattern.
func (r Result) Status() string {
	if r.Pattern == "" {
		return ""
	}
	return fmt.Sprintf("%q found %d times", r.Pattern, r.MatchCount)
}

// BuildSources derives the active sources from a configuration snapshot
// and the current selection text.
//
// The selection source is built only when highlighting is enabled and
// the selection is a single non-empty, whitespace-free span; it matches
// substrings (no word boundaries) with the configured case flag. Keyword
// sources are built per non-blank word of every enabled group, with
// whole-word matching and the group's case flag.
func BuildSources(snap config.Snapshot, selection string) []Source {
	if !snap.Enabled {
		return nil
	}

	var sources []Source
	if pattern.Valid(selection) {
		sources = append(sources, Source{
			Matcher:   pattern.Build(selection, snap.SelectionCaseSensitive, false),
			Style:     0,
			Priority:  PrioritySelection,
			Selection: true,
		})
	}

	if !snap.AutoKeyword {
		return sources
	}
	for i, group := range snap.Groups {
		if !group.Enabled {
			continue
		}
		for _, word := range group.Words {
			if !pattern.Valid(word) {
				continue
			}
			sources = append(sources, Source{
				Matcher:  pattern.Build(word, group.CaseSensitive, true),
				Style:    StyleRef(i + 1),
				Priority: i + 1,
			})
		}
	}
	return sources
}

// Aggregate scans every source over the visible windows and merges the
// matches into a single decoration set. The previous set is always
// discarded wholesale; nothing is patched incrementally.
//
// Ordering: ascending Start, ties broken by precedence (selection before
// keyword groups, earlier groups before later ones), then ascending End.
// Spans with an identical (Start, End) pair collapse to the
// highest-precedence one, so a keyword occurrence that coincides with
// the selection is styled once, as selection.
func Aggregate(sources []Source, windows []scan.Window, text scan.TextFunc) Result {
	var result Result
	var spans []Span

	for _, src := range sources {
		raw := scan.Scan(src.Matcher, windows, text)
		if src.Selection {
			result.Pattern = src.Matcher.Literal()
		}
		for _, r := range raw {
			spans = append(spans, Span{
				Start:    r.Start,
				End:      r.End,
				Priority: src.Priority,
				Style:    src.Style,
			})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.End < b.End
	})

	// Identical (Start, End) pairs are not always adjacent after the
	// sort (a longer span from a higher-precedence source can sit
	// between them), so dedup tracks every pair seen.
	set := make(Set, 0, len(spans))
	seen := make(map[[2]int]struct{}, len(spans))
	for _, s := range spans {
		key := [2]int{s.Start, s.End}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		set = append(set, s)
		if s.IsSelection() {
			result.MatchCount++
		}
	}

	result.Set = set
	return result
}
