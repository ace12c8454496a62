package decorate

import (
	"sort"
	"strings"
	"testing"

	"github.com/dshills/keylight/internal/config"
	"github.com/dshills/keylight/internal/scan"
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

func fullView() []scan.Window {
	return []scan.Window{{Start: 0, End: len(doc)}}
}

func snapWith(groups ...config.KeywordGroup) config.Snapshot {
	cfg := config.Default()
	cfg.Groups = groups
	return cfg.Snapshot()
}

// Selection "cat", case-insensitive, substring mode: both the word and
// the prefix of "category" light up, and the count reflects that.
func TestAggregateSelectionOccurrences(t *testing.T) {
	sources := BuildSources(snapWith(), "cat")
	result := Aggregate(sources, fullView(), textOf)

	if len(result.Set) != 2 {
		t.Fatalf("set = %v, want 2 spans", result.Set)
	}
	if result.Set[0].Start != 4 || result.Set[0].End != 7 {
		t.Errorf("set[0] = %v, want [4:7)", result.Set[0])
	}
	if result.Set[1].Start != 24 || result.Set[1].End != 27 {
		t.Errorf("set[1] = %v, want [24:27)", result.Set[1])
	}
	if result.MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", result.MatchCount)
	}
	if result.Status() != `"cat" found 2 times` {
		t.Errorf("Status() = %q", result.Status())
	}
}

// Keyword group {mat}, whole-word: exactly the standalone "mat", no
// sub-token matches.
func TestAggregateKeywordWholeWord(t *testing.T) {
	snap := snapWith(config.KeywordGroup{
		ID: "g1", Name: "nouns", Color: "#ff5555",
		Words: []string{"mat"}, Enabled: true,
	})
	result := Aggregate(BuildSources(snap, ""), fullView(), textOf)

	if len(result.Set) != 1 {
		t.Fatalf("set = %v, want 1 span", result.Set)
	}
	s := result.Set[0]
	if s.Start != 19 || s.End != 22 {
		t.Errorf("span = %v, want [19:22)", s)
	}
	if s.Style != 1 {
		t.Errorf("style = %d, want 1 (first group)", s.Style)
	}
	if result.Pattern != "" || result.Status() != "" {
		t.Errorf("keyword-only result should have no status, got %q", result.Status())
	}
}

// Two groups both containing "sat": one span, styled by the
// earlier-declared group.
func TestAggregateDedupByPrecedence(t *testing.T) {
	snap := snapWith(
		config.KeywordGroup{ID: "g1", Name: "first", Color: "#ff5555",
			Words: []string{"sat"}, Enabled: true},
		config.KeywordGroup{ID: "g2", Name: "second", Color: "#50fa7b",
			Words: []string{"sat"}, Enabled: true},
	)
	result := Aggregate(BuildSources(snap, ""), fullView(), textOf)

	if len(result.Set) != 1 {
		t.Fatalf("set = %v, want 1 deduplicated span", result.Set)
	}
	if result.Set[0].Style != 1 {
		t.Errorf("style = %d, want 1 (earlier group wins)", result.Set[0].Style)
	}
}

// Selection and a keyword coinciding on the same span: styled once, as
// selection.
func TestAggregateSelectionOutranksKeyword(t *testing.T) {
	snap := snapWith(config.KeywordGroup{
		ID: "g1", Name: "nouns", Color: "#ff5555",
		Words: []string{"mat"}, Enabled: true, CaseSensitive: true,
	})
	result := Aggregate(BuildSources(snap, "mat"), fullView(), textOf)

	if len(result.Set) != 1 {
		t.Fatalf("set = %v, want 1 span", result.Set)
	}
	if !result.Set[0].IsSelection() {
		t.Error("coinciding span should keep the selection style")
	}
	if result.MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", result.MatchCount)
	}
}

func TestAggregateOrderInvariant(t *testing.T) {
	snap := snapWith(
		config.KeywordGroup{ID: "g1", Name: "a", Color: "#ff5555",
			Words: []string{"the", "theory"}, Enabled: true},
		config.KeywordGroup{ID: "g2", Name: "b", Color: "#50fa7b",
			Words: []string{"cat", "mat", "on"}, Enabled: true},
	)
	result := Aggregate(BuildSources(snap, "cat"), fullView(), textOf)

	if !sort.SliceIsSorted(result.Set, func(i, j int) bool {
		a, b := result.Set[i], result.Set[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.End < b.End
	}) {
		t.Errorf("set not ordered: %v", result.Set)
	}

	seen := make(map[[2]int]bool)
	for _, s := range result.Set {
		key := [2]int{s.Start, s.End}
		if seen[key] {
			t.Errorf("duplicate (start,end) pair %v", s)
		}
		seen[key] = true
	}
}

func TestAggregateDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Enabled = false
	cfg.Groups = []config.KeywordGroup{{
		ID: "g1", Name: "nouns", Color: "#fff",
		Words: []string{"cat"}, Enabled: true,
	}}

	sources := BuildSources(cfg.Snapshot(), "cat")
	if sources != nil {
		t.Fatalf("disabled config built %d sources, want none", len(sources))
	}

	result := Aggregate(sources, fullView(), textOf)
	if len(result.Set) != 0 || result.Status() != "" {
		t.Errorf("disabled result = %+v, want empty set and status", result)
	}
}

func TestAggregateNoUsableSelection(t *testing.T) {
	for _, sel := range []string{"", "two words", " "} {
		sources := BuildSources(snapWith(), sel)
		result := Aggregate(sources, fullView(), textOf)
		if result.Pattern != "" || result.MatchCount != 0 {
			t.Errorf("selection %q produced pattern %q, count %d",
				sel, result.Pattern, result.MatchCount)
		}
	}
}

func TestBuildSourcesFiltersBlankWords(t *testing.T) {
	snap := snapWith(config.KeywordGroup{
		ID: "g1", Name: "nouns", Color: "#fff",
		Words: []string{"", "cat", "  ", "mat"}, Enabled: true,
	})
	sources := BuildSources(snap, "")
	if len(sources) != 2 {
		t.Errorf("sources = %d, want 2 (blanks filtered)", len(sources))
	}
}

func TestBuildSourcesSkipsDisabledGroups(t *testing.T) {
	snap := snapWith(
		config.KeywordGroup{ID: "g1", Name: "off", Color: "#fff",
			Words: []string{"cat"}, Enabled: false},
		config.KeywordGroup{ID: "g2", Name: "on", Color: "#fff",
			Words: []string{"mat"}, Enabled: true},
	)
	sources := BuildSources(snap, "")
	if len(sources) != 1 {
		t.Fatalf("sources = %d, want 1", len(sources))
	}
	// Style/priority still reflect declaration position, not enabled
	// position.
	if sources[0].Style != 2 || sources[0].Priority != 2 {
		t.Errorf("source style/priority = %d/%d, want 2/2",
			sources[0].Style, sources[0].Priority)
	}
}

func TestAggregateViewportLimited(t *testing.T) {
	// Matches outside every window are never found.
	windows := []scan.Window{{Start: 0, End: 11}}
	result := Aggregate(BuildSources(snapWith(), "cat"), windows, textOf)

	if result.MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1 (second cat is out of view)", result.MatchCount)
	}
}

func TestAggregateOverlappingWindowsCollapse(t *testing.T) {
	windows := []scan.Window{
		{Start: 0, End: 11},
		{Start: 0, End: 11},
	}
	result := Aggregate(BuildSources(snapWith(), "cat"), windows, textOf)

	if len(result.Set) != 1 {
		t.Errorf("set = %v, want duplicate window matches collapsed", result.Set)
	}
	if result.MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", result.MatchCount)
	}
}

func TestSetAt(t *testing.T) {
	set := Set{
		{Start: 4, End: 7, Priority: 0, Style: 0},
		{Start: 4, End: 10, Priority: 1, Style: 1},
		{Start: 19, End: 22, Priority: 2, Style: 2},
	}

	s, ok := set.At(5)
	if !ok || !s.IsSelection() {
		t.Errorf("At(5) = %v, %v; want selection span", s, ok)
	}
	s, ok = set.At(8)
	if !ok || s.Style != 1 {
		t.Errorf("At(8) = %v, %v; want style 1", s, ok)
	}
	if _, ok := set.At(15); ok {
		t.Error("At(15) should find nothing")
	}
	if _, ok := set.At(22); ok {
		t.Error("At(22) is past the last span end, should find nothing")
	}
}

func TestStatusQuoting(t *testing.T) {
	r := Result{Pattern: "a\"b", MatchCount: 3}
	if !strings.Contains(r.Status(), "found 3 times") {
		t.Errorf("Status() = %q", r.Status())
	}
}
