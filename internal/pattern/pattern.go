// Package pattern builds literal-text matchers with total metacharacter
// escaping and whole-word boundary handling.
//
// A Matcher always matches its literal text exactly; punctuation and
// regex metacharacters in the literal never gain special meaning. Word
// boundaries are applied only when the literal consists solely of word
// constituent characters, so a boundary assertion can never be placed
// next to punctuation where it would silently fail to match.
package pattern

import (
	"regexp"
	"strings"
	"unicode"
)

// Matcher is a compiled matcher for a single literal text.
// The zero value is not usable; use Build.
type Matcher struct {
	re            *regexp.Regexp
	literal       string
	caseSensitive bool
	wholeWord     bool
}

// Valid reports whether text can serve as a pattern: non-empty and
// containing no whitespace. Build assumes its input is valid; callers
// check before building, not after.
func Valid(text string) bool {
	if text == "" {
		return false
	}
	return !strings.ContainsFunc(text, unicode.IsSpace)
}

// wordOnly reports whether every rune in text is a word constituent
// (letter, digit, or underscore).
func wordOnly(text string) bool {
	for _, r := range text {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return text != ""
}

// Build compiles a matcher for the given literal text.
//
// Escaping is total: every metacharacter in text matches itself. When
// wholeWord is set, \b assertions are added only if the literal is made
// entirely of word constituents; mixed or punctuation-only literals fall
// back to plain substring matching. Case-insensitive matchers use simple
// fold semantics, with no locale-aware folding.
func Build(text string, caseSensitive, wholeWord bool) Matcher {
	expr := regexp.QuoteMeta(text)
	boundary := wholeWord && wordOnly(text)
	if boundary {
		expr = `\b` + expr + `\b`
	}
	if !caseSensitive {
		expr = `(?i)` + expr
	}
	return Matcher{
		re:            regexp.MustCompile(expr),
		literal:       text,
		caseSensitive: caseSensitive,
		wholeWord:     boundary,
	}
}

// Matches returns the [start, end) byte offsets of every non-overlapping
// occurrence in s, left to right. Each call runs a fresh scan; a Matcher
// carries no position state between calls.
func (m Matcher) Matches(s string) [][]int {
	return m.re.FindAllStringIndex(s, -1)
}

// Literal returns the raw text the matcher was built from.
func (m Matcher) Literal() string {
	return m.literal
}

// CaseSensitive reports whether matching is case sensitive.
func (m Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// WholeWord reports whether boundary assertions were actually applied.
// False for literals that forced the substring fallback even when the
// caller requested whole-word matching.
func (m Matcher) WholeWord() bool {
	return m.wholeWord
}

// String returns the compiled expression, for debugging.
func (m Matcher) String() string {
	return m.re.String()
}
