// Package wordlist reads and writes the plain-text keyword list format:
// tokens separated by commas and newlines. Bare quoted tokens are
// discarded on import.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Import parses a comma-and-newline-delimited token list. Blank tokens
// are dropped; tokens wrapped in single or double quotes are discarded
// rather than unquoted.
func Import(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, tok := range strings.Split(sc.Text(), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || quoted(tok) {
				continue
			}
			words = append(words, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}

// Export writes words one per line with a trailing comma, the same shape
// Import accepts.
func Export(w io.Writer, words []string) error {
	bw := bufio.NewWriter(w)
	for _, word := range words {
		if strings.TrimSpace(word) == "" {
			continue
		}
		if _, err := bw.WriteString(word + ",\n"); err != nil {
			return fmt.Errorf("writing word list: %w", err)
		}
	}
	return bw.Flush()
}

// quoted reports whether tok is wrapped in matching single or double
// quotes.
func quoted(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	first, last := tok[0], tok[len(tok)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}
