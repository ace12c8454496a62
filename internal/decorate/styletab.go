package decorate

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keylight/internal/config"
)

// StyleRef indexes an entry in a Table. Ref 0 is always the selection
// style; refs 1..n map to keyword groups in declaration order.
type StyleRef int

// StyleNone marks the absence of a style.
const StyleNone StyleRef = -1

// fallbackColor is used when a configured color fails to parse.
var fallbackColor = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

// Style is one resolved visual style.
type Style struct {
	// Name is the source name: "selection" or the keyword group name.
	Name string

	// Color is the resolved highlight color.
	Color colorful.Color

	// Selection marks the selection-highlight style.
	Selection bool
}

// Table maps StyleRef values to resolved styles. It is rebuilt once
// per configuration snapshot, never patched.
type Table struct {
	styles []Style
}

// BuildTable resolves the styles for a configuration snapshot.
func BuildTable(snap config.Snapshot) Table {
	styles := make([]Style, 0, len(snap.Groups)+1)
	styles = append(styles, Style{
		Name:      "selection",
		Color:     parseColor(snap.SelectionColor),
		Selection: true,
	})
	for _, g := range snap.Groups {
		styles = append(styles, Style{
			Name:  g.Name,
			Color: parseColor(g.Color),
		})
	}
	return Table{styles: styles}
}

// Style returns the style for ref, or false if ref is out of range.
func (t Table) Style(ref StyleRef) (Style, bool) {
	if ref < 0 || int(ref) >= len(t.styles) {
		return Style{}, false
	}
	return t.styles[ref], true
}

// Len returns the number of styles in the table.
func (t Table) Len() int {
	return len(t.styles)
}

func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackColor
	}
	return c
}
