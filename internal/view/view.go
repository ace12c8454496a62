// Package view renders a document with live highlights in a terminal.
//
// The view is the reference host integration: it supplies the engine
// with one visible window per rendered line, pushes selection and
// viewport notifications as the user moves, and paints the resulting
// decoration set with each style's configured color. The bottom row
// shows the occurrence count status or the latest command notice.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keylight/internal/decorate"
	"github.com/dshills/keylight/internal/engine/buffer"
	"github.com/dshills/keylight/internal/mark"
	"github.com/dshills/keylight/internal/scan"
	"github.com/dshills/keylight/internal/session"
)

// View is an interactive document viewer with live highlighting.
type View struct {
	screen tcell.Screen
	sess   *session.Session

	top    int // first visible line
	cursor int // byte offset of the cursor
	anchor int // selection anchor offset, -1 when no selection
	notice string
}

// New creates a view on an initialized screen.
func New(screen tcell.Screen, sess *session.Session) *View {
	return &View{
		screen: screen,
		sess:   sess,
		anchor: -1,
	}
}

// Run renders and processes events until the user quits.
func (v *View) Run() error {
	for {
		v.render()
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return nil
			}
		case nil:
			return nil
		}
	}
}

// handleKey processes one key event; true means quit.
func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		v.clearSelection()
		v.notice = ""
		return false
	case tcell.KeyLeft:
		v.moveCursor(v.cursor - 1)
		return false
	case tcell.KeyRight:
		v.moveCursor(v.cursor + 1)
		return false
	case tcell.KeyUp:
		v.moveLine(-1)
		return false
	case tcell.KeyDown:
		v.moveLine(1)
		return false
	case tcell.KeyPgUp:
		v.scroll(-v.textRows())
		return false
	case tcell.KeyPgDn:
		v.scroll(v.textRows())
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'v':
		v.toggleAnchor()
	case 'w':
		v.runCommand(v.sess.Wrap)
	case 'W':
		v.runCommand(v.sess.Unwrap)
	case 't':
		v.runCommand(v.sess.Tag)
	case 'T':
		v.runCommand(v.sess.Untag)
	}
	return false
}

// runCommand executes a permanent-mark command and records either its
// result or its guidance notice for the status row.
func (v *View) runCommand(op func() (int, mark.Notice)) {
	n, notice := op()
	if !notice.OK() {
		v.notice = string(notice)
		return
	}
	v.notice = fmt.Sprintf("%d occurrences transformed", n)
}

func (v *View) toggleAnchor() {
	if v.anchor < 0 {
		v.anchor = v.cursor
	} else {
		v.clearSelection()
	}
}

func (v *View) clearSelection() {
	v.anchor = -1
	v.sess.SetSelection(buffer.Range{Start: v.cursor, End: v.cursor})
}

func (v *View) moveCursor(offset int) {
	max := v.sess.Buffer().Len()
	if offset < 0 {
		offset = 0
	}
	if offset > max {
		offset = max
	}
	v.cursor = offset
	v.syncSelection()
}

func (v *View) moveLine(delta int) {
	line, col := v.position(v.cursor)
	start, end := v.sess.Buffer().LineRange(line + delta)
	if start == end && start == v.sess.Buffer().Len() && delta > 0 {
		return
	}
	if start+col > end {
		v.moveCursor(end)
		return
	}
	v.moveCursor(start + col)
}

func (v *View) scroll(deltaLines int) {
	v.top += deltaLines
	maxTop := v.sess.Buffer().LineCount() - 1
	if v.top > maxTop {
		v.top = maxTop
	}
	if v.top < 0 {
		v.top = 0
	}
}

// syncSelection pushes the current selection (anchor to cursor) to the
// engine.
func (v *View) syncSelection() {
	if v.anchor < 0 {
		v.sess.SetSelection(buffer.Range{Start: v.cursor, End: v.cursor})
		return
	}
	v.sess.SetSelection(buffer.Range{Start: v.anchor, End: v.cursor})
}

// position returns the line and column of a byte offset.
func (v *View) position(offset int) (line, col int) {
	buf := v.sess.Buffer()
	for l := 0; l < buf.LineCount(); l++ {
		start, end := buf.LineRange(l)
		if offset <= end {
			return l, offset - start
		}
	}
	last := buf.LineCount() - 1
	start, _ := buf.LineRange(last)
	return last, offset - start
}

func (v *View) textRows() int {
	_, h := v.screen.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

// render repaints the whole screen: visible lines with decorations, then
// the status row.
func (v *View) render() {
	v.screen.Clear()
	buf := v.sess.Buffer()
	rows := v.textRows()
	w, h := v.screen.Size()

	// Keep the cursor line in view.
	cursorLine, _ := v.position(v.cursor)
	if cursorLine < v.top {
		v.top = cursorLine
	}
	if cursorLine >= v.top+rows {
		v.top = cursorLine - rows + 1
	}

	// One window per rendered line is the viewport contract: only this
	// text is ever scanned.
	windows := make([]scan.Window, 0, rows)
	for i := 0; i < rows; i++ {
		start, end := buf.LineRange(v.top + i)
		if start < end {
			windows = append(windows, scan.Window{Start: start, End: end})
		}
	}
	v.sess.SetWindows(windows)

	result := v.sess.Result()
	styles := v.sess.Styles()

	for i := 0; i < rows; i++ {
		start, end := buf.LineRange(v.top + i)
		line := buf.TextRange(start, end)
		x := 0
		for j, r := range line {
			if x >= w {
				break
			}
			v.screen.SetContent(x, i, r, nil, v.cellStyle(start+j, result.Set, styles))
			x++
		}
	}

	v.renderStatus(result, w, h-1)
	v.screen.Show()
}

// cellStyle resolves the style for one document offset.
func (v *View) cellStyle(offset int, set decorate.Set, styles decorate.Table) tcell.Style {
	st := tcell.StyleDefault
	if v.inSelection(offset) {
		st = st.Reverse(true)
	}
	span, ok := set.At(offset)
	if !ok {
		return st
	}
	style, ok := styles.Style(span.Style)
	if !ok {
		return st
	}
	r, g, b := style.Color.RGB255()
	bg := tcell.NewRGBColor(int32(r), int32(g), int32(b))
	if style.Selection {
		return st.Background(bg).Bold(true)
	}
	return st.Background(bg)
}

func (v *View) inSelection(offset int) bool {
	if v.anchor < 0 {
		return false
	}
	r := (buffer.Range{Start: v.anchor, End: v.cursor}).Normalize()
	return offset >= r.Start && offset < r.End
}

func (v *View) renderStatus(result decorate.Result, w, y int) {
	if y < 0 {
		return
	}
	text := v.notice
	if text == "" {
		text = result.Status()
	}
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		v.screen.SetContent(x, y, r, nil, st)
		x++
	}
	for ; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, st)
	}
}
