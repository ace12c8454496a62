// Package session wires the document, configuration store, change
// detector and aggregator into one live highlighting engine, and fronts
// the permanent-mark commands.
//
// A Session is the host integration point: the host pushes selection,
// viewport and document notifications in the order they happen, and
// reads the freshly recomputed decoration result after each call. All
// engine work runs synchronously on the notifying goroutine.
package session

import (
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/dshills/keylight/internal/config"
	"github.com/dshills/keylight/internal/config/notify"
	"github.com/dshills/keylight/internal/decorate"
	"github.com/dshills/keylight/internal/engine/buffer"
	"github.com/dshills/keylight/internal/mark"
	"github.com/dshills/keylight/internal/scan"
	"github.com/dshills/keylight/internal/trigger"
)

// Session drives live highlighting for one document.
//
// Engine work is synchronous per trigger, but triggers may arrive from
// more than one host goroutine (the UI loop and the config watcher), so
// a mutex serializes them.
type Session struct {
	mu    sync.Mutex
	buf   *buffer.Buffer
	store *config.Store
	det   *trigger.Detector

	selection buffer.Range
	windows   []scan.Window

	// Rebuilt on every recomputation.
	snap   config.Snapshot
	styles decorate.Table
	result decorate.Result
}

// New creates a session for the given document and configuration store,
// computes the initial decoration set, and subscribes to configuration
// changes.
func New(buf *buffer.Buffer, store *config.Store) *Session {
	s := &Session{
		buf:   buf,
		store: store,
	}
	snap := store.Snapshot()
	s.det = trigger.New(watchedFlags(snap), s.recompute)
	s.recompute()

	store.Notifier().Subscribe("", func(notify.Change) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.det.NotifyConfig(watchedFlags(s.store.Snapshot()))
	})
	return s
}

// SetSelection updates the current selection and recomputes.
func (s *Session) SetSelection(r buffer.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = r.Normalize()
	s.det.Notify(trigger.ReasonSelection)
}

// SetWindows replaces the visible window set and recomputes.
func (s *Session) SetWindows(windows []scan.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows[:0], windows...)
	s.det.Notify(trigger.ReasonViewport)
}

// DocumentChanged reports that the document text was edited.
func (s *Session) DocumentChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.det.Notify(trigger.ReasonDocument)
}

// Result returns the decoration result from the last recomputation.
func (s *Session) Result() decorate.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Styles returns the style table from the last recomputation.
func (s *Session) Styles() decorate.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.styles
}

// Buffer returns the session's document.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Store returns the session's configuration store.
func (s *Session) Store() *config.Store {
	return s.store
}

// SelectionText returns the selected text, or "" when the selection is
// empty.
func (s *Session) SelectionText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionText()
}

// selectionText is SelectionText without locking, for use from inside a
// recomputation.
func (s *Session) selectionText() string {
	if s.selection.IsEmpty() {
		return ""
	}
	return s.buf.TextRange(s.selection.Start, s.selection.End)
}

// Wrap runs the wrap command on the current selection.
func (s *Session) Wrap() (int, mark.Notice) {
	return s.command(mark.Wrap)
}

// Unwrap runs the unwrap command on the current selection.
func (s *Session) Unwrap() (int, mark.Notice) {
	return s.command(mark.Unwrap)
}

// Tag runs the tag command on the current selection.
func (s *Session) Tag() (int, mark.Notice) {
	return s.command(mark.Tag)
}

// Untag runs the untag command on the current selection.
func (s *Session) Untag() (int, mark.Notice) {
	return s.command(mark.Untag)
}

func (s *Session) command(op func(*buffer.Buffer, string) (int, mark.Notice)) (int, mark.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, notice := op(s.buf, s.selectionText())
	if notice.OK() {
		s.det.Notify(trigger.ReasonDocument)
	}
	return n, notice
}

// recompute takes a fresh configuration snapshot and rebuilds the style
// table and decoration set wholesale.
func (s *Session) recompute() {
	s.snap = s.store.Snapshot()
	s.styles = decorate.BuildTable(s.snap)
	sources := decorate.BuildSources(s.snap, s.selectionText())
	s.result = decorate.Aggregate(sources, s.windows, s.buf.TextRange)
}

// watchedFlags derives the change-detector flag values from a snapshot.
// The group list is folded into a revision hash so any group edit is a
// watched change while untouched reloads are not.
func watchedFlags(snap config.Snapshot) trigger.Flags {
	h := fnv.New64a()
	for _, g := range snap.Groups {
		h.Write([]byte(g.ID))
		h.Write([]byte(g.Name))
		h.Write([]byte(g.Color))
		h.Write([]byte(strconv.FormatBool(g.Enabled)))
		h.Write([]byte(strconv.FormatBool(g.CaseSensitive)))
		for _, w := range g.Words {
			h.Write([]byte(w))
			h.Write([]byte{0})
		}
		h.Write([]byte{0xff})
	}
	return trigger.Flags{
		Enabled:                snap.Enabled,
		AutoKeyword:            snap.AutoKeyword,
		SelectionCaseSensitive: snap.SelectionCaseSensitive,
		GroupsRev:              h.Sum64(),
	}
}
