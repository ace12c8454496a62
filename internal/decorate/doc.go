// Package decorate merges match spans from multiple sources into one
// ordered, deduplicated decoration set ready for rendering.
//
// Sources are the current selection (if any) and the enabled keyword
// groups. Every recomputation rebuilds the whole set from scratch; the
// set only ever covers text inside the visible windows, so a full
// rebuild stays cheap regardless of document size.
package decorate
