// Package buffer provides the document text store used by the highlight
// engine and the permanent-mark commands.
//
// All offsets are byte offsets into the document text, half-open
// [Start, End). Batch edits are applied atomically and must be supplied
// in reverse document order so earlier edits never shift the offsets of
// edits still to be applied.
package buffer
