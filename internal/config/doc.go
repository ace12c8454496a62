// Package config holds the highlight configuration: global flags and the
// ordered list of keyword groups.
//
// The engine never mutates configuration; it reads an immutable Snapshot
// per recomputation. All mutation goes through the Store, which notifies
// subscribed observers after each change.
package config
