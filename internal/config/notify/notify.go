// Package notify provides change notification for configuration updates.
//
// Observers subscribe to a path prefix and receive a callback whenever a
// matching setting changes. Delivery is synchronous, in subscription
// order, on the goroutine that performed the mutation.
package notify

import (
	"strings"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the entire configuration was replaced.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated path to the changed setting.
	// Empty for reload events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// Source identifies where the change came from.
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	path     string
	observer Observer
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.remove(s.id)
		s.notifier = nil
	}
}

// Notifier dispatches configuration changes to observers.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []*Subscription
}

// New creates a new notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for changes under the given path
// prefix. An empty path matches every change.
func (n *Notifier) Subscribe(path string, obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	sub := &Subscription{id: n.nextID, path: path, observer: obs, notifier: n}
	n.subs = append(n.subs, sub)
	return sub
}

// Notify delivers a change to every matching observer, synchronously,
// in subscription order. Reload changes match every subscription.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	subs := make([]*Subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	for _, sub := range subs {
		if change.Type == ChangeReload || matches(sub.path, change.Path) {
			sub.observer(change)
		}
	}
}

// Count returns the number of active subscriptions.
func (n *Notifier) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, sub := range n.subs {
		if sub.id == id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// matches reports whether a change at changePath is visible to a
// subscription at subPath (prefix match on dot-separated segments).
func matches(subPath, changePath string) bool {
	if subPath == "" {
		return true
	}
	if subPath == changePath {
		return true
	}
	return strings.HasPrefix(changePath, subPath+".")
}
