// Package trigger decides when the decoration set must be recomputed.
//
// The detector is a small state machine driven by host notifications.
// Selection, document and viewport changes always dirty the engine;
// configuration notifications dirty it only when a watched flag actually
// changed value, because hosts often fire generic update events that
// touch nothing the engine cares about. Recomputation is synchronous and
// runs on the notifying goroutine; there are no timers and no background
// work.
package trigger

// Reason tags a host notification with what changed.
type Reason uint8

const (
	// ReasonSelection indicates the selection changed.
	ReasonSelection Reason = iota

	// ReasonDocument indicates the document text changed.
	ReasonDocument

	// ReasonViewport indicates the visible window set changed.
	ReasonViewport

	// ReasonConfig indicates a configuration update notification.
	ReasonConfig
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonSelection:
		return "selection"
	case ReasonDocument:
		return "document"
	case ReasonViewport:
		return "viewport"
	case ReasonConfig:
		return "config"
	default:
		return "unknown"
	}
}

// State is the detector state.
type State uint8

const (
	// StateIdle means the stored decoration set is current.
	StateIdle State = iota

	// StateDirty means a recomputation is pending.
	StateDirty

	// StateRecomputing means the aggregator is running right now.
	StateRecomputing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDirty:
		return "dirty"
	case StateRecomputing:
		return "recomputing"
	default:
		return "unknown"
	}
}

// Flags are the watched configuration values. Comparison is by value,
// not by change-event identity.
type Flags struct {
	Enabled                bool
	AutoKeyword            bool
	SelectionCaseSensitive bool

	// GroupsRev changes whenever the keyword group list is edited.
	GroupsRev uint64
}

// Detector observes edit/selection/viewport/config transitions and runs
// the recompute callback when the decoration set has gone stale.
// Not safe for concurrent use; the engine is single-threaded and all
// triggers must arrive on one goroutine.
type Detector struct {
	state     State
	last      Flags
	recompute func()

	// pending records a trigger delivered reentrantly from inside the
	// recompute callback; it queues exactly one more pass.
	pending bool

	recomputations uint64
}

// New creates a detector that invokes recompute synchronously whenever a
// trigger leaves the decoration set stale. The initial flags seed the
// watched-value comparison.
func New(initial Flags, recompute func()) *Detector {
	return &Detector{last: initial, recompute: recompute}
}

// State returns the current detector state.
func (d *Detector) State() State {
	return d.state
}

// Recomputations returns how many aggregator passes have run.
func (d *Detector) Recomputations() uint64 {
	return d.recomputations
}

// Notify reports a host transition. Selection, document and viewport
// changes always dirty the engine. Config changes should go through
// NotifyConfig so watched values can be compared; a bare ReasonConfig
// has nothing to compare against and counts as a real change.
func (d *Detector) Notify(reason Reason) {
	d.makeDirty()
}

// NotifyConfig reports a configuration update carrying the current
// watched flag values. The engine goes dirty only when a value differs
// from the last recomputation.
func (d *Detector) NotifyConfig(flags Flags) {
	if flags == d.last {
		return
	}
	d.last = flags
	d.makeDirty()
}

// makeDirty transitions to Dirty and immediately drives one synchronous
// recomputation. A trigger arriving while recomputing queues exactly one
// follow-up pass, preserving delivery order without overlap.
func (d *Detector) makeDirty() {
	if d.state == StateRecomputing {
		d.pending = true
		return
	}
	d.state = StateDirty
	for {
		d.state = StateRecomputing
		d.recomputations++
		d.recompute()
		if !d.pending {
			break
		}
		d.pending = false
	}
	d.state = StateIdle
}
